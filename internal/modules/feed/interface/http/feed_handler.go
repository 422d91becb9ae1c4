package handler

import (
	"ExpertBridge/internal/config"
	"ExpertBridge/internal/modules/feed/application/dto/request"
	"ExpertBridge/internal/modules/feed/application/service"
	"ExpertBridge/pkg/back"
	"ExpertBridge/pkg/xerr"
	"ExpertBridge/pkg/zlog"

	"github.com/gin-gonic/gin"
)

// FeedHandler exposes the ranking operations over HTTP. Pagination parameters
// are validated here; the service layer assumes they are sane.
type FeedHandler struct {
	svc  service.RankingService
	conf config.FeedConfig
}

func NewFeedHandler(svc service.RankingService, conf config.FeedConfig) *FeedHandler {
	return &FeedHandler{svc: svc, conf: conf}
}

func (h *FeedHandler) GetRecommendedFeed(c *gin.Context) {
	var req request.GetRecommendedFeedRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	if req.PageSize == 0 {
		req.PageSize = h.conf.DefaultPageSize
	}
	if req.PageSize < 1 || req.PageSize > h.conf.MaxPageSize {
		back.Error(c, xerr.BadRequest, "page_size out of range")
		return
	}
	data, err := h.svc.GetRecommendedFeed(c.Request.Context(), c.GetString("uuid"), req)
	back.Result(c, data, err)
}

func (h *FeedHandler) GetRecommendedFeedByPage(c *gin.Context) {
	var req request.GetRecommendedFeedByPageRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	if req.Page < 1 {
		back.Error(c, xerr.BadRequest, "page must be >= 1")
		return
	}
	if req.PageSize == 0 {
		req.PageSize = h.conf.DefaultPageSize
	}
	if req.PageSize < 1 || req.PageSize > h.conf.MaxPageSize {
		back.Error(c, xerr.BadRequest, "page_size out of range")
		return
	}
	data, err := h.svc.GetRecommendedFeedByPage(c.Request.Context(), c.GetString("uuid"), req)
	back.Result(c, data, err)
}

func (h *FeedHandler) GetSimilarPosts(c *gin.Context) {
	var req request.GetSimilarPostsRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	if req.PostId == "" {
		back.Error(c, xerr.BadRequest, "post_id is required")
		return
	}
	if req.Limit == 0 {
		req.Limit = h.conf.DefaultPageSize
	}
	if req.Limit < 1 || req.Limit > h.conf.MaxSimilarLimit {
		back.Error(c, xerr.BadRequest, "limit out of range")
		return
	}
	data, err := h.svc.GetSimilarPosts(c.Request.Context(), req)
	back.Result(c, data, err)
}

func (h *FeedHandler) GetSuggestedJobs(c *gin.Context) {
	var req request.GetSuggestedJobsRequest
	if err := c.BindJSON(&req); err != nil {
		zlog.Error(err.Error())
		back.Error(c, xerr.BadRequest, xerr.ErrParam.Message)
		return
	}
	if req.Limit == 0 {
		req.Limit = h.conf.DefaultPageSize
	}
	if req.Limit < 1 || req.Limit > h.conf.MaxSimilarLimit {
		back.Error(c, xerr.BadRequest, "limit out of range")
		return
	}
	data, err := h.svc.GetSuggestedJobs(c.Request.Context(), c.GetString("uuid"), req)
	back.Result(c, data, err)
}
