package request

type GetRecommendedFeedRequest struct {
	Cursor          string    `json:"cursor,omitempty"`
	PageSize        int       `json:"page_size"`
	ClientEmbedding []float32 `json:"client_embedding,omitempty"`
}

type GetRecommendedFeedByPageRequest struct {
	Page            int       `json:"page"`
	PageSize        int       `json:"page_size"`
	ClientEmbedding []float32 `json:"client_embedding,omitempty"`
}

type GetSimilarPostsRequest struct {
	PostId string `json:"post_id"`
	Limit  int    `json:"limit"`
}

type GetSuggestedJobsRequest struct {
	Limit int `json:"limit"`
}
