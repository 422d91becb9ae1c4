package requestid

import (
	"ExpertBridge/pkg/util"

	"github.com/gin-gonic/gin"
)

const HeaderName = "X-Request-Id"

// RequestId tags every request with an id so log lines across the feed
// pipeline can be correlated. A client-supplied id is kept as is.
func RequestId() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderName)
		if id == "" {
			id = util.GenerateShortUUID()
		}
		c.Set("request_id", id)
		c.Header(HeaderName, id)
		c.Next()
	}
}
