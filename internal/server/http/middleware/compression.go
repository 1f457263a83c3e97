package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/storefront/internal/server/http/dto"
)

// DecompressRequest inflates gzip request bodies before binding. Bodies in any
// other content coding are refused with 415. A positive maxBytes caps the
// inflated size.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch requestEncoding(c.GetHeader("Content-Encoding")) {
		case "", "identity":
			c.Next()
			return
		case "gzip", "x-gzip":
		default:
			c.AbortWithStatusJSON(http.StatusUnsupportedMediaType, dto.Fail("unsupported content encoding"))
			return
		}

		compressed := c.Request.Body
		inflated, err := gzip.NewReader(compressed)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.Fail("malformed gzip body"))
			return
		}
		defer func() {
			_ = inflated.Close()
			_ = compressed.Close()
		}()

		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, inflated, maxBytes)
		} else {
			c.Request.Body = inflated
		}
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}

// requestEncoding returns the single content coding of a request. Stacked
// codings are not supported and come back verbatim so the caller rejects them.
func requestEncoding(header string) string {
	return strings.ToLower(strings.TrimSpace(header))
}
