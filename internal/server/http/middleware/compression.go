package middleware

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
)

type decoder func(io.Reader) (io.ReadCloser, error)

func gzipDecoder(r io.Reader) (io.ReadCloser, error) { return gzip.NewReader(r) }

var requestDecoders = map[string]decoder{
	"gzip":    gzipDecoder,
	"x-gzip":  gzipDecoder,
	"deflate": zlib.NewReader,
}

// DecompressRequest unwraps gzip and deflate request bodies. Decoded payload is
// capped at maxBytes when it is positive. Other encodings are rejected with 415.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		encoding := strings.ToLower(strings.TrimSpace(c.GetHeader("Content-Encoding")))
		if encoding == "" || encoding == "identity" {
			c.Next()
			return
		}

		newReader, ok := requestDecoders[encoding]
		if !ok {
			c.AbortWithStatus(http.StatusUnsupportedMediaType)
			return
		}

		originalBody := c.Request.Body
		reader, err := newReader(originalBody)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		defer reader.Close()
		defer originalBody.Close()

		var body io.ReadCloser = io.NopCloser(reader)
		if maxBytes > 0 {
			body = http.MaxBytesReader(c.Writer, body, maxBytes)
		}
		c.Request.Body = body
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
