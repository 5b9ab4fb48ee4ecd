package middleware

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
)

// uncompressedPaths are served as is: probes and the Prometheus scraper gain nothing from gzip.
var uncompressedPaths = []string{"/healthz", "/readyz", "/metrics"}

// Compression returns a middleware that gzips responses for clients that accept it.
func Compression() gin.HandlerFunc {
	return gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths(uncompressedPaths))
}
