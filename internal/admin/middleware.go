package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ServiceKeyHeader carries the elevated credential. It is server-held
// configuration; browser clients never see it.
const ServiceKeyHeader = "X-Service-Key"

// ServiceKeyRequired gates the admin routes behind the service role key.
//
// An unconfigured key is a hard configuration error, reported before any
// request body is even looked at, so a misconfigured deployment performs
// zero deletions instead of silently accepting requests.
func ServiceKeyRequired(serviceRoleKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if serviceRoleKey == "" {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error": "SERVICE_ROLE_KEY belum di-set di environment variables",
			})
			return
		}

		if c.GetHeader(ServiceKeyHeader) != serviceRoleKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "invalid service key",
			})
			return
		}

		c.Next()
	}
}
