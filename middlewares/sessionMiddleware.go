package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/mmdatafocus/procurement_backend/utils"
)

const RoleHeader = "x-role"

// SessionMiddleware puts the acting department into the request context.
// A request may name it in the x-role header; otherwise the session role
// held by the store is used. No authentication is involved.
func SessionMiddleware(store *models.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := store.Role()
		if header := strings.TrimSpace(c.Request.Header.Get(RoleHeader)); header != "" {
			parsed, err := models.ParseRole(strings.ToUpper(header))
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "unknown role " + header})
				c.Abort()
				return
			}
			role = parsed
		}

		ctx := utils.SetRoleInContext(c.Request.Context(), string(role))
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// CorrelationMiddleware generates a correlation id once per request, or
// reuses the caller's, and echoes it back.
func CorrelationMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cid := c.GetHeader(utils.CorrelationIdHeader)
		if cid == "" {
			cid = utils.NewCorrelationId()
		}
		c.Header(utils.CorrelationIdHeader, cid)
		c.Request = c.Request.WithContext(utils.SetCorrelationIdInContext(c.Request.Context(), cid))
		c.Next()
	}
}
