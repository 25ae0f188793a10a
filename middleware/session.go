package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"issuecart-backend/models"
)

const (
	// SessionCookie is the browser cookie holding the opaque session token.
	SessionCookie = "issuecart_session"

	// contextCustomerID is the gin context key set when a session resolves.
	contextCustomerID = "customer_id"
)

// SessionMiddleware resolves the session cookie to the active customer and
// stores the customer id in the request context. It never aborts: browsing
// the catalog and viewing an empty cart are valid without a session.
func SessionMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(SessionCookie)
		if err == nil && token != "" {
			var session models.Session
			if err := db.Where("token = ?", token).First(&session).Error; err == nil {
				c.Set(contextCustomerID, session.CustomerID)
			}
		}
		c.Next()
	}
}

// CustomerID returns the active session customer id, if one resolved.
func CustomerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(contextCustomerID)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
