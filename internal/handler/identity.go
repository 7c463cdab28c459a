package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PractitionerID returns the authenticated identity set by the auth
// middleware.
func PractitionerID(c *gin.Context) (uuid.UUID, bool) {
	v, ok := c.Get("practitionerID")
	if !ok {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
