package handler

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const visitorSessionKey = "visitor_id"

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}

// visitorID returns the id tying the request to its views, issuing one on
// the first visit.
func visitorID(c *gin.Context) string {
	session := sessions.Default(c)
	if id, ok := session.Get(visitorSessionKey).(string); ok && id != "" {
		return id
	}

	id := uuid.NewString()
	session.Set(visitorSessionKey, id)
	if err := session.Save(); err != nil {
		c.Error(err)
	}
	return id
}

func redirectSeeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
