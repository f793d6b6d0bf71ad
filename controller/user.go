package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"gochat/model"
)

// UserController ...
type UserController struct {
	Store *model.Store
}

func (ctrl UserController) History(c *gin.Context) {
	username := c.Query("username")
	if username == "" {
		logger.Warnf("[%s] History request without username", c.GetString("requestId"))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
		return
	}

	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			logger.Warnf("[%s] Invalid limit %q", c.GetString("requestId"), raw)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
			return
		}
		limit = n
	}

	user := ctrl.Store.GetOrCreateUser(username)
	messages := ctrl.Store.GetChatHistory(user.ID, limit)

	c.JSON(http.StatusOK, gin.H{
		"user_id":  user.ID,
		"username": user.Username,
		"messages": messages,
	})
}

func (ctrl UserController) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"users": ctrl.Store.GetAllUsers()})
}
