package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gochat/model"
	"gochat/platform"
	"gochat/service"
)

var logger = platform.Logger

type ChatController struct {
	Store *model.Store
	Chat  *service.ChatService
}

func (ctrl ChatController) Post(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Message  string `json:"message" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		logger.Warnf("[%s] Invalid input, %s", c.GetString("requestId"), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and message are required"})
		return
	}

	user := ctrl.Store.GetOrCreateUser(input.Username)
	reply := ctrl.Chat.HandleUserMessage(c.Request.Context(), user, input.Message)

	logger.Infof("[%s] Replied to user %s", c.GetString("requestId"), user.Username)
	c.JSON(http.StatusOK, gin.H{
		"response": reply,
		"user_id":  user.ID,
	})
}
