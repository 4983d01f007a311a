package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/koungkub/pushover-notification-service/internal/service"
	"go.uber.org/fx"
)

var Module = fx.Module("handler",
	fx.Provide(
		NewNotificationHandler,
	),
)

type Notification struct {
	services service.NotificationProvider
}

type NotificationParams struct {
	fx.In

	Services service.NotificationProvider
}

func NewNotificationHandler(params NotificationParams) *Notification {
	return &Notification{
		services: params.Services,
	}
}

func (n *Notification) SendMessageHandler(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	resp, err := n.services.SendMessage(c.Request.Context(), req.toService())
	if err != nil {
		c.JSON(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (n *Notification) SendEmergencyMessageHandler(c *gin.Context) {
	var req SendEmergencyMessageRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	resp, err := n.services.SendEmergencyMessage(c.Request.Context(), req.toService())
	if err != nil {
		c.JSON(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (n *Notification) SendGroupMessageHandler(c *gin.Context) {
	var req SendMessageRequest
	if err := c.ShouldBindBodyWithJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, GetRequestError(err))
		return
	}

	resp, err := n.services.SendGroupMessage(c.Request.Context(), c.Param("group"), req.toService())
	if err != nil {
		c.JSON(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (n *Notification) ListSoundsHandler(c *gin.Context) {
	resp, err := n.services.ListSounds(c.Request.Context())
	if err != nil {
		c.JSON(statusFromError(err))
		return
	}

	c.JSON(http.StatusOK, resp)
}
