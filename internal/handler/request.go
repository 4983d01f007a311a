package handler

import "github.com/koungkub/pushover-notification-service/internal/service"

type MessageContent struct {
	Message   string  `json:"message" binding:"required"`
	Title     *string `json:"title"`
	URL       *string `json:"url"`
	URLTitle  *string `json:"url_title"`
	Sound     *string `json:"sound"`
	Device    *string `json:"device"`
	HTML      bool    `json:"html"`
	Monospace bool    `json:"monospace"`
}

type SendMessageRequest struct {
	MessageContent

	Priority *int `json:"priority" binding:"omitempty,min=-2,max=2"`
	TTL      *int `json:"ttl" binding:"omitempty,min=1"`
}

type SendEmergencyMessageRequest struct {
	MessageContent

	Retry  *int `json:"retry" binding:"omitempty,min=30"`
	Expire *int `json:"expire" binding:"omitempty,min=1,max=10800"`
}

func (m MessageContent) content() service.Content {
	return service.Content{
		Message:   m.Message,
		Title:     m.Title,
		URL:       m.URL,
		URLTitle:  m.URLTitle,
		Sound:     m.Sound,
		Device:    m.Device,
		HTML:      m.HTML,
		Monospace: m.Monospace,
	}
}

func (r SendMessageRequest) toService() service.MessageRequest {
	return service.MessageRequest{
		Content:  r.content(),
		Priority: r.Priority,
		TTL:      r.TTL,
	}
}

func (r SendEmergencyMessageRequest) toService() service.EmergencyMessageRequest {
	return service.EmergencyMessageRequest{
		Content: r.content(),
		Retry:   r.Retry,
		Expire:  r.Expire,
	}
}
