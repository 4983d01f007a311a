package service

import (
	"time"

	"github.com/koungkub/pushover-notification-service/pushover"
)

// Content holds the fields shared by every message kind. Nil pointers and
// false flags are not sent upstream.
type Content struct {
	Message   string
	Title     *string
	URL       *string
	URLTitle  *string
	Sound     *string
	Device    *string
	HTML      bool
	Monospace bool
}

type MessageRequest struct {
	Content

	Priority *int
	TTL      *int
}

type EmergencyMessageRequest struct {
	Content

	Retry  *int
	Expire *int
}

func (c Content) options() []pushover.Option {
	var opts []pushover.Option
	if c.Title != nil {
		opts = append(opts, pushover.WithTitle(*c.Title))
	}
	if c.URL != nil {
		opts = append(opts, pushover.WithURL(*c.URL))
	}
	if c.URLTitle != nil {
		opts = append(opts, pushover.WithURLTitle(*c.URLTitle))
	}
	if c.Sound != nil {
		opts = append(opts, pushover.WithSound(*c.Sound))
	}
	if c.Device != nil {
		opts = append(opts, pushover.WithDevice(*c.Device))
	}
	if c.HTML {
		opts = append(opts, pushover.WithHTML())
	}
	if c.Monospace {
		opts = append(opts, pushover.WithMonospace())
	}
	return opts
}

func (r MessageRequest) options() []pushover.MessageOption {
	var opts []pushover.MessageOption
	for _, opt := range r.Content.options() {
		opts = append(opts, opt)
	}
	if r.Priority != nil {
		opts = append(opts, pushover.WithPriority(*r.Priority))
	}
	if r.TTL != nil {
		opts = append(opts, pushover.WithTTL(time.Duration(*r.TTL)*time.Second))
	}
	return opts
}

func (r EmergencyMessageRequest) options() []pushover.EmergencyOption {
	var opts []pushover.EmergencyOption
	for _, opt := range r.Content.options() {
		opts = append(opts, opt)
	}
	if r.Retry != nil {
		opts = append(opts, pushover.WithRetry(*r.Retry))
	}
	if r.Expire != nil {
		opts = append(opts, pushover.WithExpire(*r.Expire))
	}
	return opts
}
