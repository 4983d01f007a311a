package pushover

import (
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// Message priorities accepted by the API.
const (
	PriorityLowest    = -2
	PriorityLow       = -1
	PriorityNormal    = 0
	PriorityHigh      = 1
	PriorityEmergency = 2
)

// Emergency retry and expiry limits, in seconds.
const (
	DefaultRetry  = 30
	DefaultExpire = 3600
	MinRetry      = 30
	MaxExpire     = 10800
)

// Built-in sound identifiers.
const (
	SoundPushover     = "pushover"
	SoundBike         = "bike"
	SoundBugle        = "bugle"
	SoundCashRegister = "cashregister"
	SoundClassical    = "classical"
	SoundCosmic       = "cosmic"
	SoundFalling      = "falling"
	SoundGamelan      = "gamelan"
	SoundIncoming     = "incoming"
	SoundIntermission = "intermission"
	SoundMagic        = "magic"
	SoundMechanical   = "mechanical"
	SoundPianoBar     = "pianobar"
	SoundSiren        = "siren"
	SoundSpaceAlarm   = "spacealarm"
	SoundTugboat      = "tugboat"
	SoundAlien        = "alien"
	SoundClimb        = "climb"
	SoundPersistent   = "persistent"
	SoundEcho         = "echo"
	SoundUpDown       = "updown"
	SoundVibrate      = "vibrate"
	SoundNone         = "none"
)

// request accumulates the fields of a single API call. A key present in
// fields was set by the caller, even when its value is empty.
type request struct {
	user       string
	fields     url.Values
	attachment *string
	err        error
}

func newRequest(user, message string) *request {
	r := &request{
		user:   user,
		fields: url.Values{},
	}
	if message == "" {
		r.fail("message", "must not be empty")
	}
	r.fields.Set("message", message)
	return r
}

// fail keeps the first validation problem only.
func (r *request) fail(field, reason string) {
	if r.err == nil {
		r.err = &ValidationError{Field: field, Reason: reason}
	}
}

func (r *request) values(token string) url.Values {
	values := url.Values{}
	values.Set("token", token)
	values.Set("user", r.user)
	for key, vs := range r.fields {
		values[key] = append([]string(nil), vs...)
	}
	return values
}

// MessageOption configures SendMessage and SendGroupMessage.
type MessageOption interface {
	applyMessage(*request)
}

// EmergencyOption configures SendEmergencyMessage.
type EmergencyOption interface {
	applyEmergency(*request)
}

// Option is accepted by every send operation.
type Option func(*request)

func (o Option) applyMessage(r *request)   { o(r) }
func (o Option) applyEmergency(r *request) { o(r) }

type messageOption func(*request)

func (o messageOption) applyMessage(r *request) { o(r) }

type emergencyOption func(*request)

func (o emergencyOption) applyEmergency(r *request) { o(r) }

func field(key, value string) Option {
	return func(r *request) {
		r.fields.Set(key, value)
	}
}

// WithTitle sets the message title.
func WithTitle(title string) Option {
	return field("title", title)
}

// WithURL attaches a supplementary URL.
func WithURL(u string) Option {
	return field("url", u)
}

// WithURLTitle sets the label shown for the supplementary URL.
func WithURLTitle(title string) Option {
	return field("url_title", title)
}

// WithSound selects the notification sound, see ListSounds.
func WithSound(sound string) Option {
	return field("sound", sound)
}

// WithDevice restricts delivery to the named device.
func WithDevice(device string) Option {
	return field("device", device)
}

// WithHTML enables HTML formatting of the message body.
func WithHTML() Option {
	return field("html", "1")
}

// WithMonospace renders the message body in a monospace font.
func WithMonospace() Option {
	return field("monospace", "1")
}

// WithTimestamp overrides the time shown for the message.
func WithTimestamp(t time.Time) Option {
	return field("timestamp", strconv.FormatInt(t.Unix(), 10))
}

// WithPriority sets the message priority. Emergency messages must be sent
// with SendEmergencyMessage, which carries the required retry and expiry.
func WithPriority(priority int) MessageOption {
	return messageOption(func(r *request) {
		if priority < PriorityLowest || priority > PriorityEmergency {
			r.fail("priority", fmt.Sprintf("must be between %d and %d", PriorityLowest, PriorityEmergency))
			return
		}
		r.fields.Set("priority", strconv.Itoa(priority))
	})
}

// WithTTL deletes the message from devices after ttl has passed.
func WithTTL(ttl time.Duration) MessageOption {
	return messageOption(func(r *request) {
		seconds := int64(ttl / time.Second)
		if seconds < 1 {
			r.fail("ttl", "must be at least one second")
			return
		}
		r.fields.Set("ttl", strconv.FormatInt(seconds, 10))
	})
}

// WithAttachment sends the file at path along with the message.
func WithAttachment(path string) MessageOption {
	return messageOption(func(r *request) {
		r.attachment = &path
	})
}

// WithRetry sets how often, in seconds, an emergency message is re-sent
// until acknowledged.
func WithRetry(seconds int) EmergencyOption {
	return emergencyOption(func(r *request) {
		if seconds < MinRetry {
			r.fail("retry", fmt.Sprintf("must be at least %d seconds", MinRetry))
			return
		}
		r.fields.Set("retry", strconv.Itoa(seconds))
	})
}

// WithExpire sets how long, in seconds, an emergency message keeps being
// re-sent.
func WithExpire(seconds int) EmergencyOption {
	return emergencyOption(func(r *request) {
		if seconds < 1 || seconds > MaxExpire {
			r.fail("expire", fmt.Sprintf("must be between 1 and %d seconds", MaxExpire))
			return
		}
		r.fields.Set("expire", strconv.Itoa(seconds))
	})
}
