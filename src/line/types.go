package line

import (
	"encoding/json"
	"strconv"

	"github.com/OneOfOne/xxhash"
)

// Event types dispatched by the bot.
const (
	EventFollow      = "follow"
	EventUnfollow    = "unfollow"
	EventTypeMessage = "message"
)

// MessageTypeText is the only inbound message type answered.
const MessageTypeText = "text"

// WebhookRequest is the body LINE posts to the webhook endpoint.
type WebhookRequest struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Source struct {
	Type    string `json:"type"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

type EventMessage struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

type Event struct {
	Type            string           `json:"type"`
	WebhookEventID  string           `json:"webhookEventId,omitempty"`
	Timestamp       int64            `json:"timestamp,omitempty"`
	Mode            string           `json:"mode,omitempty"`
	Source          Source           `json:"source"`
	ReplyToken      string           `json:"replyToken,omitempty"`
	Message         *EventMessage    `json:"message,omitempty"`
	DeliveryContext *DeliveryContext `json:"deliveryContext,omitempty"`

	raw []byte
}

// UnmarshalJSON keeps the raw event bytes for DedupeKey.
func (e *Event) UnmarshalJSON(b []byte) error {
	type plain Event
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = Event(p)
	e.raw = append([]byte(nil), b...)
	return nil
}

// DedupeKey identifies the event across redeliveries: the webhook event id
// when present, otherwise a hash of the raw event.
func (e Event) DedupeKey() string {
	if e.WebhookEventID != "" {
		return e.WebhookEventID
	}
	raw := e.raw
	if len(raw) == 0 {
		raw, _ = json.Marshal(e)
	}
	return "h" + strconv.FormatUint(xxhash.Checksum64(raw), 16)
}

// Outbound message payloads.
type Message struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	AltText  string    `json:"altText,omitempty"`
	Template *Template `json:"template,omitempty"`
}

type Template struct {
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Actions []Action `json:"actions"`
}

type Action struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

// NewTextMessage builds a plain text message.
func NewTextMessage(text string) Message {
	return Message{Type: "text", Text: text}
}

// NewConfirmMessage builds a two-button confirm template. Each button sends
// its text back as a user message.
func NewConfirmMessage(text string, yes, no Action) Message {
	return Message{
		Type:    "template",
		AltText: text,
		Template: &Template{
			Type:    "confirm",
			Text:    text,
			Actions: []Action{yes, no},
		},
	}
}

// NewMessageAction builds an action that posts text as the user.
func NewMessageAction(label, text string) Action {
	return Action{Type: "message", Label: label, Text: text}
}
