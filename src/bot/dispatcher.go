package bot

import (
	"context"
	"log"
	"time"

	"github.com/yunbow/line-faq-bot/src/faq"
	"github.com/yunbow/line-faq-bot/src/line"
	"github.com/yunbow/line-faq-bot/src/subscribers"
	"github.com/yunbow/line-faq-bot/src/types"
)

// DefaultWelcomeID is the FAQ entry pushed to new followers.
const DefaultWelcomeID = "1"

// DefaultObserverTimeout bounds each observer call made while a webhook
// request is still open.
const DefaultObserverTimeout = 5 * time.Second

// Notifier sends outbound messages to the platform.
type Notifier interface {
	Push(ctx context.Context, to string, messages []line.Message) (*line.APIResponse, error)
	Reply(ctx context.Context, replyToken string, messages []line.Message) (*line.APIResponse, error)
}

// EventLog claims events so redelivered webhooks are handled once.
type EventLog interface {
	MarkSeen(ctx context.Context, key string) (bool, error)
}

// Observer is told about follow-state transitions.
type Observer interface {
	SubscriberChanged(ctx context.Context, change types.SubscriberChange) error
}

// Config wires a Dispatcher. Resolver, Directory and Notifier are required.
type Config struct {
	Resolver  *faq.Resolver
	Directory *subscribers.Directory
	Notifier  Notifier
	EventLog  EventLog
	Observers []Observer
	WelcomeID string
	// ObserverTimeout defaults to DefaultObserverTimeout.
	ObserverTimeout time.Duration
}

// Dispatcher routes webhook events to the follow, unfollow and message handlers.
type Dispatcher struct {
	faqs      *faq.Resolver
	subs      *subscribers.Directory
	notifier  Notifier
	events    EventLog
	observers []Observer
	welcomeID string
	obsWait   time.Duration
	now       func() time.Time
}

func NewDispatcher(cfg Config) *Dispatcher {
	welcome := cfg.WelcomeID
	if welcome == "" {
		welcome = DefaultWelcomeID
	}
	obsWait := cfg.ObserverTimeout
	if obsWait <= 0 {
		obsWait = DefaultObserverTimeout
	}
	return &Dispatcher{
		faqs:      cfg.Resolver,
		subs:      cfg.Directory,
		notifier:  cfg.Notifier,
		events:    cfg.EventLog,
		observers: cfg.Observers,
		welcomeID: welcome,
		obsWait:   obsWait,
		now:       time.Now,
	}
}

// Dispatch handles events in order, one at a time. A failing event is logged
// and does not stop the rest of the batch.
func (d *Dispatcher) Dispatch(ctx context.Context, events []line.Event) {
	reqID := RequestID(ctx)
	for i, ev := range events {
		if !d.claim(ctx, ev) {
			log.Printf("dispatch[%s]: event %d (%s) already handled, skipping", reqID, i, ev.Type)
			continue
		}
		if err := d.handle(ctx, ev); err != nil {
			log.Printf("dispatch[%s]: event %d (%s from %s) failed: %v", reqID, i, ev.Type, ev.Source.UserID, err)
		}
	}
}

func (d *Dispatcher) handle(ctx context.Context, ev line.Event) error {
	switch ev.Type {
	case line.EventFollow:
		return d.handleFollow(ctx, ev)
	case line.EventUnfollow:
		return d.handleUnfollow(ctx, ev)
	case line.EventTypeMessage:
		return d.handleMessage(ctx, ev)
	default:
		return nil
	}
}

func (d *Dispatcher) claim(ctx context.Context, ev line.Event) bool {
	if d.events == nil {
		return true
	}
	first, err := d.events.MarkSeen(ctx, ev.DedupeKey())
	if err != nil {
		log.Printf("dispatch[%s]: event log unavailable, handling anyway: %v", RequestID(ctx), err)
		return true
	}
	return first
}

// compose resolves id and builds its message. ok is false when there is
// nothing to send.
func (d *Dispatcher) compose(ctx context.Context, id string) (line.Message, bool, error) {
	entry, err := d.faqs.Resolve(ctx, id)
	if err != nil || entry == nil {
		return line.Message{}, false, err
	}
	msg, ok := faq.Build(*entry)
	return msg, ok, nil
}

func (d *Dispatcher) notify(ctx context.Context, change types.SubscriberChange) {
	change.At = d.now()
	for _, o := range d.observers {
		octx, cancel := context.WithTimeout(ctx, d.obsWait)
		err := o.SubscriberChanged(octx, change)
		cancel()
		if err != nil {
			log.Printf("dispatch[%s]: observer for %s %s: %v", RequestID(ctx), change.Event, change.UserID, err)
		}
	}
}
