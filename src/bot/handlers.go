package bot

import (
	"context"
	"log"

	"github.com/yunbow/line-faq-bot/src/line"
	"github.com/yunbow/line-faq-bot/src/logging"
	"github.com/yunbow/line-faq-bot/src/store"
	"github.com/yunbow/line-faq-bot/src/types"
)

func (d *Dispatcher) handleFollow(ctx context.Context, ev line.Event) error {
	userID := ev.Source.UserID
	if userID == "" {
		return nil
	}

	msg, ok, err := d.compose(ctx, d.welcomeID)
	if err != nil {
		return err
	}
	if ok {
		resp, err := d.notifier.Push(ctx, userID, []line.Message{msg})
		d.logOutbound(ctx, "push", userID, resp, err)
	}

	created, err := d.subs.UpsertFollow(ctx, userID, sourceType(ev.Source))
	if err != nil {
		return err
	}

	d.notify(ctx, types.SubscriberChange{
		Event:      line.EventFollow,
		UserID:     userID,
		SourceType: sourceType(ev.Source),
		State:      types.Following,
		Created:    created,
	})
	return nil
}

func (d *Dispatcher) handleUnfollow(ctx context.Context, ev line.Event) error {
	m, err := d.subs.Find(ctx, ev.Source.UserID)
	if err != nil || m == nil {
		return err
	}
	if err := d.subs.SetFollowState(ctx, m.Index, types.Unfollowed); err != nil {
		return err
	}
	log.Printf("dispatch[%s]: %s unfollowed (row %d)", RequestID(ctx), ev.Source.UserID, store.SheetRow(m.Index))

	d.notify(ctx, types.SubscriberChange{
		Event:      line.EventUnfollow,
		UserID:     m.Subscriber.UserID,
		SourceType: m.Subscriber.SourceType,
		State:      types.Unfollowed,
	})
	return nil
}

func (d *Dispatcher) handleMessage(ctx context.Context, ev line.Event) error {
	m, err := d.subs.Find(ctx, ev.Source.UserID)
	if err != nil || m == nil {
		return err
	}
	if ev.Message == nil || ev.Message.Type != line.MessageTypeText {
		return nil
	}

	msg, ok, err := d.compose(ctx, ev.Message.Text)
	if err != nil || !ok {
		return err
	}
	resp, err := d.notifier.Reply(ctx, ev.ReplyToken, []line.Message{msg})
	d.logOutbound(ctx, "reply", ev.Source.UserID, resp, err)
	return nil
}

// logOutbound records send failures; callers carry on either way.
func (d *Dispatcher) logOutbound(ctx context.Context, kind, target string, resp *line.APIResponse, err error) {
	reqID := RequestID(ctx)
	switch {
	case err == nil:
		return
	case logging.IsRateLimit(err):
		log.Printf("dispatch[%s]: %s to %s rate limited by platform: %v", reqID, kind, target, err)
	case resp != nil && len(resp.Details) > 0:
		log.Printf("dispatch[%s]: %s to %s failed: %v (%s: %s)", reqID, kind, target, err, resp.Details[0].Property, resp.Details[0].Message)
	default:
		log.Printf("dispatch[%s]: %s to %s failed: %v", reqID, kind, target, err)
	}
}

func sourceType(src line.Source) types.SourceType {
	switch types.SourceType(src.Type) {
	case types.SourceGroup, types.SourceRoom:
		return types.SourceType(src.Type)
	default:
		return types.SourceUser
	}
}
