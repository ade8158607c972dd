package subscribers

import (
	"context"
	"fmt"

	"github.com/yunbow/line-faq-bot/src/types"
)

// Table is the subscriber half of the store.
type Table interface {
	ListSubscribers(ctx context.Context) ([]types.Subscriber, error)
	AppendSubscriber(ctx context.Context, sub types.Subscriber) error
	SetFollowState(ctx context.Context, row int, state types.FollowState) error
}

// Match is a subscriber together with its data-row index.
type Match struct {
	Index      int
	Subscriber types.Subscriber
}

// Directory finds and updates subscribers. Every lookup scans the full table.
type Directory struct {
	table Table
}

func NewDirectory(table Table) *Directory {
	return &Directory{table: table}
}

// Find returns the first row whose user id equals userID exactly, or nil.
// An empty userID never matches.
func (d *Directory) Find(ctx context.Context, userID string) (*Match, error) {
	if userID == "" {
		return nil, nil
	}
	subs, err := d.table.ListSubscribers(ctx)
	if err != nil {
		return nil, fmt.Errorf("read subscriber table: %w", err)
	}
	for i, s := range subs {
		if s.UserID == userID {
			return &Match{Index: i, Subscriber: s}, nil
		}
	}
	return nil, nil
}

// UpsertFollow marks userID as following, appending a row on first sight.
// It reports whether a row was created.
func (d *Directory) UpsertFollow(ctx context.Context, userID string, source types.SourceType) (bool, error) {
	m, err := d.Find(ctx, userID)
	if err != nil {
		return false, err
	}
	if m != nil {
		return false, d.SetFollowState(ctx, m.Index, types.Following)
	}
	if err := d.table.AppendSubscriber(ctx, types.Subscriber{
		SourceType:  source,
		UserID:      userID,
		FollowState: types.Following,
	}); err != nil {
		return false, err
	}
	return true, nil
}

func (d *Directory) SetFollowState(ctx context.Context, index int, state types.FollowState) error {
	return d.table.SetFollowState(ctx, index, state)
}
