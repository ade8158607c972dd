package store

import (
	"context"
	"errors"

	"github.com/yunbow/line-faq-bot/src/types"
)

// HeaderRows is the number of header rows preceding data in a sheet-style table.
const HeaderRows = 1

// ErrRowOutOfRange is returned when an update targets a data row that does not exist.
var ErrRowOutOfRange = errors.New("store: row out of range")

// Store is the tabular backend holding the subscriber and FAQ tables.
// Subscriber rows are addressed by their zero-based data-row index in
// ListSubscribers order.
type Store interface {
	ListSubscribers(ctx context.Context) ([]types.Subscriber, error)
	AppendSubscriber(ctx context.Context, sub types.Subscriber) error
	SetFollowState(ctx context.Context, row int, state types.FollowState) error

	ListFAQ(ctx context.Context) ([]types.FAQEntry, error)
	ReplaceFAQ(ctx context.Context, entries []types.FAQEntry) error
}

// SheetRow converts a data-row index into the 1-based row number of a sheet
// with HeaderRows header rows.
func SheetRow(index int) int {
	return index + HeaderRows + 1
}
