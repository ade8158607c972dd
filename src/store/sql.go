package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/yunbow/line-faq-bot/src/types"
	"gorm.io/gorm"
)

// SQLStore backs the tables with gorm. Row order is the auto-increment row_id.
type SQLStore struct {
	db *gorm.DB
}

func NewSQLStore(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) ListSubscribers(ctx context.Context) ([]types.Subscriber, error) {
	var subs []types.Subscriber
	if err := s.db.WithContext(ctx).Order("row_id asc").Find(&subs).Error; err != nil {
		return nil, fmt.Errorf("list subscribers: %w", err)
	}
	return subs, nil
}

func (s *SQLStore) AppendSubscriber(ctx context.Context, sub types.Subscriber) error {
	sub.RowID = 0
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return fmt.Errorf("append subscriber %s: %w", sub.UserID, err)
	}
	return nil
}

func (s *SQLStore) SetFollowState(ctx context.Context, row int, state types.FollowState) error {
	if row < 0 {
		return fmt.Errorf("set follow state at row %d: %w", SheetRow(row), ErrRowOutOfRange)
	}

	var sub types.Subscriber
	err := s.db.WithContext(ctx).Order("row_id asc").Offset(row).Limit(1).Take(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("set follow state at row %d: %w", SheetRow(row), ErrRowOutOfRange)
	}
	if err != nil {
		return fmt.Errorf("set follow state at row %d: %w", SheetRow(row), err)
	}

	if err := s.db.WithContext(ctx).Model(&sub).Update("follow_state", state).Error; err != nil {
		return fmt.Errorf("set follow state for %s: %w", sub.UserID, err)
	}
	return nil
}

func (s *SQLStore) ListFAQ(ctx context.Context) ([]types.FAQEntry, error) {
	var faqs []types.FAQEntry
	if err := s.db.WithContext(ctx).Order("row_id asc").Find(&faqs).Error; err != nil {
		return nil, fmt.Errorf("list faq: %w", err)
	}
	return faqs, nil
}

// ReplaceFAQ swaps the whole FAQ table in one transaction.
func (s *SQLStore) ReplaceFAQ(ctx context.Context, entries []types.FAQEntry) error {
	rows := make([]types.FAQEntry, len(entries))
	for i, e := range entries {
		e.RowID = 0
		rows[i] = e
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&types.FAQEntry{}).Error; err != nil {
			return fmt.Errorf("clear faq: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, 100).Error; err != nil {
			return fmt.Errorf("insert faq: %w", err)
		}
		return nil
	})
}
