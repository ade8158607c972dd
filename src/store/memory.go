package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/yunbow/line-faq-bot/src/types"
)

// MemoryStore keeps both tables in process memory.
type MemoryStore struct {
	mu   sync.RWMutex
	subs []types.Subscriber
	faqs []types.FAQEntry
	now  func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (m *MemoryStore) ListSubscribers(_ context.Context) ([]types.Subscriber, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.Subscriber, len(m.subs))
	copy(out, m.subs)
	return out, nil
}

func (m *MemoryStore) AppendSubscriber(_ context.Context, sub types.Subscriber) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts := m.now()
	sub.RowID = uint64(len(m.subs) + 1)
	sub.CreatedAt = ts
	sub.UpdatedAt = ts
	m.subs = append(m.subs, sub)
	return nil
}

func (m *MemoryStore) SetFollowState(_ context.Context, row int, state types.FollowState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if row < 0 || row >= len(m.subs) {
		return fmt.Errorf("set follow state at row %d: %w", SheetRow(row), ErrRowOutOfRange)
	}
	m.subs[row].FollowState = state
	m.subs[row].UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) ListFAQ(_ context.Context) ([]types.FAQEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]types.FAQEntry, len(m.faqs))
	copy(out, m.faqs)
	return out, nil
}

func (m *MemoryStore) ReplaceFAQ(_ context.Context, entries []types.FAQEntry) error {
	faqs := make([]types.FAQEntry, len(entries))
	for i, e := range entries {
		e.RowID = uint64(i + 1)
		faqs[i] = e
	}
	m.mu.Lock()
	m.faqs = faqs
	m.mu.Unlock()
	return nil
}
