package store

import (
	"context"
	"fmt"
	"html"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yunbow/line-faq-bot/src/types"
)

// Seed is the YAML document accepted by ParseSeed. Scalars may be written as
// numbers or strings; they are stringified the way a spreadsheet cell would be.
type Seed struct {
	FAQ         []seedFAQ        `yaml:"faq"`
	Subscribers []seedSubscriber `yaml:"subscribers"`
}

type seedChoice struct {
	ID   any `yaml:"id"`
	Text any `yaml:"text"`
}

type seedFAQ struct {
	ID   any        `yaml:"id"`
	Kind string     `yaml:"kind"`
	Text any        `yaml:"text"`
	Yes  seedChoice `yaml:"yes"`
	No   seedChoice `yaml:"no"`
}

type seedSubscriber struct {
	SourceType  string `yaml:"sourceType"`
	UserID      string `yaml:"userId"`
	FollowState int    `yaml:"followState"`
}

var textPolicy = bluemonday.StrictPolicy()

// ParseSeed decodes a seed document.
func ParseSeed(raw []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(raw, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// ReadSeedFile reads and parses a seed document from disk.
func ReadSeedFile(path string) (*Seed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}
	return ParseSeed(raw)
}

// Entries returns the FAQ rows in document order. Text is kept verbatim;
// LINE renders it literally.
func (s *Seed) Entries() []types.FAQEntry {
	out := make([]types.FAQEntry, 0, len(s.FAQ))
	for _, f := range s.FAQ {
		out = append(out, types.FAQEntry{
			ID:   Stringify(f.ID),
			Kind: types.FAQKind(strings.TrimSpace(f.Kind)),
			Text: Stringify(f.Text),
			Yes:  types.Choice{ID: Stringify(f.Yes.ID), Text: Stringify(f.Yes.Text)},
			No:   types.Choice{ID: Stringify(f.No.ID), Text: Stringify(f.No.Text)},
		})
	}
	return out
}

// Apply writes the seed into st: the FAQ table is replaced and any listed
// subscribers missing from st are appended.
func (s *Seed) Apply(ctx context.Context, st Store) error {
	if err := st.ReplaceFAQ(ctx, s.Entries()); err != nil {
		return err
	}
	if len(s.Subscribers) == 0 {
		return nil
	}

	existing, err := st.ListSubscribers(ctx)
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(existing))
	for _, sub := range existing {
		known[sub.UserID] = true
	}
	for _, sub := range s.Subscribers {
		if sub.UserID == "" || known[sub.UserID] {
			continue
		}
		known[sub.UserID] = true
		src := types.SourceType(sub.SourceType)
		if src == "" {
			src = types.SourceUser
		}
		if err := st.AppendSubscriber(ctx, types.Subscriber{
			SourceType:  src,
			UserID:      sub.UserID,
			FollowState: types.FollowState(sub.FollowState),
		}); err != nil {
			return err
		}
	}
	return nil
}

// Stringify renders a decoded cell value as text. Integral floats drop their
// fraction so a numeric cell 1 reads as "1".
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		if t == math.Trunc(t) && !math.IsInf(t, 0) {
			return strconv.FormatFloat(t, 'f', -1, 64)
		}
		return strconv.FormatFloat(t, 'g', -1, 64)
	case uint64:
		return strconv.FormatUint(t, 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprint(t)
	}
}

// MarkupFields names the text fields of e that look like HTML. The text is
// sent as-is, so tags show up in the chat.
func MarkupFields(e types.FAQEntry) []string {
	var fields []string
	for _, f := range []struct{ name, text string }{
		{"text", e.Text},
		{"yes.text", e.Yes.Text},
		{"no.text", e.No.Text},
	} {
		if hasMarkup(f.text) {
			fields = append(fields, f.name)
		}
	}
	return fields
}

func hasMarkup(s string) bool {
	return html.UnescapeString(textPolicy.Sanitize(s)) != s
}
