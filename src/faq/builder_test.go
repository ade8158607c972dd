package faq

import (
	"testing"

	"github.com/yunbow/line-faq-bot/src/types"
)

func TestBuildMessage(t *testing.T) {
	msg, ok := Build(types.FAQEntry{ID: "1", Kind: types.KindMessage, Text: "Welcome!"})
	if !ok {
		t.Fatal("message entry should build")
	}
	if msg.Type != "text" || msg.Text != "Welcome!" || msg.Template != nil {
		t.Errorf("unexpected message: %+v", msg)
	}
}

func TestBuildConfirm(t *testing.T) {
	entry := types.FAQEntry{
		ID:   "2",
		Kind: types.KindConfirm,
		Text: "Did that help?",
		Yes:  types.Choice{ID: "3", Text: "Yes"},
		No:   types.Choice{ID: "4", Text: "No"},
	}
	msg, ok := Build(entry)
	if !ok {
		t.Fatal("confirm entry should build")
	}
	if msg.Type != "template" || msg.AltText != "Did that help?" {
		t.Errorf("unexpected envelope: %+v", msg)
	}
	tpl := msg.Template
	if tpl == nil || tpl.Type != "confirm" || tpl.Text != "Did that help?" {
		t.Fatalf("unexpected template: %+v", tpl)
	}
	if len(tpl.Actions) != 2 {
		t.Fatalf("confirm must carry exactly two actions, got %d", len(tpl.Actions))
	}
	want := []struct{ label, text string }{{"Yes", "3"}, {"No", "4"}}
	for i, a := range tpl.Actions {
		if a.Type != "message" || a.Label != want[i].label || a.Text != want[i].text {
			t.Errorf("action %d = %+v", i, a)
		}
		if a.Label == "" {
			t.Errorf("action %d has empty label", i)
		}
	}
}

func TestBuildUnknownKind(t *testing.T) {
	if _, ok := Build(types.FAQEntry{ID: "9", Kind: "carousel", Text: "x"}); ok {
		t.Error("unknown kind must not build")
	}
	if _, ok := Build(types.FAQEntry{ID: "9", Text: "x"}); ok {
		t.Error("empty kind must not build")
	}
}
