package faq

import (
	"github.com/yunbow/line-faq-bot/src/line"
	"github.com/yunbow/line-faq-bot/src/types"
)

// Build converts an entry into its outbound message. Entries of unknown kind
// produce nothing.
func Build(e types.FAQEntry) (line.Message, bool) {
	switch e.Kind {
	case types.KindMessage:
		return line.NewTextMessage(e.Text), true
	case types.KindConfirm:
		return line.NewConfirmMessage(e.Text,
			line.NewMessageAction(e.Yes.Text, e.Yes.ID),
			line.NewMessageAction(e.No.Text, e.No.ID),
		), true
	default:
		return line.Message{}, false
	}
}
