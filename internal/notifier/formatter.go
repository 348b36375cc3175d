package notifier

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"smarttrade-bot/internal/types"
)

var titles = map[types.EventKind]string{
	types.EventPositionOpened: "📈 <b>Position opened</b>",
	types.EventPositionClosed: "📉 <b>Position closed</b>",
	types.EventCycleFailed:    "❌ <b>Trading cycle failed</b>",
}

// FormatEvent renders an event as a Telegram HTML message.
func FormatEvent(e types.Event) string {
	var b strings.Builder

	title, ok := titles[e.Kind]
	if !ok {
		title = "<b>" + html.EscapeString(string(e.Kind)) + "</b>"
	}
	b.WriteString(title)
	if e.Epic != "" {
		b.WriteString(" | " + html.EscapeString(e.Epic))
	}
	b.WriteString("\n\n")

	if e.Direction != "" {
		fmt.Fprintf(&b, "Direction: %s\n", e.Direction)
	}
	if e.Size > 0 {
		fmt.Fprintf(&b, "Size: %s\n", strconv.FormatFloat(e.Size, 'f', -1, 64))
	}
	if e.Reference != "" {
		fmt.Fprintf(&b, "Reference: <code>%s</code>\n", html.EscapeString(e.Reference))
	}
	if e.Message != "" {
		fmt.Fprintf(&b, "%s\n", html.EscapeString(e.Message))
	}
	if !e.Time.IsZero() {
		fmt.Fprintf(&b, "Time: %s UTC\n", e.Time.UTC().Format("2006-01-02 15:04:05"))
	}
	return strings.TrimRight(b.String(), "\n")
}
