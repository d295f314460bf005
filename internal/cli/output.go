package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
)

type printer struct {
	w    io.Writer
	json bool
}

// emit writes v as indented JSON in --json mode, otherwise calls text with
// a tabwriter that is flushed afterwards.
func (p printer) emit(v any, text func(tw *tabwriter.Writer)) error {
	if p.json {
		enc := json.NewEncoder(p.w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	text(tw)
	return tw.Flush()
}

// message prints a one-line confirmation, or {"message": ...} in JSON mode.
func (p printer) message(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return p.emit(map[string]string{"message": msg}, func(tw *tabwriter.Writer) {
		fmt.Fprintln(tw, msg)
	})
}

// serverTimeLayouts are the timestamp shapes the API emits.
var serverTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

// ago renders a server timestamp relative to now, or returns it unchanged
// when it cannot be parsed.
func ago(ts string) string {
	if ts == "" {
		return "-"
	}
	for _, layout := range serverTimeLayouts {
		if t, err := time.ParseInLocation(layout, ts, time.Local); err == nil {
			return humanize.Time(t)
		}
	}
	return ts
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
