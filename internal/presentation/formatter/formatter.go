// Package formatter renders cockpit reports as text or JSON.
package formatter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// WriteJSON encodes v to w, optionally pretty-printed, with a trailing
// newline.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	var data []byte
	var err error
	if pretty {
		data, err = sonic.ConfigDefault.MarshalIndent(v, "", "  ")
	} else {
		data, err = sonic.Marshal(v)
	}
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// pad right-pads s to width display columns, accounting for wide runes.
func pad(s string, width int) string {
	gap := width - runewidth.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// terminalWidth reports the width of stdout when it is a terminal,
// falling back to 100 columns.
func terminalWidth() int {
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 20 {
		return w
	}
	return 100
}

// truncate shortens s to at most width display columns.
func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

func rule(width int) string {
	return strings.Repeat("=", width)
}

func periodLabel(days int) string {
	if days > 0 {
		return fmt.Sprintf("last %d days", days)
	}
	return "all time"
}
