package designer

import (
	"errors"
	"fmt"
	"strings"
)

// Session wraps one rich-text field with a two-mode contract: passive
// display and active edit. The live copy is fully reversible until Save;
// the only transition that mutates the owning entry is Save, which hands
// the serialized live copy to the commit callback.

type State int

const (
	Idle State = iota
	Editing
)

const (
	OpForeColor = "foreColor"
	OpFontSize  = "fontSize"
)

// Palette is the fixed color swatch set; arbitrary color values are also
// accepted by foreColor (color-picker input).
var Palette = []string{"#1c1917", "#b08d57"}

// FontSizes is the bounded set of sizes fontSize accepts, in px.
var FontSizes = []string{"24", "32", "48", "64"}

var (
	ErrNotEditing     = errors.New("session is not in editing state")
	ErrUnknownCommand = errors.New("unknown formatting command")
	ErrBadValue       = errors.New("value not allowed for command")
)

// Command is one formatting operation dispatched to the live surface.
type Command struct {
	Op    string `json:"op"`
	Value string `json:"value"`
}

// Selection is a rune-offset range over the visible text of the live
// fragment (markup excluded). Start is inclusive, End exclusive.
type Selection struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// CommitFunc receives the new committed content when Save is invoked.
type CommitFunc func(html string) error

type Session struct {
	committed string
	live      string
	state     State
	commit    CommitFunc
}

// Open seeds a session's live copy verbatim from the committed content and
// moves it to Editing.
func Open(committed string, commit CommitFunc) *Session {
	return &Session{
		committed: committed,
		live:      committed,
		state:     Editing,
		commit:    commit,
	}
}

func (s *Session) State() State { return s.state }

// Live returns the current serialized state of the live surface.
func (s *Session) Live() string { return s.live }

// Apply dispatches a formatting command against the current selection.
// A command with no selection is a silent no-op, and applying a command
// never leaves the editing state.
func (s *Session) Apply(cmd Command, sel Selection) error {
	if s.state != Editing {
		return ErrNotEditing
	}

	var style string
	switch cmd.Op {
	case OpForeColor:
		if cmd.Value == "" {
			return ErrBadValue
		}
		style = "color:" + cmd.Value
	case OpFontSize:
		if !allowedSize(cmd.Value) {
			return fmt.Errorf("%w: font size %q", ErrBadValue, cmd.Value)
		}
		style = "font-size:" + cmd.Value + "px;line-height:1.2"
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Op)
	}

	start, end := clampSelection(sel, visibleLength(s.live))
	if start >= end {
		return nil
	}

	s.live = wrapRange(s.live, start, end, style)
	return nil
}

// Save commits the live copy through the callback and returns to Idle.
// A persistence failure is the owner's concern: the session still leaves
// editing and the committed view reflects the new value.
func (s *Session) Save() error {
	if s.state != Editing {
		return ErrNotEditing
	}
	s.committed = s.live
	s.state = Idle
	if s.commit != nil {
		return s.commit(s.committed)
	}
	return nil
}

// Dismiss discards the live copy without invoking the commit callback.
func (s *Session) Dismiss() {
	s.live = s.committed
	s.state = Idle
}

// Committed returns the content as last committed.
func (s *Session) Committed() string { return s.committed }

// Display renders the idle view: the committed content, or a
// distinguishable placeholder prompt when the content is empty. The
// placeholder is informational only and is never written back.
func Display(committed, label string) string {
	if committed != "" {
		return committed
	}
	prompt := "Click to design"
	if label != "" {
		prompt += " " + label
	}
	return `<span class="placeholder">` + prompt + `</span>`
}

func allowedSize(v string) bool {
	for _, s := range FontSizes {
		if v == s {
			return true
		}
	}
	return false
}

func clampSelection(sel Selection, length int) (int, int) {
	start, end := sel.Start, sel.End
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	return start, end
}

// visibleLength counts the runes of a fragment outside markup tags.
func visibleLength(html string) int {
	n := 0
	inTag := false
	for _, r := range html {
		switch {
		case inTag:
			if r == '>' {
				inTag = false
			}
		case r == '<':
			inTag = true
		default:
			n++
		}
	}
	return n
}

// wrapRange wraps the [start,end) visible-text range in styled spans.
// A range that crosses tag boundaries is wrapped per text run, so the
// result stays balanced whatever markup the fragment carries.
func wrapRange(html string, start, end int, style string) string {
	var b strings.Builder
	openTag := `<span style="` + style + `">`
	inTag := false
	open := false
	vis := 0

	for _, r := range html {
		if inTag {
			b.WriteRune(r)
			if r == '>' {
				inTag = false
			}
			continue
		}
		if r == '<' {
			if open {
				b.WriteString("</span>")
				open = false
			}
			inTag = true
			b.WriteRune(r)
			continue
		}
		if vis >= end && open {
			b.WriteString("</span>")
			open = false
		}
		if vis >= start && vis < end && !open {
			b.WriteString(openTag)
			open = true
		}
		b.WriteRune(r)
		vis++
	}
	if open {
		b.WriteString("</span>")
	}
	return b.String()
}
