package designer

import (
	"errors"
	"testing"
)

func TestRoundTripWithoutEdits(t *testing.T) {
	const content = `<div style="color:#b08d57">Day one in <b>Kyoto</b></div>`

	var committed string
	s := Open(content, func(html string) error {
		committed = html
		return nil
	})
	if err := s.Save(); err != nil {
		t.Fatal(err)
	}
	if committed != content {
		t.Fatalf("re-saved content changed:\n got %q\nwant %q", committed, content)
	}
}

func TestApplyForeColorWrapsSelection(t *testing.T) {
	s := Open("hello world", nil)
	if err := s.Apply(Command{Op: OpForeColor, Value: "#b08d57"}, Selection{Start: 0, End: 5}); err != nil {
		t.Fatal(err)
	}
	want := `<span style="color:#b08d57">hello</span> world`
	if s.Live() != want {
		t.Fatalf("got %q, want %q", s.Live(), want)
	}
	if s.State() != Editing {
		t.Fatal("applying a command must not leave the editing state")
	}
}

func TestApplyFontSizeWrapsSelection(t *testing.T) {
	s := Open("big day", nil)
	if err := s.Apply(Command{Op: OpFontSize, Value: "48"}, Selection{Start: 0, End: 3}); err != nil {
		t.Fatal(err)
	}
	want := `<span style="font-size:48px;line-height:1.2">big</span> day`
	if s.Live() != want {
		t.Fatalf("got %q, want %q", s.Live(), want)
	}
}

func TestApplyRejectsUnlistedFontSize(t *testing.T) {
	s := Open("text", nil)
	err := s.Apply(Command{Op: OpFontSize, Value: "17"}, Selection{Start: 0, End: 4})
	if !errors.Is(err, ErrBadValue) {
		t.Fatalf("expected ErrBadValue, got %v", err)
	}
}

func TestApplyWithoutSelectionIsNoOp(t *testing.T) {
	s := Open("untouched", nil)
	if err := s.Apply(Command{Op: OpForeColor, Value: "#1c1917"}, Selection{}); err != nil {
		t.Fatal(err)
	}
	if s.Live() != "untouched" {
		t.Fatalf("selection-less command modified content: %q", s.Live())
	}
}

func TestApplyAcrossTagBoundaryStaysBalanced(t *testing.T) {
	s := Open("ab<b>cd</b>ef", nil)
	if err := s.Apply(Command{Op: OpForeColor, Value: "red"}, Selection{Start: 1, End: 5}); err != nil {
		t.Fatal(err)
	}
	want := `a<span style="color:red">b</span><b><span style="color:red">cd</span></b><span style="color:red">e</span>f`
	if s.Live() != want {
		t.Fatalf("got %q, want %q", s.Live(), want)
	}
}

func TestDismissDiscardsLiveEdits(t *testing.T) {
	called := false
	s := Open("original", func(string) error {
		called = true
		return nil
	})
	if err := s.Apply(Command{Op: OpForeColor, Value: "blue"}, Selection{Start: 0, End: 8}); err != nil {
		t.Fatal(err)
	}
	s.Dismiss()
	if called {
		t.Fatal("dismiss must not invoke the commit callback")
	}
	if s.Committed() != "original" {
		t.Fatalf("committed content changed: %q", s.Committed())
	}
	if s.State() != Idle {
		t.Fatal("expected Idle after dismiss")
	}
}

func TestDisplayPlaceholderForEmptyContent(t *testing.T) {
	got := Display("", "title")
	if got == "" {
		t.Fatal("empty content must render a placeholder, not empty markup")
	}
	if got == Display("actual content", "title") {
		t.Fatal("placeholder must be distinguishable from content")
	}
	if Display("actual content", "title") != "actual content" {
		t.Fatal("nonempty content must render verbatim")
	}
}

func TestRegistryReplacesDraftPerField(t *testing.T) {
	r := NewRegistry()
	first := r.OpenDraft("e1", "title", "one", nil)
	second := r.OpenDraft("e1", "title", "two", nil)

	if _, ok := r.Get(first.ID); ok {
		t.Fatal("opening a new draft for the same field must replace the old one")
	}
	d, ok := r.Get(second.ID)
	if !ok || d.Session.Live() != "two" {
		t.Fatal("expected the replacement draft to be registered")
	}

	other := r.OpenDraft("e1", "thoughts", "diary", nil)
	if _, ok := r.Get(second.ID); !ok {
		t.Fatal("a draft for a different field must not replace existing drafts")
	}
	r.Remove(other.ID)
	if _, ok := r.Get(other.ID); ok {
		t.Fatal("removed draft still registered")
	}
}
