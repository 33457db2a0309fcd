package filedrop

import (
	"strings"
	"testing"
)

func TestBuildPhotoNameSingle(t *testing.T) {
	got := buildPhotoName("e1", 1700000000000, "beach.jpg", 0, false)
	if got != "e1-1700000000000" {
		t.Fatalf("got %q", got)
	}
}

func TestBuildPhotoNameBatchIsCollisionFree(t *testing.T) {
	names := map[string]bool{}
	files := []string{"a.jpg", "a.jpg", "b.png"}
	for i, f := range files {
		name := buildPhotoName("e1", 1700000000000, f, i, true)
		if names[name] {
			t.Fatalf("duplicate name in batch: %q", name)
		}
		names[name] = true
		if !strings.HasPrefix(name, "e1-1700000000000-") {
			t.Fatalf("name missing entry/timestamp prefix: %q", name)
		}
	}
}

func TestBuildPhotoNamePreservesSubmissionOrder(t *testing.T) {
	first := buildPhotoName("e1", 1, "x.jpg", 0, true)
	second := buildPhotoName("e1", 1, "x.jpg", 1, true)
	if !(strings.HasSuffix(first, "-0") && strings.HasSuffix(second, "-1")) {
		t.Fatalf("batch index not encoded: %q %q", first, second)
	}
}
