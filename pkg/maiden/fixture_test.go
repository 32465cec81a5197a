package maiden

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestFixtures runs every .rock program under testdata/fixtures through
// Parse+Run and snapshots its stdout (or its error, for programs expected
// to fail). Mirrors the teacher's fixture-driven snapshot suite
// (internal/interp/fixture_test.go), scaled down to this language's much
// smaller surface: one flat directory instead of per-feature categories.
func TestFixtures(t *testing.T) {
	files, err := filepath.Glob("../../testdata/fixtures/*.rock")
	if err != nil {
		t.Fatalf("glob fixtures: %v", err)
	}
	if len(files) == 0 {
		t.Fatal("no fixtures found under testdata/fixtures")
	}

	for _, path := range files {
		name := strings.TrimSuffix(filepath.Base(path), ".rock")
		t.Run(name, func(t *testing.T) {
			snaps.MatchSnapshot(t, runFixture(t, path))
		})
	}
}

func runFixture(t *testing.T, path string) string {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}

	program, err := Parse(string(content))
	if err != nil {
		return "parse error: " + err.Error()
	}

	var out strings.Builder
	result := Run(program, strings.NewReader(""), &out)
	if !result.Ok() {
		return out.String() + "run error: " + result.Err.Error()
	}
	return out.String()
}
