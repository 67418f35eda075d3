package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const squareCase = `name: square
path:
  - [[300, 250], [500, 250]]
bodies:
  - vertices: [[360, 210], [440, 210], [440, 290], [360, 290]]
    expect: 2
`

func TestCheckAndPrint(t *testing.T) {
	path := filepath.Join(t.TempDir(), "square.yaml")
	if err := os.WriteFile(path, []byte(squareCase), 0o644); err != nil {
		t.Fatal(err)
	}
	c, outcomes, err := check(path)
	if err != nil {
		t.Fatalf("check: %v", err)
	}

	var buf bytes.Buffer
	printOutcomes(&buf, c, outcomes, true)
	out := buf.String()
	for _, want := range []string{"square: 1 segments, 1 bodies", "body 0: split into 2", "fragment 1:"} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestCheckMissingFile(t *testing.T) {
	if _, outcomes, err := check(filepath.Join(t.TempDir(), "missing.yaml")); err == nil || outcomes != nil {
		t.Fatalf("expected an error for a missing file")
	}
}
