package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/skein-dev/skein/pkg/forcegraph"
)

const testTOML = `
title = "test"

[zoom]
person = 1

[[people]]
id = 1
name = "Ada Lovelace"

[[people]]
id = 2
name = "Charles Babbage"

[[knows]]
source = 1
target = 2
since = 1833
`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dataset.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

func testCLI(t *testing.T) (*CLI, context.Context) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	c := New(io.Discard, log.ErrorLevel)
	return c, withLogger(context.Background(), c.Logger)
}

func TestRunBuild(t *testing.T) {
	c, ctx := testCLI(t)
	out := filepath.Join(t.TempDir(), "graph.json")

	err := c.runBuild(ctx, writeDataset(t, testTOML), &buildOpts{output: out})
	if err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	g, err := forcegraph.ReadGraphFile(out)
	if err != nil {
		t.Fatalf("ReadGraphFile() error = %v", err)
	}
	if _, ok := g.Nodes["person"]["person|1"]; !ok {
		t.Error("output missing node person|1")
	}
	if _, ok := g.Edges["knows"]["1|knows|2"]; !ok {
		t.Error("output missing edge 1|knows|2")
	}
}

func TestRunBuildCached(t *testing.T) {
	c, ctx := testCLI(t)
	path := writeDataset(t, testTOML)
	out := filepath.Join(t.TempDir(), "graph.json")

	// First build populates the cache, second reads from it. Both must
	// produce the same output file.
	if err := c.runBuild(ctx, path, &buildOpts{output: out}); err != nil {
		t.Fatalf("first runBuild() error = %v", err)
	}
	first, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if err := c.runBuild(ctx, path, &buildOpts{output: out}); err != nil {
		t.Fatalf("second runBuild() error = %v", err)
	}
	second, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if string(first) != string(second) {
		t.Error("cached build produced different output")
	}
}

func TestRunBuildFlat(t *testing.T) {
	c, ctx := testCLI(t)
	out := filepath.Join(t.TempDir(), "graph.json")

	err := c.runBuild(ctx, writeDataset(t, testTOML), &buildOpts{output: out, flat: true})
	if err != nil {
		t.Fatalf("runBuild() error = %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	var fg struct {
		Nodes []json.RawMessage `json:"nodes"`
		Links []json.RawMessage `json:"links"`
	}
	if err := json.Unmarshal(data, &fg); err != nil {
		t.Fatalf("unmarshal flat output: %v", err)
	}
	if len(fg.Nodes) != 2 {
		t.Errorf("len(nodes) = %d, want 2", len(fg.Nodes))
	}
	if len(fg.Links) != 1 {
		t.Errorf("len(links) = %d, want 1", len(fg.Links))
	}
}

func TestRunBuildMissingFile(t *testing.T) {
	c, ctx := testCLI(t)

	err := c.runBuild(ctx, filepath.Join(t.TempDir(), "missing.toml"), &buildOpts{})
	if err == nil {
		t.Fatal("runBuild() on missing file should return an error")
	}
}

func TestRunBuildInvalidDataset(t *testing.T) {
	c, ctx := testCLI(t)

	path := writeDataset(t, `title = "broken"

[[knows]]
source = 1
target = 2
`)
	err := c.runBuild(ctx, path, &buildOpts{})
	if err == nil {
		t.Fatal("runBuild() on invalid dataset should return an error")
	}
}
