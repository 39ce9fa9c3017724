package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/TanTanDev/shrubbery/pkg/config"
	"github.com/TanTanDev/shrubbery/pkg/errors"
)

// run executes the root command with args and returns what it wrote to stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func writePreset(t *testing.T, name string, p config.Preset) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	format, err := config.FormatFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := config.Encode(f, p, format); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestGrowSummary(t *testing.T) {
	out, err := run(t, "grow", "--no-cache", "--format", "summary")
	if err != nil {
		t.Fatalf("grow: %v", err)
	}
	if !strings.Contains(out, "voxels:") || !strings.Contains(out, "extent:") {
		t.Errorf("summary output = %q", out)
	}
}

func TestGrowJSONFromConfig(t *testing.T) {
	p := config.Default()
	p.Iterations = 2
	path := writePreset(t, "bush.yaml", p)

	out, err := run(t, "grow", "--config", path, "--seed", "3", "--attractors")
	if err != nil {
		t.Fatalf("grow: %v", err)
	}

	var doc struct {
		RunID      string            `json:"run_id"`
		Seed       uint64            `json:"seed"`
		Branches   []json.RawMessage `json:"branches"`
		Attractors []json.RawMessage `json:"attractors"`
		Voxels     []json.RawMessage `json:"voxels"`
	}
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if doc.Seed != 3 {
		t.Errorf("seed = %d, want the flag override 3", doc.Seed)
	}
	if doc.RunID == "" || len(doc.Branches) == 0 || len(doc.Voxels) == 0 {
		t.Errorf("incomplete document: run %q, %d branches, %d voxels", doc.RunID, len(doc.Branches), len(doc.Voxels))
	}
}

func TestGrowWritesOutputFile(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "shrub.json")
	if _, err := run(t, "grow", "--iterations", "1", "-o", dest); err != nil {
		t.Fatalf("grow: %v", err)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if !json.Valid(data) {
		t.Error("output file is not valid JSON")
	}
}

func TestGrowErrors(t *testing.T) {
	if _, err := run(t, "grow", "--format", "xml"); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("bad format error = %v, want INVALID_INPUT", err)
	}

	missing := filepath.Join(t.TempDir(), "missing.toml")
	if _, err := run(t, "grow", "--config", missing); !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing config error = %v, want FILE_NOT_FOUND", err)
	}

	bad := config.Default()
	bad.Growth.BranchLength = 0
	path := writePreset(t, "bad.json", bad)
	if _, err := run(t, "grow", "--config", path); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("invalid preset error = %v, want INVALID_CONFIG", err)
	}
}

func TestPresetRoundTrip(t *testing.T) {
	out, err := run(t, "preset")
	if err != nil {
		t.Fatalf("preset: %v", err)
	}
	p, err := config.Decode(strings.NewReader(out), config.FormatTOML)
	if err != nil {
		t.Fatalf("printed preset does not decode: %v\n%s", err, out)
	}
	want := config.Default()
	if p.Seed != want.Seed || p.Iterations != want.Iterations || p.Attractors.Size != want.Attractors.Size {
		t.Errorf("decoded preset differs from default: %+v", p)
	}

	if _, err := run(t, "preset", "--format", "xml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format error = %v, want INVALID_FORMAT", err)
	}
}

func TestCachePath(t *testing.T) {
	xdg := t.TempDir()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"cache", "path"})
	t.Setenv("XDG_CACHE_HOME", xdg)

	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if got, want := strings.TrimSpace(out.String()), filepath.Join(xdg, appName); got != want {
		t.Errorf("cache path = %q, want %q", got, want)
	}
}

func TestGrowPopulatesCacheAndClearEmptiesIt(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(io.Discard, LogInfo)
	for _, args := range [][]string{
		{"grow", "--iterations", "1", "--format", "summary"},
		{"cache", "clear"},
	} {
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetArgs(args)
		if args[0] == "cache" {
			entries, _ := os.ReadDir(filepath.Join(xdg, appName))
			if len(entries) == 0 {
				t.Fatal("grow left the cache empty")
			}
		}
		if err := root.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	entries, _ := os.ReadDir(filepath.Join(xdg, appName))
	if len(entries) != 0 {
		t.Errorf("cache clear left %d entries", len(entries))
	}
}

func TestCompletion(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		out, err := run(t, "completion", shell)
		if err != nil {
			t.Fatalf("completion %s: %v", shell, err)
		}
		if !strings.Contains(out, appName) {
			t.Errorf("completion %s does not mention %s", shell, appName)
		}
	}
	if _, err := run(t, "completion", "tcsh"); err == nil {
		t.Error("completion tcsh: expected error")
	}
}

func TestGrowCachePrefixSeparatesEntries(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	c := New(io.Discard, LogInfo)
	for _, prefix := range []string{"", "alice:", "alice:"} {
		root := c.RootCommand()
		root.SetOut(io.Discard)
		root.SetArgs([]string{"grow", "--iterations", "1", "--format", "summary", "--cache-prefix", prefix})
		if err := root.Execute(); err != nil {
			t.Fatalf("grow --cache-prefix %q: %v", prefix, err)
		}
	}

	entries, err := filepath.Glob(filepath.Join(xdg, appName, "*", "*.json"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("cache entries = %d, want one per prefix (2)", len(entries))
	}
}
