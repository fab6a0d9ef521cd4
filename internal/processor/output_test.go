package processor

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveOutputDir(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	for _, in := range []string{"", CurrentDirectoryMarker} {
		got, err := ResolveOutputDir(in)
		if err != nil || got != wd {
			t.Fatalf("ResolveOutputDir(%q) = %q, %v", in, got, err)
		}
	}
	if got, _ := ResolveOutputDir("out/pma"); got != "out/pma" {
		t.Fatalf("explicit dir changed to %q", got)
	}
}

func TestEnsureOutputDirCreatesParents(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	if err := EnsureOutputDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := EnsureOutputDir(dir); err != nil {
		t.Fatalf("existing dir: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("stat = %v, %v", info, err)
	}
}

func TestEnsureOutputDirRejectsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "taken")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := EnsureOutputDir(file); err == nil {
		t.Fatal("expected an error for a regular file")
	}
	if err := EnsureOutputDir(filepath.Join(file, "sub")); err == nil {
		t.Fatal("expected an error below a regular file")
	}
}

func TestOutputPathFlattens(t *testing.T) {
	got := OutputPath("/out", filepath.Join("src", "deep", "icon.png"))
	if got != filepath.Join("/out", "icon.png") {
		t.Fatalf("OutputPath = %s", got)
	}
}

func TestOutputClaims(t *testing.T) {
	c := newOutputClaims()
	if _, clash := c.claim("/out/a.png", "/x/a.png"); clash {
		t.Fatal("first claim clashed")
	}
	if _, clash := c.claim("/out/a.png", "/x/a.png"); clash {
		t.Fatal("same input clashed with itself")
	}
	prev, clash := c.claim("/out/a.png", "/y/a.png")
	if !clash || prev != "/x/a.png" {
		t.Fatalf("claim = %q, %v", prev, clash)
	}
}
