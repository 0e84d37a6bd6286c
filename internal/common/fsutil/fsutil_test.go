package fsutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestExpandHomeNoTilde(t *testing.T) {
	p, err := ExpandHome("/tmp/data")
	if err != nil { t.Fatalf("expand: %v", err) }
	if p != "/tmp/data" { t.Fatalf("unexpected: %s", p) }
}

func TestExpandHomeTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil { t.Skip("no home dir") }
	p, err := ExpandHome("~/playground/data")
	if err != nil { t.Fatalf("expand: %v", err) }
	if !strings.HasPrefix(p, home) { t.Fatalf("expected prefix %s, got %s", home, p) }
}

func TestExpandHomeEmpty(t *testing.T) {
	p, err := ExpandHome("")
	if err != nil || p != "" { t.Fatalf("expected empty passthrough, got %q err=%v", p, err) }
}

func TestPathExists(t *testing.T) {
	d := t.TempDir()
	if !PathExists(d) { t.Fatalf("expected temp dir to exist") }
	if PathExists(filepath.Join(d, "nope")) { t.Fatalf("expected missing path") }
}

func TestEnsureDir(t *testing.T) {
	d := t.TempDir()
	p, err := EnsureDir(filepath.Join(d, "a", "b"))
	if err != nil { t.Fatalf("ensure: %v", err) }
	if !PathExists(p) { t.Fatalf("dir not created: %s", p) }
	// idempotent
	if _, err := EnsureDir(p); err != nil { t.Fatalf("ensure again: %v", err) }
}

func TestWritableDir(t *testing.T) {
	d := t.TempDir()
	if !WritableDir(d) { t.Fatalf("temp dir should be writable") }
	if WritableDir(filepath.Join(d, "missing")) { t.Fatalf("missing dir should not be writable") }
}
