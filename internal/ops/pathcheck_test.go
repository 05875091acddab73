package ops

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/jotpad/jot/internal/config"
	"github.com/jotpad/jot/internal/errors"
)

func TestValidatePath_Traversal(t *testing.T) {
	cfg := config.DefaultConfig()
	for _, path := range []string{"../escape.json", "a/../../b.json", ".."} {
		if err := ValidatePath(path, PathCheckWrite, cfg); !errors.Is(err, errors.ErrValidation) {
			t.Errorf("ValidatePath(%q) should return ErrValidation, got: %v", path, err)
		}
	}
}

func TestValidatePath_Extension(t *testing.T) {
	dir := t.TempDir()
	cfg := exportConfig(dir)
	for _, name := range []string{"x.txt", "x.jsonl", "x"} {
		path := filepath.Join(dir, name)
		if err := ValidatePath(path, PathCheckWrite, cfg); !errors.Is(err, errors.ErrValidation) {
			t.Errorf("ValidatePath(%q) should reject extension, got: %v", path, err)
		}
	}
	if err := ValidatePath(filepath.Join(dir, "x.json"), PathCheckWrite, cfg); err != nil {
		t.Errorf("ValidatePath should accept .json in allowed dir, got: %v", err)
	}
}

func TestValidatePath_NoSubdirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := exportConfig(dir)
	sub := filepath.Join(dir, "nested")
	if err := os.MkdirAll(sub, 0700); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}

	err := ValidatePath(filepath.Join(sub, "x.json"), PathCheckWrite, cfg)
	if !errors.Is(err, errors.ErrValidation) {
		t.Errorf("nested path should return ErrValidation, got: %v", err)
	}
}

func TestValidatePath_ReadRequiresExistingFile(t *testing.T) {
	dir := t.TempDir()
	cfg := exportConfig(dir)
	path := filepath.Join(dir, "absent.json")

	if err := ValidatePath(path, PathCheckRead, cfg); !errors.Is(err, errors.ErrNotFound) {
		t.Errorf("read of absent file should return ErrNotFound, got: %v", err)
	}

	if err := os.WriteFile(path, []byte("{}"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := ValidatePath(path, PathCheckRead, cfg); err != nil {
		t.Errorf("read of existing file should pass, got: %v", err)
	}
}

func TestValidatePath_AllowUnsafePaths(t *testing.T) {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.AllowUnsafePaths = true

	// Arbitrary directory allowed, extension still enforced
	if err := ValidatePath(filepath.Join(dir, "sub", "any.json"), PathCheckWrite, cfg); err != nil {
		t.Errorf("unsafe mode should allow arbitrary dirs, got: %v", err)
	}
	if err := ValidatePath(filepath.Join(dir, "x.txt"), PathCheckWrite, cfg); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("unsafe mode should still reject extension, got: %v", err)
	}
}

func TestValidatePath_RejectsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on Windows")
	}
	dir := t.TempDir()
	cfg := exportConfig(dir)

	target := filepath.Join(dir, "real.json")
	if err := os.WriteFile(target, []byte("{}"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	link := filepath.Join(dir, "link.json")
	if err := os.Symlink(target, link); err != nil {
		t.Fatalf("Symlink failed: %v", err)
	}

	if err := ValidatePath(link, PathCheckWrite, cfg); !errors.Is(err, errors.ErrValidation) {
		t.Errorf("symlink path should return ErrValidation, got: %v", err)
	}
}
