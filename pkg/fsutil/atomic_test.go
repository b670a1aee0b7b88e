package fsutil_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/yaklabco/triviafmt/pkg/fsutil"
)

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "old\n", 0o600)
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("new\n"), 0o600); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}

		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "new\n" {
			t.Errorf("content = %q", got)
		}
		stat, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if stat.Mode().Perm() != 0o600 {
			t.Errorf("mode = %o, want 600", stat.Mode().Perm())
		}
	})

	t.Run("default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.c")
		if err := fsutil.WriteAtomic(context.Background(), path, nil, 0); err != nil {
			t.Fatalf("WriteAtomic() error = %v", err)
		}
		stat, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if stat.Size() != 0 {
			t.Errorf("size = %d, want 0", stat.Size())
		}
	})

	t.Run("leaves no temp files", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "x\n", 0o644)
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("y\n"), 0); err != nil {
			t.Fatal(err)
		}
		entries, err := os.ReadDir(filepath.Dir(path))
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 {
			t.Errorf("directory has %d entries, want 1", len(entries))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "no", "such", "dir.c")
		if err := fsutil.WriteAtomic(context.Background(), path, []byte("x"), 0); err == nil {
			t.Error("expected error")
		}
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, "keep\n", 0o644)
		err := fsutil.WriteAtomic(cancelled(), path, []byte("lost\n"), 0)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("error = %v, want context.Canceled", err)
		}
		got, _ := os.ReadFile(path)
		if string(got) != "keep\n" {
			t.Errorf("content = %q, want untouched", got)
		}
	})
}
