package runner_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/triviafmt/pkg/config"
	"github.com/yaklabco/triviafmt/pkg/format"
	"github.com/yaklabco/triviafmt/pkg/runner"
	"github.com/yaklabco/triviafmt/pkg/syntax"
)

func newRunner() *runner.Runner {
	return runner.New(format.NewPipeline(format.Fixed(format.DefaultOptions(syntax.DialectC))))
}

func writeSources(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0o644); err != nil {
			t.Fatalf("setup: %v", err)
		}
	}
	return root
}

func TestNew(t *testing.T) {
	t.Parallel()

	pipeline := format.NewPipeline(format.Fixed(format.DefaultOptions(syntax.DialectC)))
	if runner.New(pipeline).Pipeline != pipeline {
		t.Error("Pipeline not set correctly")
	}
}

func TestRunner_Run_NoFiles(t *testing.T) {
	t.Parallel()

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(result.Files) != 0 || result.Stats.FilesDiscovered != 0 {
		t.Errorf("result = %+v", result)
	}
	if result.HasChanges() || result.Err() != nil {
		t.Error("empty run should have no changes or errors")
	}
}

func TestRunner_Run_Check(t *testing.T) {
	t.Parallel()

	root := writeSources(t, map[string]string{
		"a.c": "int a;\n",
		"b.c": "x  =  1 ;\n",
		"c.c": "void f(){x;}\n",
	})

	cfg := config.NewConfig()
	cfg.Check = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg, Jobs: 2})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if result.Stats.FilesDiscovered != 3 || result.Stats.FilesProcessed != 3 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Stats.FilesChanged != 2 || result.Stats.FilesWritten != 0 {
		t.Errorf("stats = %+v", result.Stats)
	}
	if result.Stats.Edits == 0 {
		t.Error("Edits should count the changes")
	}
	if !result.HasChanges() {
		t.Error("HasChanges() should be true")
	}

	for i, want := range []string{"a.c", "b.c", "c.c"} {
		if filepath.Base(result.Files[i].Path) != want {
			t.Errorf("Files[%d] = %s, want %s", i, result.Files[i].Path, want)
		}
	}

	got, err := os.ReadFile(filepath.Join(root, "b.c"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "x  =  1 ;\n" {
		t.Error("check mode must not write")
	}
}

func TestRunner_Run_Write(t *testing.T) {
	t.Parallel()

	root := writeSources(t, map[string]string{"b.c": "x  =  1 ;\n"})

	cfg := config.NewConfig()
	cfg.Write = true
	cfg.Backups.Enabled = true

	result, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Config: cfg})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesWritten != 1 || result.Stats.BackupsCreated != 1 {
		t.Errorf("stats = %+v", result.Stats)
	}

	got, err := os.ReadFile(filepath.Join(root, "b.c"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "x = 1;\n" {
		t.Errorf("content = %q", got)
	}
}

func TestRunner_Run_SerialVsParallel(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".c"] = "void " + name + "(){x;y;}\n"
	}
	root := writeSources(t, files)

	serial, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 1})
	if err != nil {
		t.Fatal(err)
	}
	parallel, err := newRunner().Run(context.Background(), runner.Options{WorkingDir: root, Jobs: 8})
	if err != nil {
		t.Fatal(err)
	}

	if serial.Stats != parallel.Stats {
		t.Errorf("stats differ: %+v vs %+v", serial.Stats, parallel.Stats)
	}
	for i := range serial.Files {
		if serial.Files[i].Path != parallel.Files[i].Path ||
			string(serial.Files[i].Result.Formatted) != string(parallel.Files[i].Result.Formatted) {
			t.Errorf("file %d differs", i)
		}
	}
}

func TestRunner_Run_FileErrors(t *testing.T) {
	t.Parallel()

	root := writeSources(t, map[string]string{"ok.c": "x;\n"})
	boom := errors.New("boom")

	pipeline := format.NewPipeline(format.ResolverFunc(func(path string, _ []byte) (format.FileOptions, error) {
		return format.FileOptions{}, boom
	}))

	result, err := runner.New(pipeline).Run(context.Background(), runner.Options{WorkingDir: root})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Stats.FilesErrored != 1 || !result.HasErrors() {
		t.Errorf("stats = %+v", result.Stats)
	}

	combined := result.Err()
	if !errors.Is(combined, boom) {
		t.Errorf("Err() = %v, want boom", combined)
	}
	if !strings.Contains(combined.Error(), "ok.c") {
		t.Errorf("Err() should name the file: %v", combined)
	}
}

func TestRunner_Run_ContextCancellation(t *testing.T) {
	t.Parallel()

	root := writeSources(t, map[string]string{"a.c": "x;\n"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newRunner().Run(ctx, runner.Options{WorkingDir: root}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	var nilResult *runner.Result
	if nilResult.Err() != nil || nilResult.HasChanges() || nilResult.HasErrors() {
		t.Error("nil result should report nothing")
	}

	runErr := errors.New("run")
	result := &runner.Result{
		Files: []runner.FileOutcome{
			{Path: "a.c", Error: errors.New("a")},
			{Path: "b.c", Error: errors.New("b")},
		},
		Errors: []error{runErr},
	}

	err := result.Err()
	if !errors.Is(err, runErr) {
		t.Errorf("Err() = %v, want to wrap run error", err)
	}
	for _, want := range []string{"a.c: a", "b.c: b", "run"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Err() = %q, missing %q", err, want)
		}
	}
}
