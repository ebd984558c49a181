package formatter_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/theoremus-urban-solutions/gtfsrt-to-json/formatter"
	"github.com/theoremus-urban-solutions/gtfsrt-to-json/tests/helpers"
)

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("broken pipe") }

func TestEmitter_WritesBothSinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtfs_output.json")
	var console bytes.Buffer

	e := formatter.NewEmitter(defaultFormatter(), &console, path)
	text, err := e.Emit(helpers.SampleTripUpdateFeed())
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("output file missing: %v", err)
	}
	if !bytes.Equal(onDisk, text) {
		t.Error("file content differs from emitted text")
	}
	if !bytes.Equal(console.Bytes(), text) {
		t.Error("console content differs from emitted text")
	}
}

func TestEmitter_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtfs_output.json")
	if err := os.WriteFile(path, bytes.Repeat([]byte("x"), 64<<10), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	e := formatter.NewEmitter(defaultFormatter(), &bytes.Buffer{}, path)
	text, err := e.Emit(helpers.SampleTripUpdateFeed())
	if err != nil {
		t.Fatalf("Emit failed: %v", err)
	}
	onDisk, _ := os.ReadFile(path)
	if !bytes.Equal(onDisk, text) {
		t.Error("previous content should be fully replaced, not appended")
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Errorf("temp files left behind: %d entries", len(entries))
	}
}

// TestEmitter_UnwritablePath uses a regular file as the parent directory,
// which fails regardless of the user running the test
func TestEmitter_UnwritablePath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "not-a-dir")
	if err := os.WriteFile(blocker, []byte("file"), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	path := filepath.Join(blocker, "gtfs_output.json")

	var console bytes.Buffer
	_, err := formatter.NewEmitter(defaultFormatter(), &console, path).Emit(helpers.SampleTripUpdateFeed())

	var ioErr *formatter.IoError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IoError, got %T: %v", err, err)
	}
	if ioErr.Path != path {
		t.Errorf("expected path %s, got %s", path, ioErr.Path)
	}
	if _, err := os.Stat(path); err == nil {
		t.Error("output file must not exist after a failed write")
	}
}

// TestEmitter_FailedWriteKeepsPreviousFile needs a read-only directory,
// which root ignores
func TestEmitter_FailedWriteKeepsPreviousFile(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("directory permissions are not enforced for root")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "gtfs_output.json")
	if err := os.WriteFile(path, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := os.Chmod(dir, 0o555); err != nil {
		t.Fatalf("chmod failed: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := formatter.NewEmitter(defaultFormatter(), &bytes.Buffer{}, path).Emit(helpers.SampleTripUpdateFeed())

	var ioErr *formatter.IoError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IoError, got %T: %v", err, err)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("previous file should still exist: %v", err)
	}
	if string(got) != "previous" {
		t.Errorf("previous content should be kept, got %q", got)
	}
}

func TestEmitter_ConsoleFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gtfs_output.json")

	_, err := formatter.NewEmitter(defaultFormatter(), failingWriter{}, path).Emit(helpers.SampleTripUpdateFeed())

	var ioErr *formatter.IoError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected *IoError, got %T: %v", err, err)
	}
	if ioErr.Path != formatter.ConsoleSink {
		t.Errorf("expected console sink, got %s", ioErr.Path)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file must not be written after a console failure")
	}
}

func TestWriteFileAtomic_CleansUpOnFailure(t *testing.T) {
	dir := t.TempDir()

	// renaming a file over a directory fails
	target := filepath.Join(dir, "busy")
	if err := os.MkdirAll(filepath.Join(target, "child"), 0o755); err != nil {
		t.Fatalf("mkdir failed: %v", err)
	}
	if err := formatter.WriteFileAtomic(target, []byte("new"), 0o644); err == nil {
		t.Fatal("expected error replacing a directory")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 || entries[0].Name() != "busy" {
		t.Errorf("temp file left behind: %v", entries)
	}
}
