package logging

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"
)

// inTempDir runs the test from a scratch working directory so Dir is not
// created in the source tree.
func inTempDir(t *testing.T) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		_ = os.Chdir(prev)
	})
}

func TestSetup_DisabledDiscards(t *testing.T) {
	inTempDir(t)
	if f := Setup(false); f != nil {
		f.Close()
		t.Fatal("expected nil file when debug is off")
	}
	if log.Writer() != io.Discard {
		t.Fatalf("log output = %v, want io.Discard", log.Writer())
	}
	if _, err := os.Stat(Dir); !os.IsNotExist(err) {
		t.Fatal("log directory created with debug off")
	}
}

func TestSetup_EnabledWritesFile(t *testing.T) {
	inTempDir(t)
	f := Setup(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()
	if w := log.Writer(); w == os.Stdout || w == os.Stderr {
		t.Fatal("log output must not be a standard stream")
	}
	log.Println("hello")
	info, err := os.Stat(filepath.Join(Dir, FileName))
	if err != nil || info.Size() == 0 {
		t.Fatalf("log file empty or missing: %v", err)
	}
}

func TestSetup_RotatesOversizedFile(t *testing.T) {
	inTempDir(t)
	if err := os.MkdirAll(Dir, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(Dir, FileName)
	if err := os.WriteFile(path, make([]byte, MaxSize+1), 0o644); err != nil {
		t.Fatal(err)
	}
	f := Setup(true)
	if f == nil {
		t.Fatal("expected a log file")
	}
	defer f.Close()

	entries, err := os.ReadDir(Dir)
	if err != nil {
		t.Fatal(err)
	}
	rotated := false
	for _, e := range entries {
		if e.Name() != FileName && filepath.Ext(e.Name()) == ".log" {
			rotated = true
		}
	}
	if !rotated {
		t.Fatal("oversized log was not rotated")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() > MaxSize {
		t.Fatalf("active log still %d bytes", info.Size())
	}
}
