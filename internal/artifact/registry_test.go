package artifact

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewPathRegisters(t *testing.T) {
	reg, err := NewRegistry(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	p1 := reg.NewPath("audio", ".wav")
	p2 := reg.NewPath("audio", ".wav")

	if p1 == p2 {
		t.Error("NewPath() returned identical paths")
	}
	if !strings.HasSuffix(p1, ".wav") {
		t.Errorf("NewPath() = %q, want .wav suffix", p1)
	}
	if !strings.HasPrefix(filepath.Base(p1), "audio_") {
		t.Errorf("NewPath() = %q, want audio_ prefix", p1)
	}
	if reg.Active() != 2 {
		t.Errorf("Active() = %d, want 2", reg.Active())
	}
}

func TestReleaseDeletesFile(t *testing.T) {
	reg, err := NewRegistry(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	path := reg.NewPath("audio", ".wav")
	if err := os.WriteFile(path, []byte("pcm"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := reg.Release(path); err != nil {
		t.Fatalf("Release() error = %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("file still exists after Release: %s", path)
	}
	if reg.Active() != 0 {
		t.Errorf("Active() = %d, want 0", reg.Active())
	}
}

func TestReleaseMissingFile(t *testing.T) {
	reg, err := NewRegistry(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	// Path reserved but never created by the stage.
	path := reg.NewPath("segment", ".wav")
	if err := reg.Release(path); err != nil {
		t.Errorf("Release() of missing file error = %v", err)
	}
}

func TestReleaseAll(t *testing.T) {
	dir := t.TempDir()
	reg, err := NewRegistry(dir)
	if err != nil {
		t.Fatal(err)
	}

	var created []string
	for i := 0; i < 3; i++ {
		p := reg.NewPath("audio", ".wav")
		if err := os.WriteFile(p, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		created = append(created, p)
	}
	// One reserved path with no file behind it.
	reg.NewPath("segment", ".wav")

	if n := reg.ReleaseAll(); n != 4 {
		t.Errorf("ReleaseAll() = %d, want 4", n)
	}
	for _, p := range created {
		if _, err := os.Stat(p); !os.IsNotExist(err) {
			t.Errorf("file survived ReleaseAll: %s", p)
		}
	}
	if reg.Active() != 0 {
		t.Errorf("Active() = %d, want 0", reg.Active())
	}

	// Second sweep is a no-op.
	if n := reg.ReleaseAll(); n != 0 {
		t.Errorf("second ReleaseAll() = %d, want 0", n)
	}
}
