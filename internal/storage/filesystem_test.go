package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	data := []byte{0x00, 0x01, 0xfe, 0xff}

	path, err := Save(context.Background(), dir, "clip_00001.mp4", data)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if path != filepath.Join(dir, "clip_00001.mp4") {
		t.Fatalf("path = %q", path)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("content mismatch: %v vs %v", got, data)
	}
}

func TestWriteRejectsTraversal(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	for _, key := range []string{"", "  ", "..", "../escape.mp4", "a/../../escape.mp4", "."} {
		if _, err := store.Write(context.Background(), key, []byte("x")); !errors.Is(err, ErrInvalidKey) {
			t.Fatalf("Write(%q) err = %v, want ErrInvalidKey", key, err)
		}
	}
}

func TestWriteNormalizesKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	key, err := store.Write(context.Background(), "/videos\\clip.mp4", []byte("x"))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if key != "videos/clip.mp4" {
		t.Fatalf("key = %q, want videos/clip.mp4", key)
	}
	if _, err := os.Stat(store.Path(key)); err != nil {
		t.Fatalf("stat written file: %v", err)
	}
}

func TestWriteHonorsCanceledContext(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.Write(ctx, "clip.mp4", []byte("x")); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}

func TestNewFileStoreRequiresPath(t *testing.T) {
	if _, err := NewFileStore(" "); err == nil {
		t.Fatalf("expected error for empty base path")
	}
}
