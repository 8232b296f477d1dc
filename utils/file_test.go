package utils

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestAtomicWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	if err := AtomicWriteJSON(path, map[string]string{"eth0": "00:11:22:33:44:55"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	// Overwrite with new content; the old file must be fully replaced.
	if err := AtomicWriteJSON(path, map[string]string{"wlan0": "02:aa:aa:aa:aa:aa"}); err != nil {
		t.Fatalf("rewrite: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	got := map[string]string{}
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(got) != 1 || got["wlan0"] != "02:aa:aa:aa:aa:aa" {
		t.Errorf("unexpected content: %v", got)
	}

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only state.json, got %d entries", len(entries))
	}
}
