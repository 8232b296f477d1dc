package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	return New(filepath.Join(dir, "state.json"), filepath.Join(dir, "state.json.lock"))
}

func TestGetAbsentFile(t *testing.T) {
	s := newTestStore(t)
	mac, ok, err := s.Get(context.Background(), "eth0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || mac != "" {
		t.Errorf("expected no entry, got %q", mac)
	}
}

func TestSaveGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "eth0", "aa:bb:cc:dd:ee:ff"); err != nil {
		t.Fatalf("save: %v", err)
	}
	mac, ok, err := s.Get(ctx, "eth0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || mac != "aa:bb:cc:dd:ee:ff" {
		t.Errorf("expected aa:bb:cc:dd:ee:ff, got %q (ok=%v)", mac, ok)
	}
}

func TestFirstWriteWins(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "eth0", "00:11:22:33:44:55"); err != nil {
		t.Fatalf("first save: %v", err)
	}
	if err := s.Save(ctx, "eth0", "02:aa:aa:aa:aa:aa"); err != nil {
		t.Fatalf("second save: %v", err)
	}

	mac, _, err := s.Get(ctx, "eth0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if mac != "00:11:22:33:44:55" {
		t.Errorf("second save overwrote original: got %q", mac)
	}
}

func TestIndependentInterfaces(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, "eth0", "00:11:22:33:44:55"); err != nil {
		t.Fatalf("save eth0: %v", err)
	}
	if err := s.Save(ctx, "wlan0", "66:77:88:99:aa:bb"); err != nil {
		t.Fatalf("save wlan0: %v", err)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	m := map[string]string{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(m) != 2 || m["eth0"] != "00:11:22:33:44:55" || m["wlan0"] != "66:77:88:99:aa:bb" {
		t.Errorf("unexpected file content: %v", m)
	}
}

func TestMalformedFileIsFatal(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := os.WriteFile(s.path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("seed file: %v", err)
	}

	if _, _, err := s.Get(ctx, "eth0"); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error from Get, got %v", err)
	}
	if err := s.Save(ctx, "eth0", "00:11:22:33:44:55"); err == nil || !strings.Contains(err.Error(), "parse") {
		t.Errorf("expected parse error from Save, got %v", err)
	}
}
