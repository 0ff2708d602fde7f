package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

type reloadResult struct {
	file File
	err  error
}

func startWatcher(t *testing.T, path string) (*Watcher, chan reloadResult) {
	t.Helper()
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	t.Cleanup(func() { w.Close() })
	w.SetDebounce(10 * time.Millisecond)

	results := make(chan reloadResult, 4)
	w.OnReload(func(file File, err error) {
		results <- reloadResult{file: file, err: err}
	})
	return w, results
}

func awaitReload(t *testing.T, results chan reloadResult) reloadResult {
	t.Helper()
	select {
	case r := <-results:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return reloadResult{}
	}
}

func TestWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecstorm.toml")
	if err := os.WriteFile(path, []byte("[gesture]\ndrag_threshold_px = 3.0\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, results := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("[gesture]\ndrag_threshold_px = 7.0\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	r := awaitReload(t, results)
	if r.err != nil {
		t.Fatalf("reload error = %v", r.err)
	}
	if got := r.file.Config().DragThresholdPx; got != 7 {
		t.Errorf("reloaded DragThresholdPx = %v, want 7", got)
	}
}

func TestWatcherPicksUpCreatedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vecstorm.toml")

	_, results := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("[snap]\ngrid_enabled = true\n"), 0o644); err != nil {
		t.Fatalf("creating config: %v", err)
	}

	r := awaitReload(t, results)
	if r.err != nil {
		t.Fatalf("reload error = %v", r.err)
	}
	if !r.file.Options().Snap.GridEnabled {
		t.Error("created config not applied")
	}
}

func TestWatcherReportsParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecstorm.toml")
	if err := os.WriteFile(path, []byte("ok = true\n"), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	_, results := startWatcher(t, path)

	if err := os.WriteFile(path, []byte("[broken\n"), 0o644); err != nil {
		t.Fatalf("rewriting config: %v", err)
	}

	r := awaitReload(t, results)
	if r.err == nil {
		t.Error("reload error = nil for malformed TOML")
	}
}

func TestWatcherCloseIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vecstorm.toml")
	w, err := NewWatcher(path)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
}
