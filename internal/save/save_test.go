package save

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata/v2"
)

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func newFileKeeper(t *testing.T, path string) *Keeper {
	t.Helper()
	k := NewKeeper(NewFileBackend(path), quietLogger())
	k.Load()
	return k
}

func TestMissingFileCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "save.json")

	k := newFileKeeper(t, path)
	if k.HighScore() != 0 {
		t.Errorf("HighScore() = %d, expected 0", k.HighScore())
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default save should have been created: %v", err)
	}
	if got, want := string(data), "{\n    \"high_score\": 0\n}\n"; got != want {
		t.Errorf("save file = %q, expected %q", got, want)
	}
}

func TestCorruptFileYieldsZero(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"garbage", "not json at all"},
		{"truncated", `{"high_score": 4`},
		{"negative", `{"high_score": -3}`},
		{"wrong type", `{"high_score": "ten"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}

			k := newFileKeeper(t, path)
			if k.HighScore() != 0 {
				t.Errorf("HighScore() = %d, expected 0", k.HighScore())
			}

			// The corrupt file is left alone until a run improves on it
			data, _ := os.ReadFile(path)
			if string(data) != tt.content {
				t.Errorf("corrupt file was rewritten: %q", data)
			}
		})
	}
}

func TestHighScorePersistsAcrossRestarts(t *testing.T) {
	tests := []struct {
		name     string
		initial  int
		run      int
		improved bool
		want     int
	}{
		{"better run persists", 10, 15, true, 15},
		{"worse run keeps record", 10, 5, false, 10},
		{"equal run keeps record", 10, 10, false, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "save.json")
			data, err := Encode(Record{HighScore: tt.initial})
			if err != nil {
				t.Fatal(err)
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				t.Fatal(err)
			}

			first := newFileKeeper(t, path)
			improved, err := first.Submit(tt.run)
			if err != nil {
				t.Fatalf("Submit: %v", err)
			}
			if improved != tt.improved {
				t.Errorf("Submit(%d) improved = %v, expected %v", tt.run, improved, tt.improved)
			}

			// Simulated process restart
			second := newFileKeeper(t, path)
			if second.HighScore() != tt.want {
				t.Errorf("after restart HighScore() = %d, expected %d", second.HighScore(), tt.want)
			}
		})
	}
}

type failingBackend struct {
	readErr  error
	writeErr error
	written  [][]byte
}

func (b *failingBackend) Read() ([]byte, error) { return nil, b.readErr }

func (b *failingBackend) Write(data []byte) error {
	b.written = append(b.written, data)
	return b.writeErr
}

func (b *failingBackend) String() string { return "failing" }

func TestUnreadableBackend(t *testing.T) {
	b := &failingBackend{readErr: errors.New("permission denied")}
	k := NewKeeper(b, quietLogger())

	if rec := k.Load(); rec.HighScore != 0 {
		t.Errorf("Load() = %+v, expected zero record", rec)
	}
	if len(b.written) != 0 {
		t.Error("an unreadable record must not be overwritten at load")
	}
}

func TestSubmitWriteFailure(t *testing.T) {
	b := &failingBackend{readErr: ErrNotFound, writeErr: errors.New("disk full")}
	k := NewKeeper(b, quietLogger())
	k.Load()

	improved, err := k.Submit(3)
	if !improved || err == nil {
		t.Fatalf("Submit(3) = %v, %v; expected improved with error", improved, err)
	}
	if k.HighScore() != 3 {
		t.Errorf("in-memory record should still improve, got %d", k.HighScore())
	}
}

func TestDecode(t *testing.T) {
	rec, err := Decode([]byte(`{"high_score": 42}`))
	if err != nil || rec.HighScore != 42 {
		t.Errorf("Decode = %+v, %v", rec, err)
	}
	if _, err := Decode([]byte(`{"high_score": -1}`)); !errors.Is(err, ErrCorrupt) {
		t.Errorf("Decode(negative) = %v, expected ErrCorrupt", err)
	}
}

func TestOpen(t *testing.T) {
	b, err := Open("", "")
	if err != nil {
		t.Fatalf("Open default: %v", err)
	}
	fb, ok := b.(*FileBackend)
	if !ok || fb.Path() != DefaultPath {
		t.Errorf("Open default = %v, expected file backend at %s", b, DefaultPath)
	}

	if _, err := Open("cloud", ""); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestUserPath(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"alice":       "alice.json",
		"../../etc":   "______etc.json",
		"":            "anonymous.json",
		"bob-the_2nd": "bob-the_2nd.json",
	}
	for user, want := range tests {
		got := UserPath(dir, user)
		if filepath.Dir(got) != dir || filepath.Base(got) != want {
			t.Errorf("UserPath(%q) = %q, expected %s in %s", user, got, want, dir)
		}
		if strings.Contains(filepath.Base(got), "/") {
			t.Errorf("UserPath(%q) escapes dir", user)
		}
	}
}

func TestGdataBackend(t *testing.T) {
	appName := fmt.Sprintf("flappy_save_test_%d", time.Now().UnixNano())
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Skipf("gdata unavailable: %v", err)
	}
	t.Cleanup(func() {
		if home, err := os.UserHomeDir(); err == nil {
			os.RemoveAll(filepath.Join(home, ".local", "share", appName))
		}
	})

	b := NewGdataBackend(m, "")
	if _, err := b.Read(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("fresh gdata Read() = %v, expected ErrNotFound", err)
	}

	k := NewKeeper(b, quietLogger())
	k.Load()
	if _, err := k.Submit(7); err != nil {
		t.Fatalf("Submit: %v", err)
	}

	again := NewKeeper(NewGdataBackend(m, ""), quietLogger())
	if rec := again.Load(); rec.HighScore != 7 {
		t.Errorf("gdata record = %+v, expected 7", rec)
	}
}

func TestFileBackendSharedPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players", "ann.json")

	// Two keepers on one file, as two sessions of the same player would have.
	var wg sync.WaitGroup
	for i := range 2 {
		k := NewKeeper(NewFileBackend(path), quietLogger())
		k.Load()
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for s := 1; s <= 50; s++ {
				if _, err := k.Submit(base + s); err != nil {
					t.Errorf("Submit: %v", err)
				}
			}
		}(i * 100)
	}
	wg.Wait()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	rec, err := Decode(data)
	if err != nil {
		t.Fatalf("record left corrupt: %v (%q)", err, data)
	}
	if rec.HighScore != 50 && rec.HighScore != 150 {
		t.Errorf("high score = %d, expected the last write of either keeper", rec.HighScore)
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if name := e.Name(); name != "ann.json" && name != "ann.json.lock" {
			t.Errorf("stray file %s left next to the record", name)
		}
	}
}
