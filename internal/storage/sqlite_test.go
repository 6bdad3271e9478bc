package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenCreatesFile(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	id, err := store.SaveReplay(Replay{GameID: "tetris", Seed: 1, TickRate: 60}, []Frame{{Bits: 2, Elapsed: 0.1}})
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	if _, frames, err := store.Replay(id); err != nil || len(frames) != 1 {
		t.Errorf("Replay(%d) = %d frames, %v; expected 1 frame", id, len(frames), err)
	}
}

func TestSaveAndLoadReplay(t *testing.T) {
	store := openTestStore(t)

	header := Replay{
		GameID:   "tetris",
		Seed:     -987654321,
		Preset:   "hard",
		TickRate: 60,
		Config:   "gravity:\n  initial_delay: 0.4\n",
	}
	frames := []Frame{
		{Bits: 0, Elapsed: 0.016},
		{Bits: 1<<1 | 1<<4, Elapsed: 0.017},
		{Bits: 1 << 5, Elapsed: 0.5},
	}

	id, err := store.SaveReplay(header, frames)
	if err != nil {
		t.Fatalf("SaveReplay() failed: %v", err)
	}

	got, gotFrames, err := store.Replay(id)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if got.ID != id || got.Seed != header.Seed || got.Preset != "hard" || got.TickRate != 60 || got.Config != header.Config {
		t.Errorf("Replay() header = %+v, expected %+v", got, header)
	}
	if got.Ticks != len(frames) {
		t.Errorf("Ticks = %d, expected %d", got.Ticks, len(frames))
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
	if len(gotFrames) != len(frames) {
		t.Fatalf("got %d frames, expected %d", len(gotFrames), len(frames))
	}
	for i, f := range gotFrames {
		if f.Tick != i || f.Bits != frames[i].Bits || f.Elapsed != frames[i].Elapsed {
			t.Errorf("frame %d = %+v, expected bits %b elapsed %v", i, f, frames[i].Bits, frames[i].Elapsed)
		}
	}
}

func TestReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	if _, _, err := store.Replay(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("Replay(42) error = %v, expected ErrNotFound", err)
	}
	if err := store.DeleteReplay(42); !errors.Is(err, ErrNotFound) {
		t.Errorf("DeleteReplay(42) error = %v, expected ErrNotFound", err)
	}
}

func TestListReplaysNewestFirst(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveReplay(Replay{GameID: "tetris", Seed: int64(i), TickRate: 60}, nil); err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
	}

	replays, err := store.ListReplays(3)
	if err != nil {
		t.Fatalf("ListReplays() failed: %v", err)
	}
	if len(replays) != 3 {
		t.Fatalf("ListReplays(3) returned %d, expected 3", len(replays))
	}
	if replays[0].Seed != 4 || replays[1].Seed != 3 || replays[2].Seed != 2 {
		t.Errorf("replays not newest first: %+v", replays)
	}
}

func TestDeleteReplay(t *testing.T) {
	store := openTestStore(t)

	keep, _ := store.SaveReplay(Replay{GameID: "tetris", Seed: 1, TickRate: 60}, []Frame{{Bits: 1}})
	drop, _ := store.SaveReplay(Replay{GameID: "tetris", Seed: 2, TickRate: 60}, []Frame{{Bits: 2}, {Bits: 4}})

	if err := store.DeleteReplay(drop); err != nil {
		t.Fatalf("DeleteReplay() failed: %v", err)
	}
	if _, _, err := store.Replay(drop); !errors.Is(err, ErrNotFound) {
		t.Errorf("deleted replay still loads: %v", err)
	}

	var orphans int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM replay_frames WHERE replay_id = ?", drop).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Errorf("%d frames left behind after delete", orphans)
	}

	if _, frames, err := store.Replay(keep); err != nil || len(frames) != 1 {
		t.Errorf("other replay affected by delete: %d frames, %v", len(frames), err)
	}
}
