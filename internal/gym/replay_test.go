package gym

import (
	"path/filepath"
	"testing"
)

func TestReplayRoundTrip(t *testing.T) {
	env, err := NewSnakeEnv(EnvSnake, "Snake", seededConfig(77))
	if err != nil {
		t.Fatal(err)
	}
	p, err := NewPolicy("random", 3)
	if err != nil {
		t.Fatal(err)
	}
	rec, err := RunEpisode(t.Context(), env, p, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(rec.Actions) != rec.Final.Steps {
		t.Fatalf("recorded %d actions for %d steps", len(rec.Actions), rec.Final.Steps)
	}

	path := filepath.Join(t.TempDir(), "episode.yaml")
	if err := rec.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := LoadReplay(path)
	if err != nil {
		t.Fatalf("LoadReplay: %v", err)
	}
	if loaded.Seed != rec.Seed || len(loaded.Actions) != len(rec.Actions) {
		t.Fatalf("loaded replay differs: seed %d/%d, %d/%d actions",
			loaded.Seed, rec.Seed, len(loaded.Actions), len(rec.Actions))
	}
	if err := loaded.Verify(); err != nil {
		t.Errorf("Verify: %v", err)
	}

	frames := 0
	if _, err := loaded.Playback(func(*SnakeEnv) error { frames++; return nil }); err != nil {
		t.Fatal(err)
	}
	if frames != len(loaded.Actions)+1 {
		t.Errorf("frames = %d, want %d", frames, len(loaded.Actions)+1)
	}
}

func TestReplayDetectsDivergence(t *testing.T) {
	env := customEnv(t)
	rec, err := RunEpisode(t.Context(), env, StraightPolicy{}, nil)
	if err != nil {
		t.Fatal(err)
	}
	rec.Final.Steps++
	if err := rec.Verify(); err == nil {
		t.Error("expected divergence error")
	}
}

func TestLoadReplayMissing(t *testing.T) {
	if _, err := LoadReplay(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error")
	}
}
