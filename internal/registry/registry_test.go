package registry

import (
	"errors"
	"image"
	"testing"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/core"
)

type stubEnv struct{ id string }

func (s *stubEnv) ID() string { return s.id }
func (s *stubEnv) Title() string { return "Stub" }
func (s *stubEnv) Reset() (core.Observation, error) { return core.NewObservation(3, 3), nil }
func (s *stubEnv) Step(int) (core.StepResult, error) { return core.StepResult{}, nil }
func (s *stubEnv) Render(RenderMode) (image.Image, error) { return nil, nil }
func (s *stubEnv) Close() error { return nil }

var errRejected = errors.New("rejected")

func init() {
	Register("test_stub", "Stub", func(config.SnakeConfig) (Env, error) {
		return &stubEnv{id: "test_stub"}, nil
	})
	Register("test_reject", "Reject", func(config.SnakeConfig) (Env, error) {
		return nil, errRejected
	})
}

func TestCreate(t *testing.T) {
	env, err := Create("test_stub", config.DefaultSnakeConfig())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if env.ID() != "test_stub" {
		t.Errorf("ID = %q", env.ID())
	}

	if _, err := Create("missing", config.DefaultSnakeConfig()); err == nil {
		t.Error("expected error for unknown env")
	}

	if _, err := Create("test_reject", config.DefaultSnakeConfig()); !errors.Is(err, errRejected) {
		t.Errorf("factory error not wrapped: %v", err)
	}
}

func TestListSorted(t *testing.T) {
	list := List()
	for i := 1; i < len(list); i++ {
		if list[i-1].ID >= list[i].ID {
			t.Fatalf("list not sorted: %v", list)
		}
	}
	found := false
	for _, info := range list {
		if info.ID == "test_stub" && info.Title == "Stub" {
			found = true
		}
	}
	if !found {
		t.Errorf("test_stub missing from %v", list)
	}
	if !Exists("test_stub") || Exists("missing") {
		t.Error("Exists mismatch")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("test_stub", "Again", nil)
}

func TestParseRenderMode(t *testing.T) {
	for _, s := range []string{"human", "rgb_array"} {
		if m, err := ParseRenderMode(s); err != nil || string(m) != s {
			t.Errorf("ParseRenderMode(%q) = %q, %v", s, m, err)
		}
	}
	if _, err := ParseRenderMode("ansi"); err == nil {
		t.Error("expected error for unknown mode")
	}
}
