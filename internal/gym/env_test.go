package gym

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-env/internal/config"
	"github.com/vovakirdan/snake-env/internal/core"
	"github.com/vovakirdan/snake-env/internal/registry"
	"github.com/vovakirdan/snake-env/internal/snake"
)

func seededConfig(seed int64) config.SnakeConfig {
	cfg := config.DefaultSnakeConfig()
	cfg.Seed = seed
	return cfg
}

func customEnv(t *testing.T) *SnakeEnv {
	t.Helper()
	cfg := seededConfig(1)
	config.ApplyPreset(&cfg, config.PresetCustom)
	env, err := registry.Create(EnvSnakeCustom, cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return env.(*SnakeEnv)
}

func TestRegisteredEnvs(t *testing.T) {
	for _, id := range []string{EnvSnake, EnvSnakeCustom} {
		if !registry.Exists(id) {
			t.Errorf("env %q not registered", id)
		}
	}
}

func TestResetObservation(t *testing.T) {
	env, err := NewSnakeEnv(EnvSnake, "Snake", seededConfig(42))
	if err != nil {
		t.Fatalf("NewSnakeEnv: %v", err)
	}

	obs, err := env.Reset()
	if err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if obs.Rows != 15 || obs.Cols != 15 {
		t.Fatalf("observation is %dx%d, want 15x15", obs.Rows, obs.Cols)
	}
	if got := obs.Count(core.CellFood); got != 1 {
		t.Errorf("food cells = %d, want 1", got)
	}
	if got := obs.Count(core.CellSnakeHead); got != 1 {
		t.Errorf("head cells = %d, want 1", got)
	}
	if got := obs.Count(core.CellSnakeBody); got != 2 {
		t.Errorf("body cells = %d, want 2", got)
	}
	if got := obs.Count(core.CellWall); got != 4*14 {
		t.Errorf("wall cells = %d, want %d", got, 4*14)
	}

	stats := env.Stats()
	if stats.Length != 3 || stats.Steps != 0 || stats.Done {
		t.Errorf("fresh stats = %+v", stats)
	}
}

func TestStepBeforeReset(t *testing.T) {
	env, err := NewSnakeEnv(EnvSnake, "Snake", seededConfig(1))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Step(0); !errors.Is(err, ErrNotReset) {
		t.Errorf("Step before Reset: err = %v, want ErrNotReset", err)
	}
	if _, err := env.Render(registry.RenderRGBArray); !errors.Is(err, ErrNotReset) {
		t.Errorf("Render before Reset: err = %v, want ErrNotReset", err)
	}
}

func TestInvalidActionNotRecorded(t *testing.T) {
	env := customEnv(t)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	for _, a := range []int{-1, 4, 99} {
		if _, err := env.Step(a); !errors.Is(err, snake.ErrInvalidAction) {
			t.Errorf("Step(%d): err = %v, want ErrInvalidAction", a, err)
		}
	}
	if len(env.Actions()) != 0 || env.Stats().Steps != 0 {
		t.Errorf("invalid actions changed the episode: %v %+v", env.Actions(), env.Stats())
	}
}

// The fixed spawn puts the head at (7,7) facing right, so going straight
// reaches the east wall on the seventh step.
func TestCustomStraightIntoWall(t *testing.T) {
	env := customEnv(t)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	right := int(snake.DirRight)
	for i := 1; i <= 6; i++ {
		res, err := env.Step(right)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		if res.Done || res.Reward != 0 {
			t.Fatalf("step %d: done=%v reward=%v", i, res.Done, res.Reward)
		}
		if head := res.Info.Snake[0]; head != core.Pt(7, 7+i) {
			t.Fatalf("step %d: head = %v", i, head)
		}
	}

	res, err := env.Step(right)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Done || res.Reward != -10 {
		t.Errorf("wall step: done=%v reward=%v", res.Done, res.Reward)
	}
	if res.Info.DeathCause != "wall" {
		t.Errorf("death cause = %q, want wall", res.Info.DeathCause)
	}
	if res.Observation.Count(core.CellSnakeHead) != 0 {
		t.Error("dead snake should not be drawn")
	}

	// Steps after the end change nothing.
	before := env.Stats()
	for range 3 {
		res, err := env.Step(int(snake.DirUp))
		if err != nil || !res.Done || res.Reward != -10 {
			t.Fatalf("post-terminal step: %+v, %v", res, err)
		}
	}
	if env.Stats() != before || len(env.Actions()) != 7 {
		t.Errorf("post-terminal steps mutated the episode: %+v, %d actions", env.Stats(), len(env.Actions()))
	}
	if before.Steps != 7 || before.TotalReward != -10 || before.DeathCause != "wall" {
		t.Errorf("final stats = %+v", before)
	}
}

func TestMaxStepsTruncates(t *testing.T) {
	cfg := seededConfig(1)
	config.ApplyPreset(&cfg, config.PresetCustom)
	cfg.Play.MaxSteps = 3
	env, err := NewSnakeEnv(EnvSnakeCustom, "Snake", cfg)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	var res core.StepResult
	for range 3 {
		if res, err = env.Step(int(snake.DirRight)); err != nil {
			t.Fatal(err)
		}
	}
	if !res.Done || !res.Info.Truncated {
		t.Errorf("expected truncation after 3 steps: %+v", res.Info)
	}
	if res.Info.DeathCause != "none" || !env.Stats().Done {
		t.Errorf("truncated episode stats = %+v", env.Stats())
	}

	before, _ := env.Snapshot()
	res, err = env.Step(int(snake.DirRight))
	if err != nil || !res.Done || !res.Info.Truncated {
		t.Fatalf("step after truncation: %+v, %v", res.Info, err)
	}
	if after, _ := env.Snapshot(); after != before {
		t.Errorf("truncated world moved: %+v -> %+v", before, after)
	}
}

func TestSameSeedSameEpisodes(t *testing.T) {
	run := func() []Stats {
		env, err := NewSnakeEnv(EnvSnake, "Snake", seededConfig(2024))
		if err != nil {
			t.Fatal(err)
		}
		p, _ := NewPolicy("random", 5)
		var out []Stats
		for range 5 {
			if _, err := RunEpisode(t.Context(), env, p, nil); err != nil {
				t.Fatal(err)
			}
			out = append(out, env.Stats())
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("episode %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestRenderRGBArray(t *testing.T) {
	env := customEnv(t)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	img, err := env.Render(registry.RenderRGBArray)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := img.Bounds(), image.Rect(0, 0, 300, 300); got != want {
		t.Fatalf("bounds = %v, want %v", got, want)
	}

	rgba := img.(*image.RGBA)
	zoom := env.Config().Render.Zoom
	checks := []struct {
		name string
		p    core.Point
		code core.CellCode
	}{
		{"wall", core.Pt(0, 0), core.CellWall},
		{"head", core.Pt(7, 7), core.CellSnakeHead},
		{"body", core.Pt(7, 6), core.CellSnakeBody},
		{"food", core.Pt(3, 3), core.CellFood},
		{"empty", core.Pt(10, 10), core.CellEmpty},
	}
	for _, c := range checks {
		got := rgba.RGBAAt(c.p.Col*zoom+zoom/2, c.p.Row*zoom+zoom/2)
		if got != Palette[c.code] {
			t.Errorf("%s pixel = %v, want %v", c.name, got, Palette[c.code])
		}
	}
}

func TestRenderHuman(t *testing.T) {
	env := customEnv(t)
	var buf bytes.Buffer
	env.SetOutput(&buf)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	img, err := env.Render(registry.RenderHuman)
	if err != nil {
		t.Fatal(err)
	}
	if img != nil {
		t.Error("human render should not return an image")
	}
	out := buf.String()
	for _, want := range []string{"@", "#", "*", "Len 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("human frame missing %q", want)
		}
	}

	if _, err := env.Render("ansi"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestClose(t *testing.T) {
	env := customEnv(t)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}
	if err := env.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := env.Step(0); !errors.Is(err, ErrClosed) {
		t.Errorf("Step after Close: %v", err)
	}
	if _, err := env.Reset(); !errors.Is(err, ErrClosed) {
		t.Errorf("Reset after Close: %v", err)
	}
}

func TestStepRespawnFailureEndsEpisode(t *testing.T) {
	env := crampedEnv(t)
	if _, err := env.Reset(); err != nil {
		t.Fatal(err)
	}

	res, err := env.Step(int(snake.DirRight))
	if !errors.Is(err, snake.ErrNoAvailableCell) {
		t.Fatalf("Step error = %v, want ErrNoAvailableCell", err)
	}
	if !res.Done || res.Info.DeathCause != "no_food" {
		t.Errorf("result = done %v cause %q, want done no_food", res.Done, res.Info.DeathCause)
	}
	stats := env.Stats()
	if !stats.Done || stats.FoodEaten != 1 || stats.DeathCause != "no_food" {
		t.Errorf("stats = %+v", stats)
	}

	for range 3 {
		res, err := env.Step(int(snake.DirDown))
		if err != nil || !res.Done {
			t.Fatalf("later Step = done %v err %v, want done without error", res.Done, err)
		}
	}
	if env.Stats() != stats {
		t.Errorf("stats changed after the episode ended: %+v", env.Stats())
	}
}

// crampedEnv is a 4x4 fixed-spawn env whose first move eats the only food
// the fallback chain can reach.
func crampedEnv(t *testing.T) *SnakeEnv {
	t.Helper()
	cfg := seededConfig(1)
	cfg.Grid = config.GridConfig{Rows: 4, Cols: 4}
	cfg.Snake.Length = 1
	cfg.Spawn.Position = config.PointConfig{Row: 1, Col: 1}
	cfg.Spawn.Direction = "right"
	cfg.Spawn.Food = config.PointConfig{Row: 1, Col: 2}
	env, err := Create(EnvSnakeCustom, cfg)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return env
}
