package gym

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/snake-env/internal/core"
)

func TestColorizeZoom(t *testing.T) {
	obs := core.NewObservation(2, 3)
	obs.Set(core.Pt(0, 1), core.CellFood)
	obs.Set(core.Pt(1, 2), core.CellCode(7)) // unknown

	img := Colorize(obs, 4)
	if b := img.Bounds(); b.Dx() != 12 || b.Dy() != 8 {
		t.Fatalf("size = %dx%d, want 12x8", b.Dx(), b.Dy())
	}
	for y := 0; y < 4; y++ {
		for x := 4; x < 8; x++ {
			if img.RGBAAt(x, y) != Palette[core.CellFood] {
				t.Fatalf("pixel (%d,%d) not food", x, y)
			}
		}
	}
	if img.RGBAAt(10, 6) != Palette[core.CellEmpty] {
		t.Error("unknown code should render as empty")
	}
	if Colorize(obs, 0).Bounds().Dx() != 3 {
		t.Error("zoom below 1 should clamp to 1")
	}
}

func TestDrawFrame(t *testing.T) {
	obs := core.NewObservation(3, 3)
	obs.Set(core.Pt(1, 1), core.CellSnakeHead)
	w, h := FrameSize(obs)
	s := core.NewScreen(w, h)

	DrawFrame(s, obs, Stats{Length: 1}, "")
	if s.Get(2, hudLines+1) != '@' {
		t.Errorf("head glyph = %q", s.Get(2, hudLines+1))
	}
	if s.GetCell(2, hudLines+1).Color != core.ColorHead {
		t.Error("head should be bright green")
	}

	DrawFrame(s, obs, Stats{}, "Game Over")
	found := false
	for y := range s.Height() {
		if strings.Contains(s.Row(y), "Game Over") {
			found = true
		}
	}
	if !found {
		t.Error("status text not drawn")
	}
}

func TestWritePNG(t *testing.T) {
	obs := core.NewObservation(3, 4)
	obs.Set(core.Pt(1, 1), core.CellSnakeHead)
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := WritePNG(path, Colorize(obs, 2)); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("size = %dx%d, want 8x6", b.Dx(), b.Dy())
	}

	if err := WritePNG(filepath.Join(t.TempDir(), "missing", "x.png"), Colorize(obs, 1)); err == nil {
		t.Error("expected error for missing directory")
	}
}
