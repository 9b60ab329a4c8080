package facade

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestGenerateDeterministic(t *testing.T) {
	cfg := DefaultConfig()

	first, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	second, err := Generate(cfg)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("same config should produce identical cells")
	}
}

func TestGenerateSeedChangesLayout(t *testing.T) {
	a, err := Generate(Config{Columns: 10, Rows: 6, Seed: 1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(Config{Columns: 10, Rows: 6, Seed: 2})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if reflect.DeepEqual(a, b) {
		t.Error("different seeds should produce different layouts")
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	_, err := Generate(Config{Columns: 0, Rows: 6, Seed: 1})
	if err == nil {
		t.Fatal("Generate should fail on zero columns")
	}
	if !errors.Is(err, ErrConfig) {
		t.Errorf("error %v should wrap ErrConfig", err)
	}
}

func TestGenerateColumnMajorOrder(t *testing.T) {
	cells, err := Generate(Config{Columns: 3, Rows: 2, Seed: 1})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if len(cells) != 6 {
		t.Fatalf("got %d cells, want 6", len(cells))
	}

	idx := 0
	for i := 0; i < 3; i++ {
		for j := 0; j < 2; j++ {
			if cells[idx].Column != i || cells[idx].Row != j {
				t.Errorf("cell %d is (%d,%d), want (%d,%d)",
					idx, cells[idx].Column, cells[idx].Row, i, j)
			}
			idx++
		}
	}
}

func TestGenerateGridCentered(t *testing.T) {
	grids := []Config{
		{Columns: 10, Rows: 6, Seed: 1},
		{Columns: 1, Rows: 1, Seed: 3},
		{Columns: 7, Rows: 3, Seed: 9},
	}

	for _, cfg := range grids {
		cells, err := Generate(cfg)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		var sumX, sumY float64
		for _, cell := range cells {
			sumX += float64(cell.Center.X())
			sumY += float64(cell.Center.Y())
		}
		n := float64(len(cells))
		if math.Abs(sumX/n) > 1e-4 {
			t.Errorf("grid %dx%d: mean x = %v, want 0", cfg.Columns, cfg.Rows, sumX/n)
		}
		if math.Abs(sumY/n) > 1e-4 {
			t.Errorf("grid %dx%d: mean y = %v, want 0", cfg.Columns, cfg.Rows, sumY/n)
		}
	}
}

func TestGenerateLouverRanges(t *testing.T) {
	// Many seeds so the drawn ranges actually get exercised.
	for seed := 1; seed <= 50; seed++ {
		cells, err := Generate(Config{Columns: 10, Rows: 6, Seed: seed})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		for _, cell := range cells {
			if cell.Louvers == nil {
				continue
			}
			if cell.Louvers.Density < 6 || cell.Louvers.Density > 11 {
				t.Fatalf("seed %d: density %d out of [6,11]", seed, cell.Louvers.Density)
			}
			if cell.Louvers.Tilt < 0.1 || cell.Louvers.Tilt > 0.6 {
				t.Fatalf("seed %d: tilt %v out of [0.1,0.6]", seed, cell.Louvers.Tilt)
			}
		}
	}
}

func TestGenerateOpenFraction(t *testing.T) {
	open, total := 0, 0
	for seed := 1; seed <= 100; seed++ {
		cells, err := Generate(Config{Columns: 10, Rows: 6, Seed: seed})
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		for _, cell := range cells {
			total++
			if cell.Louvers == nil {
				open++
			}
		}
	}

	fraction := float64(open) / float64(total)
	if fraction < 0.2 || fraction > 0.4 {
		t.Errorf("open fraction %v, want roughly 0.3", fraction)
	}
}

func TestTotalExtent(t *testing.T) {
	wantW := 10*(ModuleWidth+Gap) - Gap
	if TotalWidth(10) != wantW {
		t.Errorf("TotalWidth(10) = %v, want %v", TotalWidth(10), wantW)
	}
	if TotalWidth(1) != ModuleWidth {
		t.Errorf("TotalWidth(1) = %v, want %v", TotalWidth(1), ModuleWidth)
	}
	if TotalHeight(1) != ModuleHeight {
		t.Errorf("TotalHeight(1) = %v, want %v", TotalHeight(1), ModuleHeight)
	}
}

func TestFrameSegmentsCoverBorder(t *testing.T) {
	cell := Cell{Center: mgl32.Vec3{2, 3, 0}}
	segs := cell.FrameSegments()

	openW, openH := Opening()

	top, bottom, left, right := segs[0], segs[1], segs[2], segs[3]

	if top.Size.X() != ModuleWidth || bottom.Size.X() != ModuleWidth {
		t.Error("horizontal segments should span the full module width")
	}
	if left.Size.Y() != openH || right.Size.Y() != openH {
		t.Error("vertical segments should span the opening height")
	}
	if top.Center.Y() <= cell.Center.Y() || bottom.Center.Y() >= cell.Center.Y() {
		t.Error("top and bottom segments misplaced")
	}
	if left.Center.X() >= cell.Center.X() || right.Center.X() <= cell.Center.X() {
		t.Error("left and right segments misplaced")
	}

	// The inner gap between the side segments equals the opening width.
	gap := (right.Center.X() - FrameThickness/2) - (left.Center.X() + FrameThickness/2)
	if math.Abs(float64(gap-openW)) > 1e-5 {
		t.Errorf("side segment gap %v, want opening width %v", gap, openW)
	}
}

func TestGlassPanelRecessed(t *testing.T) {
	cell := Cell{Center: mgl32.Vec3{0, 0, 0}}
	panel := cell.GlassPanel()

	openW, openH := Opening()
	if panel.Size.X() != openW || panel.Size.Y() != openH {
		t.Error("glass panel should fill the opening")
	}
	if panel.Center.Z() >= 0 {
		t.Error("glass panel should sit behind the frame face")
	}
}

func TestSlatOffsets(t *testing.T) {
	open := Cell{}
	if open.SlatOffsets() != nil {
		t.Error("open cell should have no slat offsets")
	}

	_, openH := Opening()
	for _, density := range []int{6, 8, 11} {
		cell := Cell{Louvers: &Louvers{Density: density}}
		offsets := cell.SlatOffsets()
		if len(offsets) != density {
			t.Fatalf("density %d: got %d offsets", density, len(offsets))
		}
		if math.Abs(float64(offsets[0]+openH/2)) > 1e-5 {
			t.Errorf("density %d: first offset %v, want %v", density, offsets[0], -openH/2)
		}
		if math.Abs(float64(offsets[density-1]-openH/2)) > 1e-5 {
			t.Errorf("density %d: last offset %v, want %v", density, offsets[density-1], openH/2)
		}
		for k := 1; k < density; k++ {
			if offsets[k] <= offsets[k-1] {
				t.Fatalf("density %d: offsets not increasing at %d", density, k)
			}
		}
	}

	single := Cell{Louvers: &Louvers{Density: 1}}
	if got := single.SlatOffsets(); len(got) != 1 || got[0] != 0 {
		t.Errorf("density 1 offsets = %v, want [0]", got)
	}
}
