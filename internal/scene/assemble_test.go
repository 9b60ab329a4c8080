package scene

import (
	"reflect"
	"testing"

	"Facade3D/internal/facade"
	"Facade3D/internal/renderer"
)

func buildCells(t *testing.T, seed int) []facade.Cell {
	t.Helper()
	cells, err := facade.Generate(facade.Config{Columns: 10, Rows: 6, Seed: seed})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	return cells
}

func modelByName(t *testing.T, sc *Scene, name string) *renderer.Model {
	t.Helper()
	for _, m := range sc.Models {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("scene has no model %q", name)
	return nil
}

func TestAssembleInstanceCounts(t *testing.T) {
	cells := buildCells(t, 1)
	preset, _ := PresetFor(Daylight)
	sc := Assemble(cells, preset)

	frames := modelByName(t, sc, "facade-frames")
	glass := modelByName(t, sc, "facade-glass")
	slats := modelByName(t, sc, "facade-louvers")

	if frames.InstanceCount != len(cells)*4 {
		t.Errorf("frame instances = %d, want %d", frames.InstanceCount, len(cells)*4)
	}
	if glass.InstanceCount != len(cells) {
		t.Errorf("glass instances = %d, want %d", glass.InstanceCount, len(cells))
	}

	wantSlats := 0
	for _, cell := range cells {
		if cell.Louvers != nil {
			wantSlats += cell.Louvers.Density
		}
	}
	if slats.InstanceCount != wantSlats {
		t.Errorf("slat instances = %d, want %d", slats.InstanceCount, wantSlats)
	}
}

func TestAssembleSharedMaterials(t *testing.T) {
	cells := buildCells(t, 1)
	preset, _ := PresetFor(Daylight)
	sc := Assemble(cells, preset)

	if modelByName(t, sc, "facade-frames").Material != Concrete {
		t.Error("frames should share the Concrete material instance")
	}
	if modelByName(t, sc, "facade-glass").Material != Glass {
		t.Error("glass should share the Glass material instance")
	}
	if modelByName(t, sc, "facade-louvers").Material != Wood {
		t.Error("louvers should share the Wood material instance")
	}
	if Glass.Alpha >= 1 {
		t.Error("glass material should be translucent")
	}
}

func TestAssembleIdempotent(t *testing.T) {
	cells := buildCells(t, 7)
	preset, _ := PresetFor(Golden)

	a := Assemble(cells, preset)
	b := Assemble(cells, preset)

	if len(a.Models) != len(b.Models) {
		t.Fatalf("model counts differ: %d vs %d", len(a.Models), len(b.Models))
	}
	for i := range a.Models {
		if !reflect.DeepEqual(a.Models[i].InstanceModelMatrices, b.Models[i].InstanceModelMatrices) {
			t.Errorf("model %q instance matrices differ between runs", a.Models[i].Name)
		}
	}
	if !reflect.DeepEqual(a.Sky, b.Sky) {
		t.Error("sky differs between runs")
	}
}

func TestAssembleCarriesPresetLighting(t *testing.T) {
	cells := buildCells(t, 1)

	golden, _ := PresetFor(Golden)
	sc := Assemble(cells, golden)

	if sc.Light == nil {
		t.Fatal("scene should carry a light")
	}
	if sc.Light.Intensity != golden.DirectionalIntensity {
		t.Error("scene light intensity should come from the preset")
	}
	if sc.Sky == nil || sc.Sky.Elevation != golden.Sky.Elevation {
		t.Error("scene sky should come from the preset")
	}
}

func TestAssembleIncludesGround(t *testing.T) {
	cells := buildCells(t, 1)
	preset, _ := PresetFor(Daylight)
	sc := Assemble(cells, preset)

	ground := modelByName(t, sc, "ground")
	if ground.IsInstanced {
		t.Error("ground should be a single plain model")
	}
	if ground.Position.Y() >= 0 {
		t.Error("ground should sit below the facade")
	}
}
