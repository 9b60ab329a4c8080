package scene

import (
	"errors"
	"testing"
)

func TestPresetForKnownIDs(t *testing.T) {
	for _, id := range PresetIDs() {
		preset, err := PresetFor(id)
		if err != nil {
			t.Fatalf("PresetFor(%q) failed: %v", id, err)
		}
		if preset.ID != id {
			t.Errorf("preset %q carries ID %q", id, preset.ID)
		}
		if preset.DirectionalIntensity <= 0 {
			t.Errorf("preset %q should have positive directional intensity", id)
		}
		if preset.AmbientIntensity <= 0 {
			t.Errorf("preset %q should have positive ambient intensity", id)
		}
	}
}

func TestPresetForUnknownID(t *testing.T) {
	_, err := PresetFor("noon")
	if err == nil {
		t.Fatal("unknown preset should fail")
	}
	if !errors.Is(err, ErrUnknownPreset) {
		t.Errorf("error %v should wrap ErrUnknownPreset", err)
	}
}

func TestPresetIDsOrder(t *testing.T) {
	ids := PresetIDs()
	if len(ids) != 3 {
		t.Fatalf("got %d presets, want 3", len(ids))
	}
	if ids[0] != Daylight || ids[1] != Golden || ids[2] != Overcast {
		t.Errorf("unexpected preset order: %v", ids)
	}
}

func TestSunlightFollowsPreset(t *testing.T) {
	daylight, _ := PresetFor(Daylight)
	golden, _ := PresetFor(Golden)

	dl := daylight.Sunlight()
	gl := golden.Sunlight()

	if dl.Intensity != daylight.DirectionalIntensity {
		t.Error("sunlight intensity should come from the preset")
	}
	if dl.AmbientStrength != daylight.AmbientIntensity {
		t.Error("sunlight ambient strength should come from the preset")
	}
	if dl.Direction == gl.Direction {
		t.Error("daylight and golden hour should light from different directions")
	}

	// The sun shines downward in every preset.
	for _, id := range PresetIDs() {
		p, _ := PresetFor(id)
		if p.SunDirection.Y() >= 0 {
			t.Errorf("preset %q: sun direction %v should point down", id, p.SunDirection)
		}
	}
}

func TestPresetLookupIsPure(t *testing.T) {
	a, _ := PresetFor(Overcast)
	a.Sky.Cloudiness = 0

	b, _ := PresetFor(Overcast)
	if b.Sky.Cloudiness == 0 {
		t.Error("mutating a returned preset should not affect the table")
	}
}
