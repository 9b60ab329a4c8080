package facade

import (
	"errors"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Columns != 10 || cfg.Rows != 6 {
		t.Errorf("unexpected default grid %dx%d", cfg.Columns, cfg.Rows)
	}
	if cfg.Seed != 1 {
		t.Errorf("unexpected default seed %d", cfg.Seed)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestValidateRejectsBadGrid(t *testing.T) {
	bad := []Config{
		{Columns: 0, Rows: 6, Seed: 1},
		{Columns: 10, Rows: 0, Seed: 1},
		{Columns: -3, Rows: -3, Seed: 1},
	}
	for _, cfg := range bad {
		err := cfg.Validate()
		if err == nil {
			t.Errorf("config %+v should fail validation", cfg)
			continue
		}
		if !errors.Is(err, ErrConfig) {
			t.Errorf("config %+v: error %v should wrap ErrConfig", cfg, err)
		}
	}
}

func TestNextSeedAdvances(t *testing.T) {
	if NextSeed(1) == 1 {
		t.Error("NextSeed(1) should not return 1")
	}
	if NextSeed(41) != 42 {
		t.Errorf("NextSeed(41) = %d, want 42", NextSeed(41))
	}
}

func TestNextSeedCycles(t *testing.T) {
	seed := 1
	for i := 0; i < 10000; i++ {
		seed = NextSeed(seed)
		if seed < 1 || seed > 10000 {
			t.Fatalf("seed escaped [1,10000] at step %d: %d", i, seed)
		}
		if seed == 1 && i != 9999 {
			t.Fatalf("cycle closed early at step %d", i)
		}
	}
	if seed != 1 {
		t.Errorf("seed after full cycle = %d, want 1", seed)
	}
}
