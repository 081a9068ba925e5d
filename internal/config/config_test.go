package config

import (
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/san-kum/mechdyn/internal/models"
	"github.com/san-kum/mechdyn/internal/state"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Model != "pendulum" {
		t.Errorf("expected model pendulum, got %s", cfg.Model)
	}
	if cfg.Sweep.Samples <= 0 {
		t.Error("sweep samples should be positive")
	}
	if cfg.Controller.Kind != "none" {
		t.Errorf("expected controller none, got %s", cfg.Controller.Kind)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Model = "cartpole"
	cfg.Gravity = []float64{0, 0, -3.7}
	cfg.Joints = map[string]JointInit{"hinge": {Position: []float64{0.3}}}
	cfg.Sweep = SweepConfig{Joint: "track", From: -1, To: 1, Samples: 32, Workers: 2}

	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Model != "cartpole" || got.Gravity[2] != -3.7 {
		t.Errorf("round trip lost fields: %+v", got)
	}
	if got.Sweep.Samples != 32 || got.Sweep.Joint != "track" {
		t.Errorf("round trip lost sweep: %+v", got.Sweep)
	}
	if len(got.Joints["hinge"].Position) != 1 {
		t.Errorf("round trip lost joints: %+v", got.Joints)
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte("model: chain\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Model != "chain" {
		t.Errorf("expected model chain, got %s", cfg.Model)
	}
	if cfg.Sweep.Samples != DefaultSamples {
		t.Errorf("unset fields should keep defaults, got samples=%d", cfg.Sweep.Samples)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pendulum", "raised")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Joints["pivot"].Position[0] != 1.2 {
		t.Errorf("unexpected preset pose: %+v", cfg.Joints)
	}
	if GetPreset("pendulum", "nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
	if GetPreset("nonexistent", "raised") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets("cartpole")
	if len(names) == 0 {
		t.Fatal("expected presets for cartpole")
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("names should come back sorted: %v", names)
	}
	if ListPresets("nonexistent") != nil {
		t.Error("expected nil for unknown model")
	}
}

func TestPresetsBuildAndApply(t *testing.T) {
	reg := models.NewRegistry()
	for model, presets := range Presets {
		for name, cfg := range presets {
			m, err := cfg.Build(reg)
			if err != nil {
				t.Fatalf("%s/%s: build: %v", model, name, err)
			}
			st := state.New(m)
			if err := cfg.Apply(st); err != nil {
				t.Fatalf("%s/%s: apply: %v", model, name, err)
			}
		}
	}
}

func TestApplySetsJointState(t *testing.T) {
	cfg := GetPreset("double-pendulum", "folded")
	m, err := cfg.Build(models.NewRegistry())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	st := state.New(m)
	if err := cfg.Apply(st); err != nil {
		t.Fatalf("apply: %v", err)
	}
	q := st.JointConfiguration(m.FindJoint("elbow"))
	if math.Abs(q[0]-3.0) > 1e-15 {
		t.Errorf("elbow at %g, want 3.0", q[0])
	}
}

func TestGravityOverride(t *testing.T) {
	reg := models.NewRegistry()

	cfg := &Config{Model: "pendulum", Gravity: []float64{0, 0, -3}}
	m, err := cfg.Build(reg)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if g := m.Gravity(); g.Z != -3 || g.X != 0 {
		t.Errorf("gravity override not applied: %v", g)
	}

	bad := &Config{Model: "pendulum", Gravity: []float64{0, -9.81}}
	if _, err := bad.Build(reg); err == nil {
		t.Error("expected an error for a 2-component gravity vector")
	}
}

func TestApplyUnknownJoint(t *testing.T) {
	cfg := &Config{Model: "pendulum", Joints: map[string]JointInit{"hip": {Position: []float64{1}}}}
	m, err := cfg.Build(models.NewRegistry())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if err := cfg.Apply(state.New(m)); err == nil {
		t.Error("expected an error for an unknown joint name")
	}
}
