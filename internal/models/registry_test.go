package models

import (
	"sort"
	"testing"

	"github.com/san-kum/mechdyn/internal/mechanism"
)

func TestRegistryBuildsEveryModel(t *testing.T) {
	r := NewRegistry()
	for _, name := range r.List() {
		m, err := r.Get(name)
		if err != nil {
			t.Fatalf("get %s: %v", name, err)
		}
		if m.NBodies() < 2 {
			t.Errorf("%s: expected at least one body besides the root", name)
		}
	}
}

func TestRegistryUnknownModel(t *testing.T) {
	if _, err := NewRegistry().Get("warp-drive"); err == nil {
		t.Fatal("expected an error for an unregistered model")
	}
}

func TestRegistryList(t *testing.T) {
	names := NewRegistry().List()
	if !sort.StringsAreSorted(names) {
		t.Errorf("names should come back sorted: %v", names)
	}
	found := false
	for _, n := range names {
		if n == "pendulum" {
			found = true
		}
	}
	if !found {
		t.Errorf("pendulum missing from %v", names)
	}
}

func TestRegistryRegisterOverrides(t *testing.T) {
	r := NewRegistry()
	r.Register("pendulum", func() *mechanism.Mechanism {
		p := NewPendulum()
		p.Length = 2
		return p.Build()
	})
	m, err := r.Get("pendulum")
	if err != nil {
		t.Fatalf("get pendulum: %v", err)
	}
	if m.NBodies() != 2 {
		t.Errorf("override should still build a pendulum, got %d bodies", m.NBodies())
	}
}
