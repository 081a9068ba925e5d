package config

import (
	"math"
	"sort"
)

var Presets = map[string]map[string]*Config{
	"pendulum": {
		"rest": {Model: "pendulum"},
		"raised": {
			Model:  "pendulum",
			Joints: map[string]JointInit{"pivot": {Position: []float64{1.2}}},
		},
		"spinning": {
			Model:  "pendulum",
			Joints: map[string]JointInit{"pivot": {Position: []float64{0.1}, Velocity: []float64{8}}},
		},
		"swing-sweep": {
			Model: "pendulum",
			Sweep: SweepConfig{Joint: "pivot", From: -math.Pi, To: math.Pi, Samples: 128},
		},
	},
	"double-pendulum": {
		"hanging": {Model: "double-pendulum"},
		"folded": {
			Model: "double-pendulum",
			Joints: map[string]JointInit{
				"shoulder": {Position: []float64{3.0}},
				"elbow":    {Position: []float64{3.0}},
			},
		},
		"elbow-sweep": {
			Model: "double-pendulum",
			Joints: map[string]JointInit{
				"shoulder": {Position: []float64{0.7}},
			},
			Sweep: SweepConfig{Joint: "elbow", From: -math.Pi / 2, To: math.Pi / 2, Samples: 96},
		},
	},
	"cartpole": {
		"upright": {Model: "cartpole"},
		"tilted": {
			Model:  "cartpole",
			Joints: map[string]JointInit{"hinge": {Position: []float64{0.3}}},
		},
		"hold": {
			Model:      "cartpole",
			Joints:     map[string]JointInit{"hinge": {Position: []float64{0.2}}},
			Controller: ControllerConfig{Kind: "pd", Kp: 40, Kd: 6, Target: []float64{0, 0}},
		},
	},
	"acrobot": {
		"hanging": {Model: "acrobot"},
		"tucked": {
			Model: "acrobot",
			Joints: map[string]JointInit{
				"shoulder": {Position: []float64{0.4}},
				"elbow":    {Position: []float64{2.2}},
			},
		},
	},
	"chain": {
		"straight": {Model: "chain"},
		"coiled": {
			Model: "chain",
			Joints: map[string]JointInit{
				"joint1": {Position: []float64{0.6}},
				"joint2": {Position: []float64{0.6}},
				"joint3": {Position: []float64{0.6}},
				"joint4": {Position: []float64{0.6}},
				"joint5": {Position: []float64{0.6}},
			},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
