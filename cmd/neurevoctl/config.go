package main

import (
	"fmt"

	"gopkg.in/ini.v1"

	"neurevo/pkg/neurevo"
)

// storeProfile configures the persistence backend.
type storeProfile struct {
	Kind   string `ini:"kind"`
	DBPath string `ini:"db_path"`
}

// runProfile configures the experiment run.
type runProfile struct {
	Experiment     string  `ini:"experiment"`
	Epochs         int     `ini:"epochs"`
	Seed           int64   `ini:"seed"`
	TargetError    float64 `ini:"target_error"`
	PopulationSize int     `ini:"population_size"`
}

type profile struct {
	Store storeProfile
	Run   runProfile
}

// loadProfile reads a run profile from an INI file with [store] and
// [run] sections.
func loadProfile(path string) (profile, error) {
	cfg, err := ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment:         true,
		UnescapeValueCommentSymbols: true,
	}, path)
	if err != nil {
		return profile{}, fmt.Errorf("failed to load profile '%s': %w", path, err)
	}

	var p profile
	if err := cfg.Section("store").MapTo(&p.Store); err != nil {
		return profile{}, fmt.Errorf("failed to map [store] section: %w", err)
	}
	if err := cfg.Section("run").MapTo(&p.Run); err != nil {
		return profile{}, fmt.Errorf("failed to map [run] section: %w", err)
	}
	return p, nil
}

// apply overlays the profile onto options and request, keeping values
// for flags the user passed explicitly.
func (p profile) apply(opts neurevo.Options, req neurevo.RunRequest, explicit map[string]bool) (neurevo.Options, neurevo.RunRequest) {
	if p.Store.Kind != "" && !explicit["store"] {
		opts.StoreKind = p.Store.Kind
	}
	if p.Store.DBPath != "" && !explicit["db-path"] {
		opts.DBPath = p.Store.DBPath
	}

	if p.Run.Experiment != "" && !explicit["experiment"] {
		req.Experiment = p.Run.Experiment
	}
	if p.Run.Epochs > 0 && !explicit["epochs"] {
		req.Epochs = p.Run.Epochs
	}
	if p.Run.Seed != 0 && !explicit["seed"] {
		req.Seed = p.Run.Seed
	}
	if p.Run.TargetError > 0 && !explicit["target-error"] {
		req.TargetError = p.Run.TargetError
	}
	if p.Run.PopulationSize > 0 && !explicit["pop"] {
		req.PopulationSize = p.Run.PopulationSize
	}
	return opts, req
}
