// Package experiment bundles named training setups that exercise the
// networks, teachers and genetic engine end to end. Experiments are
// registered under stable names and run through a Runner that persists
// results.
package experiment

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/uuid"

	"neurevo/internal/storage"
)

var (
	ErrExperimentExists   = errors.New("experiment already registered")
	ErrExperimentNotFound = errors.New("experiment not found")
)

// Options tune a single run. Zero values select per-experiment defaults.
type Options struct {
	Epochs         int
	Seed           int64
	TargetError    float64
	PopulationSize int
}

// Result captures one completed run.
type Result struct {
	RunID        string
	Experiment   string
	StartedAt    time.Time
	Duration     time.Duration
	Epochs       int
	FinalError   float64
	Converged    bool
	ErrorHistory []float64
	Summary      Summary

	// Optional artifacts, present when the experiment produces them.
	Network    *storage.NetworkRecord
	Population *storage.PopulationRecord
}

// Experiment is a named, self-contained training setup.
type Experiment interface {
	Name() string
	Description() string
	Run(ctx context.Context, opts Options) (Result, error)
}

var experimentRegistry = struct {
	mu sync.RWMutex
	m  map[string]Experiment
}{
	m: make(map[string]Experiment),
}

// Register adds an experiment to the global registry.
func Register(exp Experiment) error {
	if exp == nil {
		return errors.New("experiment is required")
	}
	name := exp.Name()
	if name == "" {
		return errors.New("experiment name is required")
	}

	experimentRegistry.mu.Lock()
	defer experimentRegistry.mu.Unlock()

	if _, exists := experimentRegistry.m[name]; exists {
		return fmt.Errorf("%w: %s", ErrExperimentExists, name)
	}
	experimentRegistry.m[name] = exp
	return nil
}

// Resolve returns a registered experiment by name.
func Resolve(name string) (Experiment, error) {
	experimentRegistry.mu.RLock()
	exp, ok := experimentRegistry.m[name]
	experimentRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrExperimentNotFound, name)
	}
	return exp, nil
}

// List returns registered experiment names in sorted order.
func List() []string {
	experimentRegistry.mu.RLock()
	defer experimentRegistry.mu.RUnlock()

	names := make([]string, 0, len(experimentRegistry.m))
	for name := range experimentRegistry.m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns the description of a registered experiment.
func Describe(name string) (string, error) {
	exp, err := Resolve(name)
	if err != nil {
		return "", err
	}
	return exp.Description(), nil
}

func mustRegister(exp Experiment) {
	if err := Register(exp); err != nil {
		panic(err)
	}
}

func newRunID() (string, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return "", fmt.Errorf("generate run id: %w", err)
	}
	return id.String(), nil
}

// newResult stamps the shared run header fields.
func newResult(name string) (Result, error) {
	runID, err := newRunID()
	if err != nil {
		return Result{}, err
	}
	return Result{
		RunID:      runID,
		Experiment: name,
		StartedAt:  time.Now().UTC(),
	}, nil
}

func finishResult(result *Result, history []float64, targetError float64) {
	result.Duration = time.Since(result.StartedAt)
	result.ErrorHistory = history
	result.Epochs = len(history)
	if len(history) > 0 {
		result.FinalError = history[len(history)-1]
		result.Converged = result.FinalError <= targetError
	}
	result.Summary = Summarize(history)
}
