package experiment

import (
	"context"
	"errors"
	"fmt"

	"neurevo/internal/storage"
)

// Runner executes registered experiments and persists their results.
type Runner struct {
	store storage.Store
}

func NewRunner(store storage.Store) (*Runner, error) {
	if store == nil {
		return nil, errors.New("store is required")
	}
	return &Runner{store: store}, nil
}

// Run executes the named experiment and saves the run record, error
// history and any produced artifacts.
func (r *Runner) Run(ctx context.Context, name string, opts Options) (Result, error) {
	exp, err := Resolve(name)
	if err != nil {
		return Result{}, err
	}

	result, err := exp.Run(ctx, opts)
	if err != nil {
		return Result{}, err
	}

	run := storage.RunRecord{
		VersionedRecord: storage.NewVersionedRecord(),
		ID:              result.RunID,
		Experiment:      result.Experiment,
		StartedAt:       result.StartedAt,
		Duration:        result.Duration.Seconds(),
		Epochs:          result.Epochs,
		FinalError:      result.FinalError,
		Converged:       result.Converged,
	}
	if err := r.store.SaveRun(ctx, run); err != nil {
		return Result{}, fmt.Errorf("save run %s: %w", result.RunID, err)
	}
	if err := r.store.SaveErrorHistory(ctx, result.RunID, result.ErrorHistory); err != nil {
		return Result{}, fmt.Errorf("save error history %s: %w", result.RunID, err)
	}
	if result.Network != nil {
		if err := r.store.SaveNetwork(ctx, *result.Network); err != nil {
			return Result{}, fmt.Errorf("save network %s: %w", result.RunID, err)
		}
	}
	if result.Population != nil {
		if err := r.store.SavePopulation(ctx, *result.Population); err != nil {
			return Result{}, fmt.Errorf("save population %s: %w", result.RunID, err)
		}
	}
	return result, nil
}
