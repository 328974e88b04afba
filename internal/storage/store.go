// Package storage persists networks, population snapshots and training
// runs behind a small Store interface with in-memory and sqlite
// backends.
package storage

import "context"

// Store defines persistence operations for trained networks, genetic
// population snapshots and run history. Get methods report a found
// flag instead of an error when the record does not exist.
type Store interface {
	Init(ctx context.Context) error

	SaveNetwork(ctx context.Context, record NetworkRecord) error
	GetNetwork(ctx context.Context, id string) (NetworkRecord, bool, error)
	ListNetworks(ctx context.Context) ([]NetworkRecord, error)

	SavePopulation(ctx context.Context, record PopulationRecord) error
	GetPopulation(ctx context.Context, id string) (PopulationRecord, bool, error)

	SaveRun(ctx context.Context, record RunRecord) error
	GetRun(ctx context.Context, id string) (RunRecord, bool, error)
	ListRuns(ctx context.Context) ([]RunRecord, error)

	SaveErrorHistory(ctx context.Context, runID string, history []float64) error
	GetErrorHistory(ctx context.Context, runID string) ([]float64, bool, error)
}
