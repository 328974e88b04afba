// Package neurevo is the embedding surface for the toolkit: a Client
// that runs named experiments against a configured store and reads
// back persisted runs, histories and network snapshots.
package neurevo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"neurevo/internal/experiment"
	"neurevo/internal/storage"
)

const defaultDBPath = "neurevo.db"

type Options struct {
	StoreKind string
	DBPath    string
}

type Client struct {
	store storage.Store

	mu     sync.Mutex
	runner *experiment.Runner
}

type RunRequest struct {
	Experiment     string
	Epochs         int
	Seed           int64
	TargetError    float64
	PopulationSize int
}

type RunSummary struct {
	RunID      string
	Experiment string
	StartedAt  time.Time
	Duration   time.Duration
	Epochs     int
	FinalError float64
	Converged  bool
	Summary    experiment.Summary
}

type RunItem struct {
	RunID      string
	Experiment string
	StartedAt  time.Time
	Epochs     int
	FinalError float64
	Converged  bool
}

type ExperimentInfo struct {
	Name        string
	Description string
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}
	return &Client{store: store}, nil
}

func (c *Client) Close() error {
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Init(ctx context.Context) error {
	_, err := c.ensureRunner(ctx)
	return err
}

func (c *Client) ensureRunner(ctx context.Context) (*experiment.Runner, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.runner != nil {
		return c.runner, nil
	}
	if err := c.store.Init(ctx); err != nil {
		return nil, err
	}
	runner, err := experiment.NewRunner(c.store)
	if err != nil {
		return nil, err
	}
	c.runner = runner
	return runner, nil
}

// Experiments lists the registered experiments with their descriptions.
func (c *Client) Experiments() []ExperimentInfo {
	names := experiment.List()
	infos := make([]ExperimentInfo, 0, len(names))
	for _, name := range names {
		description, err := experiment.Describe(name)
		if err != nil {
			continue
		}
		infos = append(infos, ExperimentInfo{Name: name, Description: description})
	}
	return infos
}

// Run executes a named experiment and persists the result.
func (c *Client) Run(ctx context.Context, req RunRequest) (RunSummary, error) {
	if req.Experiment == "" {
		req.Experiment = "backprop_xor"
	}

	runner, err := c.ensureRunner(ctx)
	if err != nil {
		return RunSummary{}, err
	}

	result, err := runner.Run(ctx, req.Experiment, experiment.Options{
		Epochs:         req.Epochs,
		Seed:           req.Seed,
		TargetError:    req.TargetError,
		PopulationSize: req.PopulationSize,
	})
	if err != nil {
		return RunSummary{}, err
	}

	return RunSummary{
		RunID:      result.RunID,
		Experiment: result.Experiment,
		StartedAt:  result.StartedAt,
		Duration:   result.Duration,
		Epochs:     result.Epochs,
		FinalError: result.FinalError,
		Converged:  result.Converged,
		Summary:    result.Summary,
	}, nil
}

// Runs lists persisted runs, newest last. A positive limit keeps only
// the most recent entries.
func (c *Client) Runs(ctx context.Context, limit int) ([]RunItem, error) {
	if _, err := c.ensureRunner(ctx); err != nil {
		return nil, err
	}

	records, err := c.store.ListRuns(ctx)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(records) > limit {
		records = records[len(records)-limit:]
	}

	items := make([]RunItem, 0, len(records))
	for _, record := range records {
		items = append(items, RunItem{
			RunID:      record.ID,
			Experiment: record.Experiment,
			StartedAt:  record.StartedAt,
			Epochs:     record.Epochs,
			FinalError: record.FinalError,
			Converged:  record.Converged,
		})
	}
	return items, nil
}

// History returns the per-epoch error history of a run.
func (c *Client) History(ctx context.Context, runID string) ([]float64, error) {
	if _, err := c.ensureRunner(ctx); err != nil {
		return nil, err
	}

	history, ok, err := c.store.GetErrorHistory(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no error history for run %s", runID)
	}
	return history, nil
}

// Network returns the network snapshot a run produced.
func (c *Client) Network(ctx context.Context, runID string) (storage.NetworkRecord, error) {
	if _, err := c.ensureRunner(ctx); err != nil {
		return storage.NetworkRecord{}, err
	}

	record, ok, err := c.store.GetNetwork(ctx, runID)
	if err != nil {
		return storage.NetworkRecord{}, err
	}
	if !ok {
		return storage.NetworkRecord{}, fmt.Errorf("no network for run %s", runID)
	}
	return record, nil
}

// SaveNetwork persists a network snapshot under its record ID, for
// example to copy a snapshot obtained from Network into another store.
func (c *Client) SaveNetwork(ctx context.Context, record storage.NetworkRecord) error {
	if _, err := c.ensureRunner(ctx); err != nil {
		return err
	}
	if record.ID == "" {
		return fmt.Errorf("network record has no id")
	}
	return c.store.SaveNetwork(ctx, record)
}

// Population returns the final population snapshot a run produced.
func (c *Client) Population(ctx context.Context, runID string) (storage.PopulationRecord, error) {
	if _, err := c.ensureRunner(ctx); err != nil {
		return storage.PopulationRecord{}, err
	}

	record, ok, err := c.store.GetPopulation(ctx, runID)
	if err != nil {
		return storage.PopulationRecord{}, err
	}
	if !ok {
		return storage.PopulationRecord{}, fmt.Errorf("no population for run %s", runID)
	}
	return record, nil
}
