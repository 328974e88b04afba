package experiment

import (
	"context"
	"testing"

	"neurevo/internal/storage"
)

func TestRunnerRequiresStore(t *testing.T) {
	if _, err := NewRunner(nil); err == nil {
		t.Fatal("expected store requirement error")
	}
}

func TestRunnerPersistsRunArtifacts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}

	runner, err := NewRunner(store)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	result, err := runner.Run(ctx, "perceptron_and", Options{})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	run, ok, err := store.GetRun(ctx, result.RunID)
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted run record")
	}
	if run.Experiment != "perceptron_and" || run.Epochs != result.Epochs {
		t.Fatalf("unexpected run record: %+v", run)
	}

	history, ok, err := store.GetErrorHistory(ctx, result.RunID)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !ok || len(history) != len(result.ErrorHistory) {
		t.Fatalf("unexpected history: ok=%v len=%d", ok, len(history))
	}

	network, ok, err := store.GetNetwork(ctx, result.RunID)
	if err != nil {
		t.Fatalf("get network: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted network")
	}
	if network.Kind != storage.NetworkKindActivation {
		t.Fatalf("unexpected network kind: %s", network.Kind)
	}
}

func TestRunnerPersistsPopulationArtifacts(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}

	runner, err := NewRunner(store)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	result, err := runner.Run(ctx, "ga_optimize_1d", Options{Epochs: 10, PopulationSize: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	population, ok, err := store.GetPopulation(ctx, result.RunID)
	if err != nil {
		t.Fatalf("get population: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted population")
	}
	if len(population.Members) == 0 || population.Size != 10 {
		t.Fatalf("unexpected population record: %+v", population)
	}
}

func TestRunnerUnknownExperiment(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init store: %v", err)
	}

	runner, err := NewRunner(store)
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	if _, err := runner.Run(ctx, "unknown", Options{}); err == nil {
		t.Fatal("expected experiment not found error")
	}
}
