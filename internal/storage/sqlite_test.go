//go:build sqlite

package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func newSQLiteTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "neurevo.db")

	store := NewSQLiteStore(dbPath)
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStoreNetworkRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	input := decodeNetworkFixture(t, "minimal_network_v1.json")
	if err := store.SaveNetwork(ctx, input); err != nil {
		t.Fatalf("save network: %v", err)
	}

	output, ok, err := store.GetNetwork(ctx, input.ID)
	if err != nil {
		t.Fatalf("get network: %v", err)
	}
	if !ok {
		t.Fatalf("expected network %s", input.ID)
	}
	if output.ID != input.ID || output.Activation != input.Activation {
		t.Fatalf("unexpected network loaded: %+v", output)
	}

	_, ok, err = store.GetNetwork(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing network: %v", err)
	}
	if ok {
		t.Fatal("expected missing network")
	}
}

func TestSQLiteStoreSaveNetworkUpserts(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	input := decodeNetworkFixture(t, "minimal_network_v1.json")
	if err := store.SaveNetwork(ctx, input); err != nil {
		t.Fatalf("save network: %v", err)
	}

	input.Layers[0].Neurons[0].Threshold = 0.75
	if err := store.SaveNetwork(ctx, input); err != nil {
		t.Fatalf("save network again: %v", err)
	}

	output, ok, err := store.GetNetwork(ctx, input.ID)
	if err != nil {
		t.Fatalf("get network: %v", err)
	}
	if !ok {
		t.Fatalf("expected network %s", input.ID)
	}
	if output.Layers[0].Neurons[0].Threshold != 0.75 {
		t.Fatalf("expected upserted threshold, got: %+v", output.Layers[0].Neurons[0])
	}

	listed, err := store.ListNetworks(ctx)
	if err != nil {
		t.Fatalf("list networks: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected one stored network, got %d", len(listed))
	}
}

func TestSQLiteStoreRunsAndHistory(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	base := time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
	runs := []RunRecord{
		{VersionedRecord: NewVersionedRecord(), ID: "run-b", Experiment: "backprop_xor", StartedAt: base.Add(time.Hour), Epochs: 2500, FinalError: 0.08, Converged: true},
		{VersionedRecord: NewVersionedRecord(), ID: "run-a", Experiment: "perceptron_and", StartedAt: base, Epochs: 30, FinalError: 0, Converged: true},
	}
	for _, run := range runs {
		if err := store.SaveRun(ctx, run); err != nil {
			t.Fatalf("save run: %v", err)
		}
	}

	loaded, ok, err := store.GetRun(ctx, "run-b")
	if err != nil {
		t.Fatalf("get run: %v", err)
	}
	if !ok {
		t.Fatal("expected run-b")
	}
	if loaded.Experiment != "backprop_xor" || !loaded.Converged {
		t.Fatalf("unexpected run loaded: %+v", loaded)
	}

	listed, err := store.ListRuns(ctx)
	if err != nil {
		t.Fatalf("list runs: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != "run-a" || listed[1].ID != "run-b" {
		t.Fatalf("unexpected run order: %+v", listed)
	}

	history := []float64{0.9, 0.4, 0.08}
	if err := store.SaveErrorHistory(ctx, "run-b", history); err != nil {
		t.Fatalf("save history: %v", err)
	}
	output, ok, err := store.GetErrorHistory(ctx, "run-b")
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	if !ok {
		t.Fatal("expected persisted error history")
	}
	if len(output) != 3 || output[2] != 0.08 {
		t.Fatalf("unexpected history: %+v", output)
	}
}

func TestSQLiteStorePopulationRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newSQLiteTestStore(t)

	input := PopulationRecord{
		VersionedRecord: NewVersionedRecord(),
		ID:              "p1",
		Size:            40,
		CrossoverRate:   0.75,
		MutationRate:    0.1,
		FitnessMax:      3.5,
		Members:         []ChromosomeRecord{{Genes: "1010", Fitness: 3.5}},
	}
	if err := store.SavePopulation(ctx, input); err != nil {
		t.Fatalf("save population: %v", err)
	}

	output, ok, err := store.GetPopulation(ctx, "p1")
	if err != nil {
		t.Fatalf("get population: %v", err)
	}
	if !ok {
		t.Fatal("expected population p1")
	}
	if output.Size != 40 || len(output.Members) != 1 {
		t.Fatalf("unexpected population loaded: %+v", output)
	}
}

func TestSQLiteStoreRequiresInit(t *testing.T) {
	store := NewSQLiteStore(filepath.Join(t.TempDir(), "neurevo.db"))
	_, _, err := store.GetRun(context.Background(), "run-1")
	if err == nil {
		t.Fatal("expected uninitialized store error")
	}
}
