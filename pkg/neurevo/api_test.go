package neurevo

import (
	"context"
	"testing"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	client, err := New(Options{StoreKind: "memory"})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestClientRunAndReadBack(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Experiment: "perceptron_and"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.RunID == "" || summary.Experiment != "perceptron_and" {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if !summary.Converged {
		t.Fatalf("expected convergence, got: %+v", summary)
	}

	runs, err := client.Runs(ctx, 5)
	if err != nil {
		t.Fatalf("runs: %v", err)
	}
	if len(runs) != 1 || runs[0].RunID != summary.RunID {
		t.Fatalf("expected run %s in list: %+v", summary.RunID, runs)
	}

	history, err := client.History(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(history) != summary.Epochs {
		t.Fatalf("history length %d does not match epochs %d", len(history), summary.Epochs)
	}

	network, err := client.Network(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("network: %v", err)
	}
	if network.ID != summary.RunID {
		t.Fatalf("unexpected network record: %+v", network)
	}
}

func TestClientRunDefaultsToBackpropXOR(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Epochs: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if summary.Experiment != "backprop_xor" {
		t.Fatalf("unexpected default experiment: %s", summary.Experiment)
	}
}

func TestClientPopulationArtifact(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Experiment: "ga_tsp", Epochs: 10, PopulationSize: 10})
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	population, err := client.Population(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("population: %v", err)
	}
	if population.ID != summary.RunID || len(population.Members) == 0 {
		t.Fatalf("unexpected population record: %+v", population)
	}
}

func TestClientSaveNetworkCopy(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	summary, err := client.Run(ctx, RunRequest{Experiment: "perceptron_and"})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	record, err := client.Network(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("network: %v", err)
	}

	other := newTestClient(t)
	if err := other.SaveNetwork(ctx, record); err != nil {
		t.Fatalf("save network: %v", err)
	}
	copied, err := other.Network(ctx, summary.RunID)
	if err != nil {
		t.Fatalf("read back network: %v", err)
	}
	if copied.Kind != record.Kind || len(copied.Layers) != len(record.Layers) {
		t.Fatalf("unexpected copied record: %+v", copied)
	}

	record.ID = ""
	if err := other.SaveNetwork(ctx, record); err == nil {
		t.Fatal("expected error for record without id")
	}
}

func TestClientExperimentsListing(t *testing.T) {
	client := newTestClient(t)

	infos := client.Experiments()
	if len(infos) == 0 {
		t.Fatal("expected registered experiments")
	}
	for _, info := range infos {
		if info.Name == "" || info.Description == "" {
			t.Fatalf("incomplete experiment info: %+v", info)
		}
	}
}

func TestClientRunsUnknownExperiment(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.Run(ctx, RunRequest{Experiment: "unknown"}); err == nil {
		t.Fatal("expected unknown experiment error")
	}
}

func TestClientHistoryMissingRun(t *testing.T) {
	ctx := context.Background()
	client := newTestClient(t)

	if _, err := client.History(ctx, "missing"); err == nil {
		t.Fatal("expected missing history error")
	}
}
