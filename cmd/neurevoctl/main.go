package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/gosuri/uitable"

	"neurevo/internal/storage"
	"neurevo/pkg/neurevo"
)

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError("missing command")
	}

	switch args[0] {
	case "init":
		return runInit(ctx, args[1:])
	case "run":
		return runRun(ctx, args[1:])
	case "runs":
		return runRuns(ctx, args[1:])
	case "history":
		return runHistory(ctx, args[1:])
	case "experiments":
		return runExperiments(ctx, args[1:])
	case "network":
		return runNetwork(ctx, args[1:])
	default:
		return usageError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

func runInit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neurevo.db", "sqlite database path")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neurevo.New(neurevo.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	if err := client.Init(ctx); err != nil {
		return err
	}

	fmt.Printf("initialized store=%s\n", *storeKind)
	return nil
}

func runRun(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	configPath := fs.String("config", "", "optional run profile INI path")
	experimentName := fs.String("experiment", "backprop_xor", "experiment name (see experiments command)")
	epochs := fs.Int("epochs", 0, "epoch budget (0 uses the experiment default)")
	seed := fs.Int64("seed", 0, "rng seed (0 uses the experiment default)")
	targetError := fs.Float64("target-error", 0, "early-stop error target (0 uses the experiment default)")
	populationSize := fs.Int("pop", 0, "population size for evolutionary experiments (0 uses the default)")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neurevo.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit run summary as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	opts := neurevo.Options{StoreKind: *storeKind, DBPath: *dbPath}
	req := neurevo.RunRequest{
		Experiment:     *experimentName,
		Epochs:         *epochs,
		Seed:           *seed,
		TargetError:    *targetError,
		PopulationSize: *populationSize,
	}

	if *configPath != "" {
		prof, err := loadProfile(*configPath)
		if err != nil {
			return err
		}
		opts, req = prof.apply(opts, req, setFlags(fs))
	}

	client, err := neurevo.New(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	summary, err := client.Run(ctx, req)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(runSummaryJSON{
			RunID:      summary.RunID,
			Experiment: summary.Experiment,
			Epochs:     summary.Epochs,
			FinalError: summary.FinalError,
			Converged:  summary.Converged,
			MinError:   summary.Summary.Min,
			MeanError:  summary.Summary.Mean,
		})
	}

	fmt.Printf("run=%s experiment=%s epochs=%d final_error=%g converged=%v\n",
		summary.RunID, summary.Experiment, summary.Epochs, summary.FinalError, summary.Converged)
	return nil
}

type runSummaryJSON struct {
	RunID      string  `json:"run_id"`
	Experiment string  `json:"experiment"`
	Epochs     int     `json:"epochs"`
	FinalError float64 `json:"final_error"`
	Converged  bool    `json:"converged"`
	MinError   float64 `json:"min_error"`
	MeanError  float64 `json:"mean_error"`
}

func runRuns(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("runs", flag.ContinueOnError)
	limit := fs.Int("limit", 20, "max runs to list")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neurevo.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit runs list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *limit <= 0 {
		return errors.New("limit must be > 0")
	}

	client, err := neurevo.New(neurevo.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	runs, err := client.Runs(ctx, *limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	if *jsonOut {
		type runsItem struct {
			RunID      string  `json:"run_id"`
			Experiment string  `json:"experiment"`
			StartedAt  string  `json:"started_at_utc"`
			Epochs     int     `json:"epochs"`
			FinalError float64 `json:"final_error"`
			Converged  bool    `json:"converged"`
		}
		items := make([]runsItem, 0, len(runs))
		for _, r := range runs {
			items = append(items, runsItem{
				RunID:      r.RunID,
				Experiment: r.Experiment,
				StartedAt:  r.StartedAt.UTC().Format("2006-01-02T15:04:05Z"),
				Epochs:     r.Epochs,
				FinalError: r.FinalError,
				Converged:  r.Converged,
			})
		}
		return printJSON(items)
	}

	table := uitable.New()
	table.MaxColWidth = 40
	table.Wrap = false
	table.AddRow("RUN", "EXPERIMENT", "STARTED", "EPOCHS", "FINAL ERROR", "CONVERGED")
	for _, r := range runs {
		table.AddRow(r.RunID, r.Experiment, r.StartedAt.UTC().Format("2006-01-02 15:04:05"), r.Epochs, r.FinalError, r.Converged)
	}
	fmt.Println(table)
	return nil
}

func runHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neurevo.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit history as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("run-id is required")
	}

	client, err := neurevo.New(neurevo.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	history, err := client.History(ctx, *runID)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(history)
	}

	table := uitable.New()
	table.AddRow("EPOCH", "ERROR")
	for i, e := range history {
		table.AddRow(i+1, e)
	}
	fmt.Println(table)
	return nil
}

func runExperiments(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("experiments", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "emit experiment list as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}

	client, err := neurevo.New(neurevo.Options{StoreKind: "memory"})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	infos := client.Experiments()
	if *jsonOut {
		type experimentItem struct {
			Name        string `json:"name"`
			Description string `json:"description"`
		}
		items := make([]experimentItem, 0, len(infos))
		for _, info := range infos {
			items = append(items, experimentItem{Name: info.Name, Description: info.Description})
		}
		return printJSON(items)
	}

	table := uitable.New()
	table.MaxColWidth = 80
	table.Wrap = false
	table.AddRow("NAME", "DESCRIPTION")
	for _, info := range infos {
		table.AddRow(info.Name, info.Description)
	}
	fmt.Println(table)
	return nil
}

func runNetwork(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("network", flag.ContinueOnError)
	runID := fs.String("run-id", "", "run id")
	storeKind := fs.String("store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	dbPath := fs.String("db-path", "neurevo.db", "sqlite database path")
	jsonOut := fs.Bool("json", false, "emit network record as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *runID == "" {
		return errors.New("run-id is required")
	}

	client, err := neurevo.New(neurevo.Options{StoreKind: *storeKind, DBPath: *dbPath})
	if err != nil {
		return err
	}
	defer func() {
		_ = client.Close()
	}()

	record, err := client.Network(ctx, *runID)
	if err != nil {
		return err
	}

	if *jsonOut {
		return printJSON(record)
	}

	fmt.Printf("network=%s kind=%s activation=%s inputs=%d\n",
		record.ID, record.Kind, record.Activation, record.InputsCount)
	for i, layer := range record.Layers {
		fmt.Printf("layer %d: %d neurons\n", i, len(layer.Neurons))
	}
	return nil
}

// setFlags reports which flags were given explicitly, so profile values
// only fill the gaps.
func setFlags(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

func usageError(msg string) error {
	return fmt.Errorf("%s\nusage: neurevoctl <init|run|runs|history|experiments|network> [flags]", msg)
}
