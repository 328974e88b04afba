package experiment

import (
	"context"
	"math"
	"math/rand"

	"neurevo/internal/learning"
	"neurevo/internal/neuro"
	"neurevo/internal/storage"
)

func init() {
	mustRegister(somGrid{})
	mustRegister(elasticRing{})
}

// unsupervisedTrainer is the RunEpoch surface shared by the
// unsupervised teachers.
type unsupervisedTrainer interface {
	RunEpoch(input [][]float64) (float64, error)
}

func trainUnsupervised(ctx context.Context, trainer unsupervisedTrainer, input [][]float64, epochs int) ([]float64, error) {
	history := make([]float64, 0, epochs)
	for i := 0; i < epochs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		epochError, err := trainer.RunEpoch(input)
		if err != nil {
			return nil, err
		}
		history = append(history, epochError)
	}
	return history, nil
}

func attachDistanceNetwork(result *Result, network *neuro.DistanceNetwork) {
	record := storage.SnapshotDistanceNetwork(result.RunID, network)
	result.Network = &record
}

type somGrid struct{}

func (somGrid) Name() string { return "som_grid" }

func (somGrid) Description() string {
	return "self organizing map arranging a square grid over random plane samples"
}

func (e somGrid) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 50)
	seed := defaultSeed(opts.Seed, 1)

	network := neuro.NewDistanceNetwork(2, 16)
	network.Seed(seed)
	network.Randomize()

	teacher, err := learning.NewSOM(network)
	if err != nil {
		return Result{}, err
	}
	teacher.SetLearningRate(0.5)
	teacher.SetLearningRadius(2)

	rng := rand.New(rand.NewSource(seed))
	samples := make([][]float64, 30)
	for i := range samples {
		samples[i] = []float64{rng.Float64(), rng.Float64()}
	}

	history, err := trainUnsupervised(ctx, teacher, samples, epochs)
	if err != nil {
		return Result{}, err
	}
	attachDistanceNetwork(&result, network)
	finishResult(&result, history, opts.TargetError)
	return result, nil
}

type elasticRing struct{}

func (elasticRing) Name() string { return "elastic_ring" }

func (elasticRing) Description() string {
	return "elastic net pulling a neuron ring toward points on a circle"
}

func (e elasticRing) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 50)
	seed := defaultSeed(opts.Seed, 1)

	network := neuro.NewDistanceNetwork(2, 10)
	network.Seed(seed)
	network.Randomize()

	teacher := learning.NewElasticNetwork(network)
	teacher.SetLearningRate(0.5)

	samples := make([][]float64, 20)
	for i := range samples {
		angle := 2 * math.Pi * float64(i) / float64(len(samples))
		samples[i] = []float64{0.5 + 0.4*math.Cos(angle), 0.5 + 0.4*math.Sin(angle)}
	}

	history, err := trainUnsupervised(ctx, teacher, samples, epochs)
	if err != nil {
		return Result{}, err
	}
	attachDistanceNetwork(&result, network)
	finishResult(&result, history, opts.TargetError)
	return result, nil
}
