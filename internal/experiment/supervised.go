package experiment

import (
	"context"

	"neurevo/internal/learning"
	"neurevo/internal/neuro"
	"neurevo/internal/storage"
)

func init() {
	mustRegister(perceptronAND{})
	mustRegister(deltaRuleOR{})
	mustRegister(backpropXOR{})
	mustRegister(rpropXOR{})
	mustRegister(evolutionaryXOR{})
}

var (
	andInput  = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	andOutput = [][]float64{{0}, {0}, {0}, {1}}

	orInput  = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	orOutput = [][]float64{{0}, {1}, {1}, {1}}

	xorInput  = [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	xorOutput = [][]float64{{0}, {1}, {1}, {0}}
)

// epochTrainer is the RunEpoch surface shared by the supervised
// teachers.
type epochTrainer interface {
	RunEpoch(input, output [][]float64) (float64, error)
}

// trainEpochs drives a teacher until the epoch budget or the target
// error is reached and returns the per-epoch error history.
func trainEpochs(ctx context.Context, trainer epochTrainer, input, output [][]float64, epochs int, target float64) ([]float64, error) {
	history := make([]float64, 0, epochs)
	for i := 0; i < epochs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		epochError, err := trainer.RunEpoch(input, output)
		if err != nil {
			return nil, err
		}
		history = append(history, epochError)
		if epochError <= target {
			break
		}
	}
	return history, nil
}

func attachNetwork(result *Result, network *neuro.ActivationNetwork) error {
	record, err := storage.SnapshotActivationNetwork(result.RunID, network)
	if err != nil {
		return err
	}
	result.Network = &record
	return nil
}

type perceptronAND struct{}

func (perceptronAND) Name() string { return "perceptron_and" }

func (perceptronAND) Description() string {
	return "single layer threshold perceptron learning the AND function"
}

func (e perceptronAND) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 100)
	seed := defaultSeed(opts.Seed, 3)

	network := neuro.NewActivationNetwork(neuro.Threshold{}, 2, 1)
	network.Seed(seed)
	network.Randomize()

	teacher, err := learning.NewPerceptron(network)
	if err != nil {
		return Result{}, err
	}

	history, err := trainEpochs(ctx, teacher, andInput, andOutput, epochs, opts.TargetError)
	if err != nil {
		return Result{}, err
	}
	if err := attachNetwork(&result, network); err != nil {
		return Result{}, err
	}
	finishResult(&result, history, opts.TargetError)
	return result, nil
}

type deltaRuleOR struct{}

func (deltaRuleOR) Name() string { return "delta_rule_or" }

func (deltaRuleOR) Description() string {
	return "single layer sigmoid network learning the OR function with the delta rule"
}

func (e deltaRuleOR) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 2000)
	seed := defaultSeed(opts.Seed, 1)
	target := defaultFloat(opts.TargetError, 0.1)

	network := neuro.NewActivationNetwork(&neuro.Sigmoid{Alpha: 2}, 2, 1)
	network.Seed(seed)
	network.Randomize()

	teacher, err := learning.NewDeltaRule(network)
	if err != nil {
		return Result{}, err
	}
	teacher.SetLearningRate(1)

	history, err := trainEpochs(ctx, teacher, orInput, orOutput, epochs, target)
	if err != nil {
		return Result{}, err
	}
	if err := attachNetwork(&result, network); err != nil {
		return Result{}, err
	}
	finishResult(&result, history, target)
	return result, nil
}

type backpropXOR struct{}

func (backpropXOR) Name() string { return "backprop_xor" }

func (backpropXOR) Description() string {
	return "two layer sigmoid network learning XOR with momentum backpropagation"
}

func (e backpropXOR) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 5000)
	seed := defaultSeed(opts.Seed, 1)
	target := defaultFloat(opts.TargetError, 0.1)

	network := neuro.NewActivationNetwork(&neuro.Sigmoid{Alpha: 2}, 2, 2, 1)
	network.Seed(seed)
	network.Randomize()

	teacher := learning.NewBackPropagation(network)
	teacher.SetLearningRate(1)
	teacher.SetMomentum(0.5)

	history, err := trainEpochs(ctx, teacher, xorInput, xorOutput, epochs, target)
	if err != nil {
		return Result{}, err
	}
	if err := attachNetwork(&result, network); err != nil {
		return Result{}, err
	}
	finishResult(&result, history, target)
	return result, nil
}

type rpropXOR struct{}

func (rpropXOR) Name() string { return "rprop_xor" }

func (rpropXOR) Description() string {
	return "two layer sigmoid network learning XOR with resilient backpropagation"
}

func (e rpropXOR) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 1000)
	seed := defaultSeed(opts.Seed, 1)
	target := defaultFloat(opts.TargetError, 0.1)

	network := neuro.NewActivationNetwork(&neuro.Sigmoid{Alpha: 2}, 2, 2, 1)
	network.Seed(seed)
	network.Randomize()

	teacher := learning.NewResilientBackpropagation(network)

	history, err := trainEpochs(ctx, teacher, xorInput, xorOutput, epochs, target)
	if err != nil {
		return Result{}, err
	}
	if err := attachNetwork(&result, network); err != nil {
		return Result{}, err
	}
	finishResult(&result, history, target)
	return result, nil
}

type evolutionaryXOR struct{}

func (evolutionaryXOR) Name() string { return "evolutionary_xor" }

func (evolutionaryXOR) Description() string {
	return "two layer sigmoid network evolving XOR weights with a genetic population"
}

func (e evolutionaryXOR) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 50)
	seed := defaultSeed(opts.Seed, 1)
	target := defaultFloat(opts.TargetError, 0.1)
	populationSize := defaultInt(opts.PopulationSize, 30)

	network := neuro.NewActivationNetwork(&neuro.Sigmoid{Alpha: 2}, 2, 2, 1)
	network.Seed(seed)
	network.Randomize()

	teacher := learning.NewEvolutionary(network, populationSize)

	history, err := trainEpochs(ctx, teacher, xorInput, xorOutput, epochs, target)
	if err != nil {
		return Result{}, err
	}
	if err := attachNetwork(&result, network); err != nil {
		return Result{}, err
	}
	finishResult(&result, history, target)
	return result, nil
}

func defaultInt(value, fallback int) int {
	if value > 0 {
		return value
	}
	return fallback
}

func defaultSeed(value, fallback int64) int64 {
	if value != 0 {
		return value
	}
	return fallback
}

func defaultFloat(value, fallback float64) float64 {
	if value > 0 {
		return value
	}
	return fallback
}
