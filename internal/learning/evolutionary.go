package learning

import (
	"errors"
	"fmt"
	"math"

	"neurevo/internal/genetic"
	"neurevo/internal/neuro"
	"neurevo/internal/numeric"
	"neurevo/internal/random"
)

// Evolutionary trains activation networks with a genetic algorithm.
// Every chromosome is the flat list of the network's weights and
// thresholds; fitness is the inverse of the squared error over the
// sample set. Works with networks of any activation function since no
// derivative is needed.
type Evolutionary struct {
	network        *neuro.ActivationNetwork
	networkWeights int

	population     *genetic.Population
	populationSize int

	chromosomeGenerator random.Generator
	mutationMultiplier  random.Generator
	mutationAddition    random.Generator
	selectionMethod     genetic.SelectionMethod

	crossoverRate       float64
	mutationRate        float64
	randomSelectionRate float64
}

// EvolutionaryConfig carries the genetic algorithm parameters for
// NewEvolutionaryConfig.
type EvolutionaryConfig struct {
	PopulationSize int
	// ChromosomeGenerator draws initial weight values.
	ChromosomeGenerator random.Generator
	// MutationMultiplierGenerator draws multiplicative mutation factors.
	MutationMultiplierGenerator random.Generator
	// MutationAdditionGenerator draws additive mutation offsets.
	MutationAdditionGenerator random.Generator
	SelectionMethod           genetic.SelectionMethod
	CrossoverRate             float64
	MutationRate              float64
	RandomSelectionRate       float64
}

// NewEvolutionary creates a trainer with the stock parameters: weights
// drawn uniformly from [-1, 1], exponential mutation multipliers,
// uniform [-0.5, 0.5] mutation offsets, elite selection, crossover
// rate 0.75, mutation rate 0.25 and random selection rate 0.2.
func NewEvolutionary(network *neuro.ActivationNetwork, populationSize int) *Evolutionary {
	multiplier, _ := random.NewExponential(1)

	e, _ := NewEvolutionaryConfig(network, EvolutionaryConfig{
		PopulationSize:              populationSize,
		ChromosomeGenerator:         random.NewUniform(numeric.NewRange(-1, 1)),
		MutationMultiplierGenerator: multiplier,
		MutationAdditionGenerator:   random.NewUniform(numeric.NewRange(-0.5, 0.5)),
		SelectionMethod:             genetic.NewEliteSelection(),
		CrossoverRate:               0.75,
		MutationRate:                0.25,
		RandomSelectionRate:         0.2,
	})
	return e
}

// NewEvolutionaryConfig creates a trainer with explicit genetic
// algorithm parameters.
func NewEvolutionaryConfig(network *neuro.ActivationNetwork, cfg EvolutionaryConfig) (*Evolutionary, error) {
	if cfg.PopulationSize < 2 {
		return nil, fmt.Errorf("too small population size: %d", cfg.PopulationSize)
	}
	if cfg.ChromosomeGenerator == nil || cfg.MutationMultiplierGenerator == nil || cfg.MutationAdditionGenerator == nil {
		return nil, errors.New("all three random generators are required")
	}
	if cfg.SelectionMethod == nil {
		return nil, errors.New("selection method is required")
	}

	return &Evolutionary{
		network:             network,
		networkWeights:      networkSize(network),
		populationSize:      cfg.PopulationSize,
		chromosomeGenerator: cfg.ChromosomeGenerator,
		mutationMultiplier:  cfg.MutationMultiplierGenerator,
		mutationAddition:    cfg.MutationAdditionGenerator,
		selectionMethod:     cfg.SelectionMethod,
		crossoverRate:       cfg.CrossoverRate,
		mutationRate:        cfg.MutationRate,
		randomSelectionRate: cfg.RandomSelectionRate,
	}, nil
}

// networkSize counts the network's weights plus one threshold per
// neuron, giving the chromosome length.
func networkSize(network *neuro.ActivationNetwork) int {
	size := 0
	for _, layer := range network.Layers {
		for _, neuron := range layer.Neurons {
			size += len(neuron.Weights) + 1
		}
	}
	return size
}

// Run is not supported: genetic training needs the whole sample set at
// once. Use RunEpoch.
func (e *Evolutionary) Run(input, output []float64) (float64, error) {
	return 0, errors.New("single sample learning is not supported, use RunEpoch")
}

// RunEpoch runs one genetic epoch over the sample set, loads the best
// chromosome's weights into the network and returns the inverse of its
// fitness.
func (e *Evolutionary) RunEpoch(input, output [][]float64) (float64, error) {
	if e.population == nil {
		fitness, err := NewEvolutionaryFitness(e.network, input, output)
		if err != nil {
			return 0, err
		}

		ancestor := genetic.NewDoubleArrayChromosome(
			e.chromosomeGenerator, e.mutationMultiplier, e.mutationAddition,
			e.networkWeights)

		population, err := genetic.NewPopulation(e.populationSize, ancestor, fitness, e.selectionMethod)
		if err != nil {
			return 0, err
		}
		population.SetCrossoverRate(e.crossoverRate)
		population.SetMutationRate(e.mutationRate)
		population.SetRandomSelectionPortion(e.randomSelectionRate)

		e.population = population
	}

	e.population.RunEpoch()

	chromosome := e.population.BestChromosome().(*genetic.DoubleArrayChromosome)
	loadWeights(e.network, chromosome.Value())

	return 1.0 / chromosome.Fitness(), nil
}

// loadWeights copies the flat gene list into the network, layer by
// layer, neuron by neuron, weights first and threshold last.
func loadWeights(network *neuro.ActivationNetwork, genes []float64) {
	v := 0
	for _, layer := range network.Layers {
		for _, neuron := range layer.Neurons {
			for k := range neuron.Weights {
				neuron.Weights[k] = genes[v]
				v++
			}
			neuron.Threshold = genes[v]
			v++
		}
	}
}

// EvolutionaryFitness scores weight chromosomes by loading them into
// the network and computing the inverse squared error over the sample
// set.
type EvolutionaryFitness struct {
	network *neuro.ActivationNetwork
	input   [][]float64
	output  [][]float64
}

// NewEvolutionaryFitness creates a fitness for the given network and
// sample set.
func NewEvolutionaryFitness(network *neuro.ActivationNetwork, input, output [][]float64) (*EvolutionaryFitness, error) {
	if len(input) == 0 || len(input) != len(output) {
		return nil, fmt.Errorf("input and output sample counts must be equal and positive: %d and %d", len(input), len(output))
	}
	if network.InputsCount() != len(input[0]) {
		return nil, fmt.Errorf("input vector length %d does not match the network's %d inputs", len(input[0]), network.InputsCount())
	}

	return &EvolutionaryFitness{
		network: network,
		input:   input,
		output:  output,
	}, nil
}

func (f *EvolutionaryFitness) Evaluate(c genetic.Chromosome) float64 {
	chromosome, ok := c.(*genetic.DoubleArrayChromosome)
	if !ok {
		return 0
	}

	loadWeights(f.network, chromosome.Value())

	totalError := 0.0
	for i := range f.input {
		computed, err := f.network.Compute(f.input[i])
		if err != nil {
			return 0
		}
		for j := range f.output[i] {
			e := f.output[i][j] - computed[j]
			totalError += e * e
		}
	}

	if totalError > 0 {
		return 1.0 / totalError
	}

	// zero error is the best possible fitness
	return math.MaxFloat64
}
