package learning

import (
	"testing"

	"neurevo/internal/genetic"
	"neurevo/internal/neuro"
	"neurevo/internal/random"
)

func TestEvolutionaryRunNotSupported(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.NewSigmoid(), 2, 1)
	teacher := NewEvolutionary(network, 10)

	if _, err := teacher.Run([]float64{0, 0}, []float64{0}); err == nil {
		t.Fatal("expected error from single sample Run")
	}
}

func TestEvolutionaryConfigValidation(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.NewSigmoid(), 2, 1)
	gen := random.NewUniformOneSeeded(1)

	cfg := EvolutionaryConfig{
		PopulationSize:              1,
		ChromosomeGenerator:         gen,
		MutationMultiplierGenerator: gen,
		MutationAdditionGenerator:   gen,
		SelectionMethod:             genetic.NewEliteSelection(),
	}
	if _, err := NewEvolutionaryConfig(network, cfg); err == nil {
		t.Fatal("expected error for population size 1")
	}

	cfg.PopulationSize = 10
	cfg.SelectionMethod = nil
	if _, err := NewEvolutionaryConfig(network, cfg); err == nil {
		t.Fatal("expected error for missing selection method")
	}

	cfg.SelectionMethod = genetic.NewEliteSelection()
	cfg.ChromosomeGenerator = nil
	if _, err := NewEvolutionaryConfig(network, cfg); err == nil {
		t.Fatal("expected error for missing generator")
	}
}

func TestEvolutionaryErrorNeverWorsensWithElite(t *testing.T) {
	network := neuro.NewActivationNetwork(&neuro.Sigmoid{Alpha: 2}, 2, 2, 1)
	network.Seed(3)
	network.Randomize()

	teacher := NewEvolutionary(network, 30)

	first, err := teacher.RunEpoch(xorInput, xorOutput)
	if err != nil {
		t.Fatalf("RunEpoch: %v", err)
	}

	last := first
	for i := 0; i < 30; i++ {
		last, err = teacher.RunEpoch(xorInput, xorOutput)
		if err != nil {
			t.Fatalf("RunEpoch: %v", err)
		}
		if last > first {
			t.Fatalf("epoch %d: error worsened from %v to %v with elite selection", i, first, last)
		}
		first = last
	}

	if last <= 0 {
		t.Fatalf("final error should stay positive, got %v", last)
	}
}

func TestEvolutionaryFitnessValidation(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.NewSigmoid(), 2, 1)

	if _, err := NewEvolutionaryFitness(network, nil, nil); err == nil {
		t.Fatal("expected error for empty sample set")
	}
	if _, err := NewEvolutionaryFitness(network, [][]float64{{0, 0}}, [][]float64{{0}, {1}}); err == nil {
		t.Fatal("expected error for mismatched sample counts")
	}
	if _, err := NewEvolutionaryFitness(network, [][]float64{{0, 0, 0}}, [][]float64{{0}}); err == nil {
		t.Fatal("expected error for wrong input vector length")
	}
}

func TestEvolutionaryFitnessScoresBetterWeightsHigher(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.NewSigmoid(), 1, 1)

	input := [][]float64{{0}, {1}}
	output := [][]float64{{0.5}, {0.5}}

	fitness, err := NewEvolutionaryFitness(network, input, output)
	if err != nil {
		t.Fatalf("NewEvolutionaryFitness: %v", err)
	}

	gen := random.NewUniformOneSeeded(2)

	// zero weight and threshold give sigmoid output 0.5 exactly
	perfect, err := genetic.NewDoubleArrayChromosomeValues(gen, gen, gen, []float64{0, 0})
	if err != nil {
		t.Fatalf("NewDoubleArrayChromosomeValues: %v", err)
	}
	offTarget, err := genetic.NewDoubleArrayChromosomeValues(gen, gen, gen, []float64{3, 3})
	if err != nil {
		t.Fatalf("NewDoubleArrayChromosomeValues: %v", err)
	}

	good := fitness.Evaluate(perfect)
	bad := fitness.Evaluate(offTarget)

	if good <= bad {
		t.Fatalf("perfect weights scored %v, worse weights %v", good, bad)
	}
}

func TestEvolutionaryFitnessRejectsOtherChromosomes(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.NewSigmoid(), 2, 1)
	fitness, err := NewEvolutionaryFitness(network, [][]float64{{0, 0}}, [][]float64{{0}})
	if err != nil {
		t.Fatalf("NewEvolutionaryFitness: %v", err)
	}

	if got := fitness.Evaluate(genetic.NewBinaryChromosome(8)); got != 0 {
		t.Fatalf("fitness for foreign chromosome: got %v, want 0", got)
	}
}
