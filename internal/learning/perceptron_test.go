package learning

import (
	"testing"

	"neurevo/internal/neuro"
)

func TestPerceptronRejectsMultiLayerNetwork(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.Threshold{}, 2, 2, 1)
	if _, err := NewPerceptron(network); err == nil {
		t.Fatal("expected error for a two layer network")
	}
}

func TestPerceptronLearningRateClamp(t *testing.T) {
	network := neuro.NewActivationNetwork(neuro.Threshold{}, 2, 1)
	p, err := NewPerceptron(network)
	if err != nil {
		t.Fatalf("NewPerceptron: %v", err)
	}

	if p.LearningRate() != 0.1 {
		t.Fatalf("default learning rate: got %v, want 0.1", p.LearningRate())
	}
	p.SetLearningRate(5)
	if p.LearningRate() != 1 {
		t.Fatalf("learning rate clamp: got %v, want 1", p.LearningRate())
	}
}

func TestPerceptronLearnsAND(t *testing.T) {
	input := [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}}
	output := [][]float64{{0}, {0}, {0}, {1}}

	network := neuro.NewActivationNetwork(neuro.Threshold{}, 2, 1)
	network.Seed(3)
	network.Randomize()

	p, err := NewPerceptron(network)
	if err != nil {
		t.Fatalf("NewPerceptron: %v", err)
	}

	var epochError float64
	for i := 0; i < 100; i++ {
		epochError, err = p.RunEpoch(input, output)
		if err != nil {
			t.Fatalf("RunEpoch: %v", err)
		}
		if epochError == 0 {
			break
		}
	}
	if epochError != 0 {
		t.Fatalf("perceptron did not learn AND, last epoch error %v", epochError)
	}

	for i, sample := range input {
		got, err := network.Compute(sample)
		if err != nil {
			t.Fatalf("Compute: %v", err)
		}
		if got[0] != output[i][0] {
			t.Fatalf("sample %v: got %v, want %v", sample, got[0], output[i][0])
		}
	}
}
