package learning

import (
	"math/rand"
	"testing"

	"neurevo/internal/neuro"
)

func randomSamples(seed int64, count, width int) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	samples := make([][]float64, count)
	for i := range samples {
		samples[i] = make([]float64, width)
		for j := range samples[i] {
			samples[i][j] = rng.Float64()
		}
	}
	return samples
}

func TestNewSOMRequiresSquareGrid(t *testing.T) {
	network := neuro.NewDistanceNetwork(2, 15)
	if _, err := NewSOM(network); err == nil {
		t.Fatal("expected error for 15 neurons")
	}

	network = neuro.NewDistanceNetwork(2, 16)
	if _, err := NewSOM(network); err != nil {
		t.Fatalf("NewSOM: %v", err)
	}
}

func TestNewSOMSizeChecksDimensions(t *testing.T) {
	network := neuro.NewDistanceNetwork(2, 12)
	if _, err := NewSOMSize(network, 4, 4); err == nil {
		t.Fatal("expected error for 12 neurons on a 4x4 grid")
	}
	if _, err := NewSOMSize(network, 4, 3); err != nil {
		t.Fatalf("NewSOMSize: %v", err)
	}
}

func TestSOMOrganizesMap(t *testing.T) {
	network := neuro.NewDistanceNetwork(2, 16)
	network.Seed(19)
	network.Randomize()

	som, err := NewSOM(network)
	if err != nil {
		t.Fatalf("NewSOM: %v", err)
	}
	som.SetLearningRate(0.5)
	som.SetLearningRadius(2)

	samples := randomSamples(23, 30, 2)

	first, err := som.RunEpoch(samples)
	if err != nil {
		t.Fatalf("RunEpoch: %v", err)
	}

	var last float64
	for i := 0; i < 50; i++ {
		last, err = som.RunEpoch(samples)
		if err != nil {
			t.Fatalf("RunEpoch: %v", err)
		}
	}

	if last >= first {
		t.Fatalf("map did not organize, error %v -> %v", first, last)
	}
}

func TestSOMZeroRadiusUpdatesWinnerOnly(t *testing.T) {
	network := neuro.NewDistanceNetwork(2, 9)
	network.Seed(29)
	network.Randomize()

	som, err := NewSOM(network)
	if err != nil {
		t.Fatalf("NewSOM: %v", err)
	}
	som.SetLearningRadius(0)

	sample := []float64{0.3, 0.7}
	if _, err := network.Compute(sample); err != nil {
		t.Fatalf("Compute: %v", err)
	}
	winner := network.Winner()

	before := make([][]float64, len(network.Layer.Neurons))
	for i, neuron := range network.Layer.Neurons {
		before[i] = append([]float64(nil), neuron.Weights...)
	}

	if _, err := som.Run(sample); err != nil {
		t.Fatalf("Run: %v", err)
	}

	for i, neuron := range network.Layer.Neurons {
		changed := false
		for j := range neuron.Weights {
			if neuron.Weights[j] != before[i][j] {
				changed = true
			}
		}
		if i == winner && !changed {
			t.Fatal("winner neuron was not updated")
		}
		if i != winner && changed {
			t.Fatalf("neuron %d changed with zero learning radius", i)
		}
	}
}
