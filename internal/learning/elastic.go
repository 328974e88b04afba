package learning

import (
	"math"

	"neurevo/internal/neuro"
)

// ElasticNetwork trains distance networks as an elastic ring: neurons
// are placed evenly on a circle of radius 0.5, and on every sample the
// ring is pulled toward the input with a factor fading by ring
// distance from the winner.
type ElasticNetwork struct {
	network *neuro.DistanceNetwork

	// squared distances between ring positions, indexed by neuron
	// index difference
	distance []float64

	learningRate   float64
	learningRadius float64
	squaredRadius2 float64
}

// NewElasticNetwork creates a trainer for the given network.
func NewElasticNetwork(network *neuro.DistanceNetwork) *ElasticNetwork {
	e := &ElasticNetwork{
		network:        network,
		learningRate:   0.1,
		learningRadius: 0.5,
		squaredRadius2: 2 * 0.5 * 0.5,
	}

	neurons := len(network.Layer.Neurons)
	deltaAlpha := math.Pi * 2.0 / float64(neurons)
	alpha := deltaAlpha

	e.distance = make([]float64, neurons)
	for i := 1; i < neurons; i++ {
		dx := 0.5*math.Cos(alpha) - 0.5
		dy := 0.5 * math.Sin(alpha)

		e.distance[i] = dx*dx + dy*dy
		alpha += deltaAlpha
	}
	return e
}

// LearningRate returns the weight update step.
func (e *ElasticNetwork) LearningRate() float64 { return e.learningRate }

// SetLearningRate sets the update step, clamped to [0, 1].
func (e *ElasticNetwork) SetLearningRate(rate float64) {
	e.learningRate = min(1.0, max(0.0, rate))
}

// LearningRadius returns the neighborhood radius on the ring.
func (e *ElasticNetwork) LearningRadius() float64 { return e.learningRadius }

// SetLearningRadius sets the neighborhood radius.
func (e *ElasticNetwork) SetLearningRadius(radius float64) {
	e.learningRadius = radius
	e.squaredRadius2 = 2 * radius * radius
}

// Run teaches one sample and returns the summary absolute difference
// between the input and the updated neurons' weights.
func (e *ElasticNetwork) Run(input []float64) (float64, error) {
	if _, err := e.network.Compute(input); err != nil {
		return 0, err
	}
	winner := e.network.Winner()

	errorSum := 0.0

	for j, neuron := range e.network.Layer.Neurons {
		diff := j - winner
		if diff < 0 {
			diff = -diff
		}
		factor := math.Exp(-e.distance[diff] / e.squaredRadius2)

		for i := range neuron.Weights {
			delta := (input[i] - neuron.Weights[i]) * factor
			errorSum += math.Abs(delta)
			neuron.Weights[i] += delta * e.learningRate
		}
	}
	return errorSum, nil
}

// RunEpoch teaches all samples once and returns the summary error.
func (e *ElasticNetwork) RunEpoch(input [][]float64) (float64, error) {
	errorSum := 0.0
	for _, sample := range input {
		er, err := e.Run(sample)
		if err != nil {
			return 0, err
		}
		errorSum += er
	}
	return errorSum, nil
}
