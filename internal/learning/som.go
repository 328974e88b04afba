package learning

import (
	"fmt"
	"math"

	"neurevo/internal/neuro"
)

// SOM trains distance networks as self organizing Kohonen maps. The
// network's neurons are treated as a width by height grid; on every
// sample the winner and its grid neighborhood move toward the input,
// with a Gaussian factor fading by grid distance.
type SOM struct {
	network *neuro.DistanceNetwork
	width   int
	height  int

	learningRate   float64
	learningRadius float64

	// 2 * radius^2, cached for the update factor
	squaredRadius2 float64
}

// NewSOM creates a trainer treating the network as a square grid. The
// neuron count must be a perfect square.
func NewSOM(network *neuro.DistanceNetwork) (*SOM, error) {
	neuronsCount := len(network.Layer.Neurons)
	width := int(math.Sqrt(float64(neuronsCount)))

	if width*width != neuronsCount {
		return nil, fmt.Errorf("network size %d is not a square grid", neuronsCount)
	}
	return NewSOMSize(network, width, width)
}

// NewSOMSize creates a trainer for a width by height neuron grid.
func NewSOMSize(network *neuro.DistanceNetwork, width, height int) (*SOM, error) {
	if len(network.Layer.Neurons) != width*height {
		return nil, fmt.Errorf("network size %d does not match %dx%d grid", len(network.Layer.Neurons), width, height)
	}

	return &SOM{
		network:        network,
		width:          width,
		height:         height,
		learningRate:   0.1,
		learningRadius: 7,
		squaredRadius2: 2 * 7 * 7,
	}, nil
}

// LearningRate returns the weight update step.
func (s *SOM) LearningRate() float64 { return s.learningRate }

// SetLearningRate sets the update step, clamped to [0, 1].
func (s *SOM) SetLearningRate(rate float64) {
	s.learningRate = min(1.0, max(0.0, rate))
}

// LearningRadius returns the neighborhood radius in grid cells.
func (s *SOM) LearningRadius() float64 { return s.learningRadius }

// SetLearningRadius sets the neighborhood radius. Radius zero updates
// the winner neuron only.
func (s *SOM) SetLearningRadius(radius float64) {
	s.learningRadius = radius
	s.squaredRadius2 = 2 * radius * radius
}

// Run teaches one sample and returns the summary absolute difference
// between the input and the updated neurons' weights.
func (s *SOM) Run(input []float64) (float64, error) {
	if _, err := s.network.Compute(input); err != nil {
		return 0, err
	}
	winner := s.network.Winner()

	layer := s.network.Layer
	errorSum := 0.0

	if s.learningRadius == 0 {
		neuron := layer.Neurons[winner]

		for i := range neuron.Weights {
			e := input[i] - neuron.Weights[i]
			errorSum += math.Abs(e)
			neuron.Weights[i] += e * s.learningRate
		}
		return errorSum, nil
	}

	wx := winner % s.width
	wy := winner / s.width

	for j, neuron := range layer.Neurons {
		dx := j%s.width - wx
		dy := j/s.width - wy

		factor := math.Exp(-float64(dx*dx+dy*dy) / s.squaredRadius2)

		for i := range neuron.Weights {
			e := (input[i] - neuron.Weights[i]) * factor
			errorSum += math.Abs(e)
			neuron.Weights[i] += e * s.learningRate
		}
	}
	return errorSum, nil
}

// RunEpoch teaches all samples once and returns the summary error.
func (s *SOM) RunEpoch(input [][]float64) (float64, error) {
	errorSum := 0.0
	for _, sample := range input {
		e, err := s.Run(sample)
		if err != nil {
			return 0, err
		}
		errorSum += e
	}
	return errorSum, nil
}
