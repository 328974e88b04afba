package learning

import (
	"fmt"
	"math"

	"neurevo/internal/neuro"
)

// Perceptron trains single layer activation networks with the
// perceptron rule: weights move by the learning rate times the raw
// output error. Intended for networks with threshold activation.
type Perceptron struct {
	network      *neuro.ActivationNetwork
	learningRate float64
}

// NewPerceptron creates a trainer for the given network, which must
// consist of a single layer.
func NewPerceptron(network *neuro.ActivationNetwork) (*Perceptron, error) {
	if len(network.Layers) != 1 {
		return nil, fmt.Errorf("perceptron learning requires a single layer network, got %d layers", len(network.Layers))
	}
	return &Perceptron{network: network, learningRate: 0.1}, nil
}

// LearningRate returns the weight update step.
func (p *Perceptron) LearningRate() float64 { return p.learningRate }

// SetLearningRate sets the update step, clamped to [0, 1].
func (p *Perceptron) SetLearningRate(rate float64) {
	p.learningRate = min(1.0, max(0.0, rate))
}

// Run teaches one sample and returns the summary absolute error of the
// output layer.
func (p *Perceptron) Run(input, output []float64) (float64, error) {
	networkOutput, err := p.network.Compute(input)
	if err != nil {
		return 0, err
	}

	layer := p.network.Layers[0]
	errorSum := 0.0

	for j, neuron := range layer.Neurons {
		e := output[j] - networkOutput[j]
		if e == 0 {
			continue
		}

		for i := range neuron.Weights {
			neuron.Weights[i] += p.learningRate * e * input[i]
		}
		neuron.Threshold += p.learningRate * e

		errorSum += math.Abs(e)
	}

	return errorSum, nil
}

// RunEpoch teaches all samples once and returns the summary error.
func (p *Perceptron) RunEpoch(input, output [][]float64) (float64, error) {
	errorSum := 0.0
	for i := range input {
		e, err := p.Run(input[i], output[i])
		if err != nil {
			return 0, err
		}
		errorSum += e
	}
	return errorSum, nil
}
