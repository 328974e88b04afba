package learning

import (
	"fmt"

	"neurevo/internal/neuro"
)

// DeltaRule trains single layer activation networks by gradient
// descent on the squared output error. The layer's activation function
// must provide the output based derivative.
type DeltaRule struct {
	network      *neuro.ActivationNetwork
	learningRate float64
}

// NewDeltaRule creates a trainer for the given network, which must
// consist of a single layer.
func NewDeltaRule(network *neuro.ActivationNetwork) (*DeltaRule, error) {
	if len(network.Layers) != 1 {
		return nil, fmt.Errorf("delta rule learning requires a single layer network, got %d layers", len(network.Layers))
	}
	return &DeltaRule{network: network, learningRate: 0.1}, nil
}

// LearningRate returns the gradient descent step.
func (d *DeltaRule) LearningRate() float64 { return d.learningRate }

// SetLearningRate sets the step, clamped to [0, 1].
func (d *DeltaRule) SetLearningRate(rate float64) {
	d.learningRate = min(1.0, max(0.0, rate))
}

// Run teaches one sample and returns half the squared error of the
// output layer.
func (d *DeltaRule) Run(input, output []float64) (float64, error) {
	networkOutput, err := d.network.Compute(input)
	if err != nil {
		return 0, err
	}

	layer := d.network.Layers[0]
	function := layer.Neurons[0].Function

	errorSum := 0.0

	for j, neuron := range layer.Neurons {
		e := output[j] - networkOutput[j]
		derivative := function.Derivative2(networkOutput[j])

		for i := range neuron.Weights {
			neuron.Weights[i] += d.learningRate * e * derivative * input[i]
		}
		neuron.Threshold += d.learningRate * e * derivative

		errorSum += e * e
	}

	return errorSum / 2, nil
}

// RunEpoch teaches all samples once and returns the summary error.
func (d *DeltaRule) RunEpoch(input, output [][]float64) (float64, error) {
	errorSum := 0.0
	for i := range input {
		e, err := d.Run(input[i], output[i])
		if err != nil {
			return 0, err
		}
		errorSum += e
	}
	return errorSum, nil
}
