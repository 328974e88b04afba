package neuro

import (
	"math/rand"

	"neurevo/internal/numeric"
)

// ActivationLayer is an ordered, fixed-size collection of activation neurons
// sharing the same inputs count.
type ActivationLayer struct {
	Neurons []*ActivationNeuron

	inputsCount int
	output      []float64
}

// NewActivationLayer creates a layer of neuronsCount activation neurons, each
// accepting inputsCount inputs and using the given activation function.
func NewActivationLayer(neuronsCount, inputsCount int, function ActivationFunc) *ActivationLayer {
	if neuronsCount < 1 {
		neuronsCount = 1
	}
	if inputsCount < 1 {
		inputsCount = 1
	}
	neurons := make([]*ActivationNeuron, neuronsCount)
	for i := range neurons {
		neurons[i] = NewActivationNeuron(inputsCount, function)
	}
	return &ActivationLayer{Neurons: neurons, inputsCount: inputsCount}
}

// InputsCount returns the inputs count shared by all neurons of the layer.
func (l *ActivationLayer) InputsCount() int {
	return l.inputsCount
}

// Output returns the most recently computed output vector.
func (l *ActivationLayer) Output() []float64 {
	return l.output
}

// SetActivationFunction replaces the activation function of every neuron in
// the layer.
func (l *ActivationLayer) SetActivationFunction(function ActivationFunc) {
	for _, n := range l.Neurons {
		n.Function = function
	}
}

// Randomize redraws weights and thresholds of all neurons from r.
func (l *ActivationLayer) Randomize(rng *rand.Rand, r numeric.Range) {
	for _, n := range l.Neurons {
		n.Randomize(rng, r)
	}
}

// Compute returns the vector of neuron outputs for the given input vector.
func (l *ActivationLayer) Compute(input []float64) ([]float64, error) {
	output := make([]float64, len(l.Neurons))
	for i, n := range l.Neurons {
		v, err := n.Compute(input)
		if err != nil {
			return nil, err
		}
		output[i] = v
	}
	l.output = output
	return output, nil
}

// DistanceLayer is an ordered, fixed-size collection of distance neurons
// sharing the same inputs count.
type DistanceLayer struct {
	Neurons []*DistanceNeuron

	inputsCount int
	output      []float64
}

// NewDistanceLayer creates a layer of neuronsCount distance neurons, each
// accepting inputsCount inputs.
func NewDistanceLayer(neuronsCount, inputsCount int) *DistanceLayer {
	if neuronsCount < 1 {
		neuronsCount = 1
	}
	if inputsCount < 1 {
		inputsCount = 1
	}
	neurons := make([]*DistanceNeuron, neuronsCount)
	for i := range neurons {
		neurons[i] = NewDistanceNeuron(inputsCount)
	}
	return &DistanceLayer{Neurons: neurons, inputsCount: inputsCount}
}

// InputsCount returns the inputs count shared by all neurons of the layer.
func (l *DistanceLayer) InputsCount() int {
	return l.inputsCount
}

// Output returns the most recently computed output vector.
func (l *DistanceLayer) Output() []float64 {
	return l.output
}

// Randomize redraws weights of all neurons from r.
func (l *DistanceLayer) Randomize(rng *rand.Rand, r numeric.Range) {
	for _, n := range l.Neurons {
		n.Randomize(rng, r)
	}
}

// Compute returns the vector of neuron outputs for the given input vector.
func (l *DistanceLayer) Compute(input []float64) ([]float64, error) {
	output := make([]float64, len(l.Neurons))
	for i, n := range l.Neurons {
		v, err := n.Compute(input)
		if err != nil {
			return nil, err
		}
		output[i] = v
	}
	l.output = output
	return output, nil
}
