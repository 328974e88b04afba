// Package neuro implements feed-forward neural network computation: neurons,
// layers and networks, in activation-based and distance-based variants.
//
// Compute methods retain the most recent output on the neuron, layer and
// network for cheap inspection. That cache is unsynchronized shared state;
// concurrent callers must use the returned vector instead.
package neuro

import (
	"fmt"
	"math/rand"

	"neurevo/internal/numeric"
)

// ActivationNeuron computes activation(threshold + sum(weights[i]*input[i])).
type ActivationNeuron struct {
	Weights   []float64
	Threshold float64
	Function  ActivationFunc

	output float64
}

// NewActivationNeuron returns a neuron with the given inputs count (at least
// one) and activation function. Weights start at zero; call Randomize to draw
// initial values.
func NewActivationNeuron(inputs int, function ActivationFunc) *ActivationNeuron {
	if inputs < 1 {
		inputs = 1
	}
	return &ActivationNeuron{
		Weights:  make([]float64, inputs),
		Function: function,
	}
}

// InputsCount returns the fixed number of inputs the neuron accepts.
func (n *ActivationNeuron) InputsCount() int {
	return len(n.Weights)
}

// Output returns the most recently computed output.
func (n *ActivationNeuron) Output() float64 {
	return n.output
}

// Randomize redraws all weights and the threshold uniformly from r.
func (n *ActivationNeuron) Randomize(rng *rand.Rand, r numeric.Range) {
	d := float64(r.Length())
	min := float64(r.Min)
	for i := range n.Weights {
		n.Weights[i] = rng.Float64()*d + min
	}
	n.Threshold = rng.Float64()*d + min
}

// Compute returns the neuron's output for the given input vector.
func (n *ActivationNeuron) Compute(input []float64) (float64, error) {
	if len(input) != len(n.Weights) {
		return 0, fmt.Errorf("wrong length of the input vector: got=%d want=%d", len(input), len(n.Weights))
	}

	sum := 0.0
	for i, w := range n.Weights {
		sum += w * input[i]
	}
	sum += n.Threshold

	output := n.Function.Function(sum)
	n.output = output
	return output, nil
}

// DistanceNeuron computes the L1 distance between its weight vector and the
// input vector. Distance neurons are the building block of competitive
// networks; the neuron with the smallest output is the winner.
type DistanceNeuron struct {
	Weights []float64

	output float64
}

// NewDistanceNeuron returns a distance neuron with the given inputs count (at
// least one). Weights start at zero; call Randomize to draw initial values.
func NewDistanceNeuron(inputs int) *DistanceNeuron {
	if inputs < 1 {
		inputs = 1
	}
	return &DistanceNeuron{Weights: make([]float64, inputs)}
}

// InputsCount returns the fixed number of inputs the neuron accepts.
func (n *DistanceNeuron) InputsCount() int {
	return len(n.Weights)
}

// Output returns the most recently computed output.
func (n *DistanceNeuron) Output() float64 {
	return n.output
}

// Randomize redraws all weights uniformly from r.
func (n *DistanceNeuron) Randomize(rng *rand.Rand, r numeric.Range) {
	d := float64(r.Length())
	min := float64(r.Min)
	for i := range n.Weights {
		n.Weights[i] = rng.Float64()*d + min
	}
}

// Compute returns the neuron's output for the given input vector.
func (n *DistanceNeuron) Compute(input []float64) (float64, error) {
	if len(input) != len(n.Weights) {
		return 0, fmt.Errorf("wrong length of the input vector: got=%d want=%d", len(input), len(n.Weights))
	}

	dif := 0.0
	for i, w := range n.Weights {
		d := w - input[i]
		if d < 0 {
			d = -d
		}
		dif += d
	}

	n.output = dif
	return dif, nil
}
