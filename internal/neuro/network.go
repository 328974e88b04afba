package neuro

import (
	"math/rand"
	"time"

	"neurevo/internal/numeric"
)

// defaultWeightRange is the initialization range for weights and thresholds.
var defaultWeightRange = numeric.NewRange(0, 1)

// ActivationNetwork is a multi-layer feed-forward network of activation
// neurons. Layer i feeds layer i+1; the first layer consumes the network
// input and the last layer's output is the network output.
type ActivationNetwork struct {
	Layers []*ActivationLayer

	inputsCount int
	output      []float64

	rng         *rand.Rand
	weightRange numeric.Range
}

// NewActivationNetwork creates a network with the given activation function,
// inputs count, and one layer per neuronsCount entry. Weights and thresholds
// are drawn from the default [0, 1) range using a process-seeded source; use
// Seed and SetWeightRange before Randomize for reproducible initialization.
func NewActivationNetwork(function ActivationFunc, inputsCount int, neuronsCount ...int) *ActivationNetwork {
	if inputsCount < 1 {
		inputsCount = 1
	}
	if len(neuronsCount) == 0 {
		neuronsCount = []int{1}
	}

	layers := make([]*ActivationLayer, len(neuronsCount))
	for i, count := range neuronsCount {
		layerInputs := inputsCount
		if i > 0 {
			layerInputs = neuronsCount[i-1]
		}
		layers[i] = NewActivationLayer(count, layerInputs, function)
	}

	n := &ActivationNetwork{
		Layers:      layers,
		inputsCount: inputsCount,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		weightRange: defaultWeightRange,
	}
	n.Randomize()
	return n
}

// InputsCount returns the declared number of network inputs.
func (n *ActivationNetwork) InputsCount() int {
	return n.inputsCount
}

// Output returns the most recently computed output vector.
func (n *ActivationNetwork) Output() []float64 {
	return n.output
}

// Seed reinitializes the network's random source used by Randomize.
func (n *ActivationNetwork) Seed(seed int64) {
	n.rng = rand.New(rand.NewSource(seed))
}

// SetWeightRange replaces the range weights and thresholds are drawn from.
func (n *ActivationNetwork) SetWeightRange(r numeric.Range) {
	n.weightRange = r
}

// SetActivationFunction replaces the activation function of every neuron in
// the network.
func (n *ActivationNetwork) SetActivationFunction(function ActivationFunc) {
	for _, layer := range n.Layers {
		layer.SetActivationFunction(function)
	}
}

// Randomize redraws all weights and thresholds of the network.
func (n *ActivationNetwork) Randomize() {
	for _, layer := range n.Layers {
		layer.Randomize(n.rng, n.weightRange)
	}
}

// Compute feeds the input vector through all layers and returns the last
// layer's output.
func (n *ActivationNetwork) Compute(input []float64) ([]float64, error) {
	output := input
	for _, layer := range n.Layers {
		var err error
		output, err = layer.Compute(output)
		if err != nil {
			return nil, err
		}
	}
	n.output = output
	return output, nil
}

// DistanceNetwork is a single-layer network of distance neurons used by
// competitive learning algorithms (SOM, elastic net).
type DistanceNetwork struct {
	Layer *DistanceLayer

	inputsCount int
	output      []float64

	rng         *rand.Rand
	weightRange numeric.Range
}

// NewDistanceNetwork creates a distance network with the given inputs count
// and number of neurons.
func NewDistanceNetwork(inputsCount, neuronsCount int) *DistanceNetwork {
	if inputsCount < 1 {
		inputsCount = 1
	}

	n := &DistanceNetwork{
		Layer:       NewDistanceLayer(neuronsCount, inputsCount),
		inputsCount: inputsCount,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		weightRange: defaultWeightRange,
	}
	n.Randomize()
	return n
}

// InputsCount returns the declared number of network inputs.
func (n *DistanceNetwork) InputsCount() int {
	return n.inputsCount
}

// Output returns the most recently computed output vector.
func (n *DistanceNetwork) Output() []float64 {
	return n.output
}

// Seed reinitializes the network's random source used by Randomize.
func (n *DistanceNetwork) Seed(seed int64) {
	n.rng = rand.New(rand.NewSource(seed))
}

// SetWeightRange replaces the range weights are drawn from.
func (n *DistanceNetwork) SetWeightRange(r numeric.Range) {
	n.weightRange = r
}

// Randomize redraws all weights of the network.
func (n *DistanceNetwork) Randomize() {
	n.Layer.Randomize(n.rng, n.weightRange)
}

// Compute returns the distances between the input vector and every neuron's
// weight vector.
func (n *DistanceNetwork) Compute(input []float64) ([]float64, error) {
	output, err := n.Layer.Compute(input)
	if err != nil {
		return nil, err
	}
	n.output = output
	return output, nil
}

// Winner returns the index of the neuron with the minimal distance in the
// most recent Compute call.
func (n *DistanceNetwork) Winner() int {
	min := n.output[0]
	minIndex := 0
	for i := 1; i < len(n.output); i++ {
		if n.output[i] < min {
			min = n.output[i]
			minIndex = i
		}
	}
	return minIndex
}
