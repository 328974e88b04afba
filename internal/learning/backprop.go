package learning

import (
	"neurevo/internal/neuro"
)

// BackPropagation trains multi layer activation networks with online
// error back propagation, applying weight updates after every sample.
// A momentum term can smooth the updates.
//
// The algorithm assumes every neuron of the network shares the
// activation function of the first neuron of the first layer.
type BackPropagation struct {
	network *neuro.ActivationNetwork

	learningRate float64
	momentum     float64

	neuronErrors      [][]float64
	weightsUpdates    [][][]float64
	thresholdsUpdates [][]float64
}

// NewBackPropagation creates a trainer for the given network with
// learning rate 0.1 and no momentum.
func NewBackPropagation(network *neuro.ActivationNetwork) *BackPropagation {
	b := &BackPropagation{
		network:      network,
		learningRate: 0.1,
	}

	b.neuronErrors = make([][]float64, len(network.Layers))
	b.weightsUpdates = make([][][]float64, len(network.Layers))
	b.thresholdsUpdates = make([][]float64, len(network.Layers))

	for i, layer := range network.Layers {
		b.neuronErrors[i] = make([]float64, len(layer.Neurons))
		b.weightsUpdates[i] = make([][]float64, len(layer.Neurons))
		b.thresholdsUpdates[i] = make([]float64, len(layer.Neurons))

		for j := range b.weightsUpdates[i] {
			b.weightsUpdates[i][j] = make([]float64, layer.InputsCount())
		}
	}
	return b
}

// LearningRate returns the gradient descent step.
func (b *BackPropagation) LearningRate() float64 { return b.learningRate }

// SetLearningRate sets the step, clamped to [0, 1].
func (b *BackPropagation) SetLearningRate(rate float64) {
	b.learningRate = min(1.0, max(0.0, rate))
}

// Momentum returns the portion of the previous update carried into the
// next one.
func (b *BackPropagation) Momentum() float64 { return b.momentum }

// SetMomentum sets the momentum, clamped to [0, 1].
func (b *BackPropagation) SetMomentum(momentum float64) {
	b.momentum = min(1.0, max(0.0, momentum))
}

// Run teaches one sample and returns half the squared error of the
// output layer.
func (b *BackPropagation) Run(input, output []float64) (float64, error) {
	if _, err := b.network.Compute(input); err != nil {
		return 0, err
	}

	errorValue := b.calculateError(output)
	b.calculateUpdates(input)
	b.updateNetwork()

	return errorValue, nil
}

// RunEpoch teaches all samples once and returns the summary error.
func (b *BackPropagation) RunEpoch(input, output [][]float64) (float64, error) {
	errorSum := 0.0
	for i := range input {
		e, err := b.Run(input[i], output[i])
		if err != nil {
			return 0, err
		}
		errorSum += e
	}
	return errorSum, nil
}

// calculateError back propagates the output error through the layers,
// filling neuronErrors, and returns half the squared output error.
func (b *BackPropagation) calculateError(desiredOutput []float64) float64 {
	layers := b.network.Layers
	layersCount := len(layers)
	function := layers[0].Neurons[0].Function

	errorValue := 0.0

	// output layer first
	layer := layers[layersCount-1]
	errors := b.neuronErrors[layersCount-1]
	for i, neuron := range layer.Neurons {
		output := neuron.Output()
		e := desiredOutput[i] - output
		errors[i] = e * function.Derivative2(output)
		errorValue += e * e
	}

	// remaining layers, back to front
	for j := layersCount - 2; j >= 0; j-- {
		layer = layers[j]
		layerNext := layers[j+1]
		errors = b.neuronErrors[j]
		errorsNext := b.neuronErrors[j+1]

		for i, neuron := range layer.Neurons {
			sum := 0.0
			for k, neuronNext := range layerNext.Neurons {
				sum += errorsNext[k] * neuronNext.Weights[i]
			}
			errors[i] = sum * function.Derivative2(neuron.Output())
		}
	}

	return errorValue / 2.0
}

// calculateUpdates computes weight and threshold updates from the
// propagated errors, mixing in the momentum portion of the previous
// updates.
func (b *BackPropagation) calculateUpdates(input []float64) {
	layers := b.network.Layers

	cachedMomentum := b.learningRate * b.momentum
	cached1mMomentum := b.learningRate * (1 - b.momentum)

	// first layer updates come from the input vector
	layer := layers[0]
	errors := b.neuronErrors[0]
	layerWeightsUpdates := b.weightsUpdates[0]
	layerThresholdUpdates := b.thresholdsUpdates[0]

	for i := range layer.Neurons {
		cachedError := errors[i] * cached1mMomentum
		neuronWeightUpdates := layerWeightsUpdates[i]

		for j := range neuronWeightUpdates {
			neuronWeightUpdates[j] = cachedMomentum*neuronWeightUpdates[j] + cachedError*input[j]
		}
		layerThresholdUpdates[i] = cachedMomentum*layerThresholdUpdates[i] + cachedError
	}

	// deeper layers read the previous layer's cached outputs
	for k := 1; k < len(layers); k++ {
		layerPrev := layers[k-1]
		layer = layers[k]
		errors = b.neuronErrors[k]
		layerWeightsUpdates = b.weightsUpdates[k]
		layerThresholdUpdates = b.thresholdsUpdates[k]

		for i := range layer.Neurons {
			cachedError := errors[i] * cached1mMomentum
			neuronWeightUpdates := layerWeightsUpdates[i]

			for j := range neuronWeightUpdates {
				neuronWeightUpdates[j] = cachedMomentum*neuronWeightUpdates[j] + cachedError*layerPrev.Neurons[j].Output()
			}
			layerThresholdUpdates[i] = cachedMomentum*layerThresholdUpdates[i] + cachedError
		}
	}
}

func (b *BackPropagation) updateNetwork() {
	for i, layer := range b.network.Layers {
		layerWeightsUpdates := b.weightsUpdates[i]
		layerThresholdUpdates := b.thresholdsUpdates[i]

		for j, neuron := range layer.Neurons {
			neuronWeightUpdates := layerWeightsUpdates[j]

			for k := range neuron.Weights {
				neuron.Weights[k] += neuronWeightUpdates[k]
			}
			neuron.Threshold += layerThresholdUpdates[j]
		}
	}
}
