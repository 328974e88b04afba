package learning

import (
	"math"

	"neurevo/internal/neuro"
)

const (
	rpropEtaPlus  = 1.2
	rpropEtaMinus = 0.5
	rpropDeltaMax = 50.0
	rpropDeltaMin = 1e-6
)

// ResilientBackpropagation trains multi layer activation networks with
// the RPROP algorithm: per weight update steps grow while the gradient
// keeps its sign and shrink when it flips, so only the gradient's sign
// drives the weight change. RunEpoch accumulates the gradient over the
// whole sample set before updating, which is the intended mode; Run
// updates after a single sample.
//
// The algorithm assumes every neuron of the network shares the
// activation function of the first neuron of the first layer.
type ResilientBackpropagation struct {
	network *neuro.ActivationNetwork

	learningRate float64

	neuronErrors [][]float64

	// update steps, also known as deltas
	weightsUpdates    [][][]float64
	thresholdsUpdates [][]float64

	// current and previous gradient values
	weightsDerivatives            [][][]float64
	thresholdsDerivatives         [][]float64
	weightsPreviousDerivatives    [][][]float64
	thresholdsPreviousDerivatives [][]float64
}

// NewResilientBackpropagation creates a trainer for the given network
// with every update step initialized to 0.0125.
func NewResilientBackpropagation(network *neuro.ActivationNetwork) *ResilientBackpropagation {
	r := &ResilientBackpropagation{
		network:      network,
		learningRate: 0.0125,
	}

	layersCount := len(network.Layers)
	r.neuronErrors = make([][]float64, layersCount)
	r.weightsUpdates = make([][][]float64, layersCount)
	r.thresholdsUpdates = make([][]float64, layersCount)
	r.weightsDerivatives = make([][][]float64, layersCount)
	r.thresholdsDerivatives = make([][]float64, layersCount)
	r.weightsPreviousDerivatives = make([][][]float64, layersCount)
	r.thresholdsPreviousDerivatives = make([][]float64, layersCount)

	for i, layer := range network.Layers {
		neuronsCount := len(layer.Neurons)

		r.neuronErrors[i] = make([]float64, neuronsCount)
		r.weightsUpdates[i] = make([][]float64, neuronsCount)
		r.thresholdsUpdates[i] = make([]float64, neuronsCount)
		r.weightsDerivatives[i] = make([][]float64, neuronsCount)
		r.thresholdsDerivatives[i] = make([]float64, neuronsCount)
		r.weightsPreviousDerivatives[i] = make([][]float64, neuronsCount)
		r.thresholdsPreviousDerivatives[i] = make([]float64, neuronsCount)

		for j := 0; j < neuronsCount; j++ {
			r.weightsDerivatives[i][j] = make([]float64, layer.InputsCount())
			r.weightsPreviousDerivatives[i][j] = make([]float64, layer.InputsCount())
			r.weightsUpdates[i][j] = make([]float64, layer.InputsCount())
		}
	}

	r.resetUpdates(r.learningRate)
	return r
}

// LearningRate returns the initial update step.
func (r *ResilientBackpropagation) LearningRate() float64 { return r.learningRate }

// SetLearningRate sets the initial update step and resets all current
// steps to it.
func (r *ResilientBackpropagation) SetLearningRate(rate float64) {
	r.learningRate = rate
	r.resetUpdates(rate)
}

// Run teaches one sample and returns half the squared error of the
// output layer.
func (r *ResilientBackpropagation) Run(input, output []float64) (float64, error) {
	r.resetGradient()

	if _, err := r.network.Compute(input); err != nil {
		return 0, err
	}

	errorValue := r.calculateError(output)
	r.calculateGradient(input)
	r.updateNetwork()

	return errorValue, nil
}

// RunEpoch accumulates the gradient over all samples, applies a single
// batch update and returns the summary error.
func (r *ResilientBackpropagation) RunEpoch(input, output [][]float64) (float64, error) {
	r.resetGradient()

	errorSum := 0.0
	for i := range input {
		if _, err := r.network.Compute(input[i]); err != nil {
			return 0, err
		}
		errorSum += r.calculateError(output[i])
		r.calculateGradient(input[i])
	}

	r.updateNetwork()
	return errorSum, nil
}

func (r *ResilientBackpropagation) resetGradient() {
	for i := range r.weightsDerivatives {
		for j := range r.weightsDerivatives[i] {
			clear(r.weightsDerivatives[i][j])
		}
		clear(r.thresholdsDerivatives[i])
	}
}

func (r *ResilientBackpropagation) resetUpdates(rate float64) {
	for i := range r.weightsUpdates {
		for j := range r.weightsUpdates[i] {
			for k := range r.weightsUpdates[i][j] {
				r.weightsUpdates[i][j][k] = rate
			}
		}
		for j := range r.thresholdsUpdates[i] {
			r.thresholdsUpdates[i][j] = rate
		}
	}
}

// updateNetwork applies one RPROP step per weight: the step grows when
// the gradient kept its sign, shrinks and skips the move when it
// flipped, and moves by the current step otherwise.
func (r *ResilientBackpropagation) updateNetwork() {
	for i, layer := range r.network.Layers {
		layerWeightsUpdates := r.weightsUpdates[i]
		layerThresholdUpdates := r.thresholdsUpdates[i]
		layerWeightsDerivatives := r.weightsDerivatives[i]
		layerThresholdDerivatives := r.thresholdsDerivatives[i]
		layerPreviousWeightsDerivatives := r.weightsPreviousDerivatives[i]
		layerPreviousThresholdDerivatives := r.thresholdsPreviousDerivatives[i]

		for j, neuron := range layer.Neurons {
			neuronWeightUpdates := layerWeightsUpdates[j]
			neuronWeightDerivatives := layerWeightsDerivatives[j]
			neuronPreviousWeightDerivatives := layerPreviousWeightsDerivatives[j]

			for k := range neuron.Weights {
				s := neuronPreviousWeightDerivatives[k] * neuronWeightDerivatives[k]

				switch {
				case s > 0:
					neuronWeightUpdates[k] = math.Min(neuronWeightUpdates[k]*rpropEtaPlus, rpropDeltaMax)
					neuron.Weights[k] -= sign(neuronWeightDerivatives[k]) * neuronWeightUpdates[k]
					neuronPreviousWeightDerivatives[k] = neuronWeightDerivatives[k]
				case s < 0:
					neuronWeightUpdates[k] = math.Max(neuronWeightUpdates[k]*rpropEtaMinus, rpropDeltaMin)
					neuronPreviousWeightDerivatives[k] = 0
				default:
					neuron.Weights[k] -= sign(neuronWeightDerivatives[k]) * neuronWeightUpdates[k]
					neuronPreviousWeightDerivatives[k] = neuronWeightDerivatives[k]
				}
			}

			s := layerPreviousThresholdDerivatives[j] * layerThresholdDerivatives[j]

			switch {
			case s > 0:
				layerThresholdUpdates[j] = math.Min(layerThresholdUpdates[j]*rpropEtaPlus, rpropDeltaMax)
				neuron.Threshold -= sign(layerThresholdDerivatives[j]) * layerThresholdUpdates[j]
				layerPreviousThresholdDerivatives[j] = layerThresholdDerivatives[j]
			case s < 0:
				layerThresholdUpdates[j] = math.Max(layerThresholdUpdates[j]*rpropEtaMinus, rpropDeltaMin)
				layerPreviousThresholdDerivatives[j] = 0
			default:
				neuron.Threshold -= sign(layerThresholdDerivatives[j]) * layerThresholdUpdates[j]
				layerPreviousThresholdDerivatives[j] = layerThresholdDerivatives[j]
			}
		}
	}
}

// calculateError back propagates the output error through the layers,
// filling neuronErrors, and returns half the squared output error.
// Unlike the other gradient trainers the stored error derivatives point
// away from the target, so updateNetwork subtracts the steps.
func (r *ResilientBackpropagation) calculateError(desiredOutput []float64) float64 {
	layers := r.network.Layers
	layersCount := len(layers)
	function := layers[0].Neurons[0].Function

	errorValue := 0.0

	layer := layers[layersCount-1]
	layerDerivatives := r.neuronErrors[layersCount-1]
	for i, neuron := range layer.Neurons {
		output := neuron.Output()
		e := output - desiredOutput[i]
		layerDerivatives[i] = e * function.Derivative2(output)
		errorValue += e * e
	}

	for j := layersCount - 2; j >= 0; j-- {
		layer = layers[j]
		layerDerivatives = r.neuronErrors[j]
		layerNext := layers[j+1]
		nextDerivatives := r.neuronErrors[j+1]

		for i, neuron := range layer.Neurons {
			sum := 0.0
			for k, neuronNext := range layerNext.Neurons {
				sum += nextDerivatives[k] * neuronNext.Weights[i]
			}
			layerDerivatives[i] = sum * function.Derivative2(neuron.Output())
		}
	}

	return errorValue / 2.0
}

// calculateGradient accumulates the per weight gradient of the current
// sample into the derivative buffers.
func (r *ResilientBackpropagation) calculateGradient(input []float64) {
	layers := r.network.Layers

	layer := layers[0]
	weightErrors := r.neuronErrors[0]
	layerWeightsDerivatives := r.weightsDerivatives[0]
	layerThresholdDerivatives := r.thresholdsDerivatives[0]

	for i := range layer.Neurons {
		neuronWeightDerivatives := layerWeightsDerivatives[i]
		for j := range neuronWeightDerivatives {
			neuronWeightDerivatives[j] += weightErrors[i] * input[j]
		}
		layerThresholdDerivatives[i] += weightErrors[i]
	}

	for k := 1; k < len(layers); k++ {
		layer = layers[k]
		weightErrors = r.neuronErrors[k]
		layerWeightsDerivatives = r.weightsDerivatives[k]
		layerThresholdDerivatives = r.thresholdsDerivatives[k]
		layerPrev := layers[k-1]

		for i := range layer.Neurons {
			neuronWeightDerivatives := layerWeightsDerivatives[i]
			for j, neuronPrev := range layerPrev.Neurons {
				neuronWeightDerivatives[j] += weightErrors[i] * neuronPrev.Output()
			}
			layerThresholdDerivatives[i] += weightErrors[i]
		}
	}
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
