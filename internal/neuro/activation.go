package neuro

import (
	"fmt"
	"math"
)

// ActivationFunc is the activation strategy applied to a neuron's weighted
// input sum.
type ActivationFunc interface {
	// Function computes the activation value at x.
	Function(x float64) float64
	// Derivative computes the derivative at x.
	Derivative(x float64) float64
	// Derivative2 computes the derivative from an already-known activation
	// output y, avoiding a second evaluation of Function.
	Derivative2(y float64) float64
}

// Sigmoid is the logistic activation 1/(1+exp(-alpha*x)) with output range
// (0, 1).
type Sigmoid struct {
	Alpha float64
}

// NewSigmoid returns a sigmoid with the default alpha of 2.
func NewSigmoid() *Sigmoid {
	return &Sigmoid{Alpha: 2}
}

func (f *Sigmoid) Function(x float64) float64 {
	return 1 / (1 + math.Exp(-f.Alpha*x))
}

func (f *Sigmoid) Derivative(x float64) float64 {
	return f.Derivative2(f.Function(x))
}

func (f *Sigmoid) Derivative2(y float64) float64 {
	return f.Alpha * y * (1 - y)
}

// BipolarSigmoid is the activation 2/(1+exp(-alpha*x))-1 with output range
// (-1, 1).
type BipolarSigmoid struct {
	Alpha float64
}

// NewBipolarSigmoid returns a bipolar sigmoid with the default alpha of 2.
func NewBipolarSigmoid() *BipolarSigmoid {
	return &BipolarSigmoid{Alpha: 2}
}

func (f *BipolarSigmoid) Function(x float64) float64 {
	return 2/(1+math.Exp(-f.Alpha*x)) - 1
}

func (f *BipolarSigmoid) Derivative(x float64) float64 {
	return f.Derivative2(f.Function(x))
}

func (f *BipolarSigmoid) Derivative2(y float64) float64 {
	return f.Alpha * (1 - y*y) / 2
}

// Threshold is the step activation: 1 for x >= 0, otherwise 0. It is not
// differentiable; both derivative methods return 0 by convention, so it must
// only be paired with learning algorithms that do not use derivatives
// (perceptron learning).
type Threshold struct{}

func (Threshold) Function(x float64) float64 {
	if x >= 0 {
		return 1
	}
	return 0
}

func (Threshold) Derivative(float64) float64 {
	return 0
}

func (Threshold) Derivative2(float64) float64 {
	return 0
}

// ActivationName returns the registry name of a built-in activation function.
// It is used by the storage codec to record activation identity.
func ActivationName(fn ActivationFunc) (string, error) {
	switch fn.(type) {
	case *Sigmoid:
		return "sigmoid", nil
	case *BipolarSigmoid:
		return "bipolar_sigmoid", nil
	case Threshold, *Threshold:
		return "threshold", nil
	default:
		return "", fmt.Errorf("unknown activation function %T", fn)
	}
}

// ActivationAlpha returns the alpha parameter of a built-in activation, or 0
// for functions without one.
func ActivationAlpha(fn ActivationFunc) float64 {
	switch f := fn.(type) {
	case *Sigmoid:
		return f.Alpha
	case *BipolarSigmoid:
		return f.Alpha
	default:
		return 0
	}
}

// ActivationByName reconstructs a built-in activation from its registry name
// and alpha parameter.
func ActivationByName(name string, alpha float64) (ActivationFunc, error) {
	switch name {
	case "sigmoid":
		return &Sigmoid{Alpha: alpha}, nil
	case "bipolar_sigmoid":
		return &BipolarSigmoid{Alpha: alpha}, nil
	case "threshold":
		return Threshold{}, nil
	default:
		return nil, fmt.Errorf("activation not found: %s", name)
	}
}
