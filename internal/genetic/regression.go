package genetic

import (
	"fmt"
	"math"

	"neurevo/internal/numeric"
)

// SymbolicRegressionFitness scores chromosomes whose string form is a
// function in postfix polish notation against a set of (x, y) sample
// points. The fitness equals 100 / (error + 1), where error is the sum
// of absolute differences between the evaluated and expected values.
// Expressions that fail to evaluate get fitness 0.
type SymbolicRegressionFitness struct {
	data      [][2]float64
	variables []float64
}

// NewSymbolicRegressionFitness creates a fitness for approximating the
// function defined by the (x, y) data points. The constants become
// extra expression variables $1..$n; $0 is the x input.
func NewSymbolicRegressionFitness(data [][2]float64, constants []float64) *SymbolicRegressionFitness {
	variables := make([]float64, len(constants)+1)
	copy(variables[1:], constants)

	return &SymbolicRegressionFitness{
		data:      data,
		variables: variables,
	}
}

func (f *SymbolicRegressionFitness) Evaluate(c Chromosome) float64 {
	function := c.String()

	var totalError float64
	for _, point := range f.data {
		f.variables[0] = point[0]

		y, err := numeric.EvaluatePolish(function, f.variables)
		if err != nil || math.IsNaN(y) {
			return 0
		}
		totalError += math.Abs(y - point[1])
	}

	return 100.0 / (totalError + 1)
}

// TimeSeriesPredictionFitness scores polish notation chromosomes for
// time series prediction with the sliding window method. The window's
// past samples become expression variables $0..$windowSize-1 ($0 is the
// most recent), followed by the constants. The fitness equals
// 100 / (error + 1) over the training part of the series.
type TimeSeriesPredictionFitness struct {
	data           []float64
	variables      []float64
	windowSize     int
	predictionSize int
}

// NewTimeSeriesPredictionFitness creates a fitness for predicting the
// given series. The last predictionSize samples are excluded from
// training so they can verify the model afterwards.
func NewTimeSeriesPredictionFitness(data []float64, windowSize, predictionSize int, constants []float64) (*TimeSeriesPredictionFitness, error) {
	if windowSize >= len(data) {
		return nil, fmt.Errorf("window size %d should be less than data amount %d", windowSize, len(data))
	}
	if len(data)-windowSize-predictionSize < 1 {
		return nil, fmt.Errorf("data size %d is not enough for window %d and prediction %d", len(data), windowSize, predictionSize)
	}

	variables := make([]float64, len(constants)+windowSize)
	copy(variables[windowSize:], constants)

	return &TimeSeriesPredictionFitness{
		data:           data,
		variables:      variables,
		windowSize:     windowSize,
		predictionSize: predictionSize,
	}, nil
}

func (f *TimeSeriesPredictionFitness) Evaluate(c Chromosome) float64 {
	function := c.String()

	var totalError float64
	for i, n := 0, len(f.data)-f.windowSize-f.predictionSize; i < n; i++ {
		// most recent sample goes into $0
		for j, b := 0, i+f.windowSize-1; j < f.windowSize; j++ {
			f.variables[j] = f.data[b-j]
		}

		y, err := numeric.EvaluatePolish(function, f.variables)
		if err != nil || math.IsNaN(y) {
			return 0
		}
		totalError += math.Abs(y - f.data[i+f.windowSize])
	}

	return 100.0 / (totalError + 1)
}

// Translate returns the prediction expression encoded by the
// chromosome, written in postfix polish notation.
func (f *TimeSeriesPredictionFitness) Translate(c Chromosome) string {
	return c.String()
}
