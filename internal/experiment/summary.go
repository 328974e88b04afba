package experiment

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary condenses an error history into headline statistics.
type Summary struct {
	First  float64 `json:"first"`
	Final  float64 `json:"final"`
	Min    float64 `json:"min"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Summarize computes history statistics. An empty history yields a zero
// summary.
func Summarize(history []float64) Summary {
	if len(history) == 0 {
		return Summary{}
	}

	summary := Summary{
		First: history[0],
		Final: history[len(history)-1],
		Min:   floats.Min(history),
		Mean:  stat.Mean(history, nil),
	}
	if len(history) > 1 {
		summary.StdDev = stat.StdDev(history, nil)
	}
	return summary
}
