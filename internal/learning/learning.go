// Package learning implements training algorithms for the networks in
// package neuro: error correction learning for single layer networks,
// gradient based learning for multi layer ones, competitive learning
// for distance networks and a genetic algorithm based trainer.
package learning

// Supervised is a learning algorithm driven by pairs of input samples
// and desired outputs. Both methods return the epoch's summary error;
// its exact meaning depends on the algorithm.
type Supervised interface {
	Run(input, output []float64) (float64, error)
	RunEpoch(input, output [][]float64) (float64, error)
}

// Unsupervised is a learning algorithm driven by input samples alone.
type Unsupervised interface {
	Run(input []float64) (float64, error)
	RunEpoch(input [][]float64) (float64, error)
}
