// Package genetic implements a population based evolutionary engine:
// chromosome encodings, selection strategies and the population life
// cycle driving them.
package genetic

import (
	"math/rand"
	"time"
)

// Chromosome is a candidate solution that knows how to randomize,
// reproduce and mutate itself. Crossover modifies both the receiver and
// the pair argument in place.
type Chromosome interface {
	// Generate rerandomizes the chromosome's value.
	Generate()
	// CreateNew returns a fresh random chromosome with the same
	// construction parameters.
	CreateNew() Chromosome
	// Clone returns an exact copy, fitness included.
	Clone() Chromosome
	// Mutate randomly alters one gene.
	Mutate()
	// Crossover interchanges genetic material with the pair, modifying
	// both chromosomes. Mismatched pair types or lengths are ignored.
	Crossover(pair Chromosome)
	// Evaluate computes and stores the chromosome's fitness.
	Evaluate(f FitnessFunc)
	// Fitness returns the value stored by the last Evaluate call.
	Fitness() float64
	String() string
}

// FitnessFunc scores chromosomes. Implementations must return a value
// greater than zero for usable chromosomes; larger means better.
type FitnessFunc interface {
	Evaluate(c Chromosome) float64
}

func newRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
