package genetic

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"neurevo/internal/random"
)

// MaxDoubleArrayLength is the largest element count a double array
// chromosome supports.
const MaxDoubleArrayLength = 65536

// DoubleArrayChromosome is an array of float64 genes. Gene
// initialization and the two mutation flavors draw from injected
// random number generators, so callers control the distributions.
type DoubleArrayChromosome struct {
	generator          random.Generator
	mutationMultiplier random.Generator
	mutationAddition   random.Generator

	length  int
	genes   []float64
	fitness float64

	// balancers select between the two mutation and crossover flavors
	mutationBalancer  float64
	crossoverBalancer float64

	rng *rand.Rand
}

// NewDoubleArrayChromosome creates a random chromosome of the given
// length, clamped to [2, MaxDoubleArrayLength]. Genes are drawn from
// generator; mutations multiply by mutationMultiplier draws or add
// mutationAddition draws.
func NewDoubleArrayChromosome(generator, mutationMultiplier, mutationAddition random.Generator, length int) *DoubleArrayChromosome {
	c := &DoubleArrayChromosome{
		generator:          generator,
		mutationMultiplier: mutationMultiplier,
		mutationAddition:   mutationAddition,
		length:             min(MaxDoubleArrayLength, max(2, length)),
		mutationBalancer:   0.5,
		crossoverBalancer:  0.5,
		rng:                newRand(),
	}
	c.genes = make([]float64, c.length)
	c.Generate()
	return c
}

// NewDoubleArrayChromosomeValues creates a chromosome holding a copy of
// the given gene values.
func NewDoubleArrayChromosomeValues(generator, mutationMultiplier, mutationAddition random.Generator, values []float64) (*DoubleArrayChromosome, error) {
	if len(values) < 2 || len(values) > MaxDoubleArrayLength {
		return nil, fmt.Errorf("invalid length of values array: %d", len(values))
	}
	c := &DoubleArrayChromosome{
		generator:          generator,
		mutationMultiplier: mutationMultiplier,
		mutationAddition:   mutationAddition,
		length:             len(values),
		mutationBalancer:   0.5,
		crossoverBalancer:  0.5,
		rng:                newRand(),
	}
	c.genes = make([]float64, c.length)
	copy(c.genes, values)
	return c, nil
}

// Seed reseeds the point selection source used by mutation and
// crossover decisions.
func (c *DoubleArrayChromosome) Seed(seed int64) {
	c.rng = rand.New(rand.NewSource(seed))
}

// Length returns the chromosome's length in array elements.
func (c *DoubleArrayChromosome) Length() int { return c.length }

// Value returns the underlying gene array. The slice is not copied.
func (c *DoubleArrayChromosome) Value() []float64 { return c.genes }

// MutationBalancer returns the probability of multiplicative mutation.
func (c *DoubleArrayChromosome) MutationBalancer() float64 { return c.mutationBalancer }

// SetMutationBalancer sets the probability, in [0, 1], of a mutation
// multiplying a gene rather than adding to it.
func (c *DoubleArrayChromosome) SetMutationBalancer(v float64) {
	c.mutationBalancer = v
}

// CrossoverBalancer returns the probability of one point crossover.
func (c *DoubleArrayChromosome) CrossoverBalancer() float64 { return c.crossoverBalancer }

// SetCrossoverBalancer sets the probability, in [0, 1], of crossover
// interchanging gene ranges rather than blending gene values.
func (c *DoubleArrayChromosome) SetCrossoverBalancer(v float64) {
	c.crossoverBalancer = v
}

func (c *DoubleArrayChromosome) Generate() {
	for i := range c.genes {
		c.genes[i] = float64(c.generator.Next())
	}
}

func (c *DoubleArrayChromosome) CreateNew() Chromosome {
	return NewDoubleArrayChromosome(c.generator, c.mutationMultiplier, c.mutationAddition, c.length)
}

func (c *DoubleArrayChromosome) Clone() Chromosome {
	cp := *c
	cp.genes = make([]float64, len(c.genes))
	copy(cp.genes, c.genes)
	return &cp
}

// Mutate multiplies a random gene by a multiplier draw or adds an
// addition draw to it, chosen by the mutation balancer.
func (c *DoubleArrayChromosome) Mutate() {
	i := c.rng.Intn(c.length)

	if c.rng.Float64() < c.mutationBalancer {
		c.genes[i] *= float64(c.mutationMultiplier.Next())
	} else {
		c.genes[i] += float64(c.mutationAddition.Next())
	}
}

// Crossover either interchanges gene ranges after a random point or
// blends the pairs' genes, moving a random portion of the per gene
// difference between them. The crossover balancer selects the flavor.
func (c *DoubleArrayChromosome) Crossover(pair Chromosome) {
	p, ok := pair.(*DoubleArrayChromosome)
	if !ok || p.length != c.length {
		return
	}

	if c.rng.Float64() < c.crossoverBalancer {
		point := c.rng.Intn(c.length-1) + 1
		for i := point; i < c.length; i++ {
			c.genes[i], p.genes[i] = p.genes[i], c.genes[i]
		}
	} else {
		factor := c.rng.Float64()
		if c.rng.Intn(2) == 0 {
			factor = -factor
		}

		for i := range c.genes {
			portion := (c.genes[i] - p.genes[i]) * factor
			c.genes[i] -= portion
			p.genes[i] += portion
		}
	}
}

func (c *DoubleArrayChromosome) Evaluate(f FitnessFunc) {
	c.fitness = f.Evaluate(c)
}

func (c *DoubleArrayChromosome) Fitness() float64 { return c.fitness }

func (c *DoubleArrayChromosome) String() string {
	var sb strings.Builder
	for i, g := range c.genes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.FormatFloat(g, 'g', -1, 64))
	}
	return sb.String()
}
