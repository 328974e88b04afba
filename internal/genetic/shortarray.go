package genetic

import (
	"math"
	"math/rand"
	"strconv"
	"strings"
)

// MaxShortArrayLength is the largest element count a short array
// chromosome supports.
const MaxShortArrayLength = math.MaxInt16

// ShortArrayChromosome is an array of bounded unsigned 16 bit genes.
type ShortArrayChromosome struct {
	length   int
	maxValue int
	genes    []uint16
	fitness  float64
	rng      *rand.Rand
}

// NewShortArrayChromosome creates a random chromosome of the given
// length with the gene bound set to the maximum value of a short.
func NewShortArrayChromosome(length int) *ShortArrayChromosome {
	return NewShortArrayChromosomeRand(length, math.MaxInt16, newRand())
}

// NewShortArrayChromosomeRand creates a random chromosome of the given
// length, clamped to [2, MaxShortArrayLength], whose genes stay in
// [0, maxValue]. All randomness is drawn from rng.
func NewShortArrayChromosomeRand(length, maxValue int, rng *rand.Rand) *ShortArrayChromosome {
	c := &ShortArrayChromosome{
		length:   min(MaxShortArrayLength, max(2, length)),
		maxValue: min(math.MaxInt16, max(1, maxValue)),
		rng:      rng,
	}
	c.genes = make([]uint16, c.length)
	c.Generate()
	return c
}

// Length returns the chromosome's length in array elements.
func (c *ShortArrayChromosome) Length() int { return c.length }

// MaxValue returns the largest value a single gene may take.
func (c *ShortArrayChromosome) MaxValue() int { return c.maxValue }

// Value returns the underlying gene array. The slice is not copied.
func (c *ShortArrayChromosome) Value() []uint16 { return c.genes }

func (c *ShortArrayChromosome) Generate() {
	for i := range c.genes {
		c.genes[i] = uint16(c.rng.Intn(c.maxValue + 1))
	}
}

func (c *ShortArrayChromosome) CreateNew() Chromosome {
	return NewShortArrayChromosomeRand(c.length, c.maxValue, c.rng)
}

func (c *ShortArrayChromosome) Clone() Chromosome {
	cp := *c
	cp.genes = make([]uint16, len(c.genes))
	copy(cp.genes, c.genes)
	return &cp
}

// Mutate rerandomizes one randomly chosen gene.
func (c *ShortArrayChromosome) Mutate() {
	i := c.rng.Intn(c.length)
	c.genes[i] = uint16(c.rng.Intn(c.maxValue + 1))
}

// Crossover interchanges the tails of the two chromosomes after a
// random crossover point.
func (c *ShortArrayChromosome) Crossover(pair Chromosome) {
	p, ok := pair.(*ShortArrayChromosome)
	if !ok || p.length != c.length {
		return
	}

	point := c.rng.Intn(c.length-1) + 1
	for i := point; i < c.length; i++ {
		c.genes[i], p.genes[i] = p.genes[i], c.genes[i]
	}
}

func (c *ShortArrayChromosome) Evaluate(f FitnessFunc) {
	c.fitness = f.Evaluate(c)
}

func (c *ShortArrayChromosome) Fitness() float64 { return c.fitness }

func (c *ShortArrayChromosome) String() string {
	var sb strings.Builder
	for i, g := range c.genes {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(int(g)))
	}
	return sb.String()
}
