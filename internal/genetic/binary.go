package genetic

import (
	"math"
	"math/rand"
)

// MaxBinaryLength is the largest bit length a binary chromosome supports.
const MaxBinaryLength = 64

// BinaryChromosome is a set of 2 to 64 bits packed into a single value.
type BinaryChromosome struct {
	length  int
	value   uint64
	fitness float64
	rng     *rand.Rand
}

// NewBinaryChromosome creates a random chromosome of the given bit
// length, clamped to [2, MaxBinaryLength].
func NewBinaryChromosome(length int) *BinaryChromosome {
	return NewBinaryChromosomeRand(length, newRand())
}

// NewBinaryChromosomeRand is like NewBinaryChromosome but draws all
// randomness from rng.
func NewBinaryChromosomeRand(length int, rng *rand.Rand) *BinaryChromosome {
	c := &BinaryChromosome{
		length: min(MaxBinaryLength, max(2, length)),
		rng:    rng,
	}
	c.Generate()
	return c
}

// Length returns the chromosome's length in bits.
func (c *BinaryChromosome) Length() int { return c.length }

// Value returns the chromosome's packed numerical value.
func (c *BinaryChromosome) Value() uint64 { return c.value }

// MaxValue returns the largest numerical value representable by a
// chromosome of the current length.
func (c *BinaryChromosome) MaxValue() uint64 {
	return math.MaxInt64 >> (64 - c.length)
}

func (c *BinaryChromosome) Generate() {
	c.value = c.rng.Uint64()
}

func (c *BinaryChromosome) CreateNew() Chromosome {
	return NewBinaryChromosomeRand(c.length, c.rng)
}

func (c *BinaryChromosome) Clone() Chromosome {
	cp := *c
	return &cp
}

// Mutate flips one randomly chosen bit.
func (c *BinaryChromosome) Mutate() {
	c.value ^= 1 << c.rng.Intn(c.length)
}

// Crossover interchanges a range of bits between the two chromosomes.
func (c *BinaryChromosome) Crossover(pair Chromosome) {
	p, ok := pair.(*BinaryChromosome)
	if !ok || p.length != c.length {
		return
	}

	point := 63 - c.rng.Intn(c.length-1)
	mask1 := uint64(math.MaxInt64) >> point
	mask2 := ^mask1

	v1, v2 := c.value, p.value
	c.value = (v1 & mask1) | (v2 & mask2)
	p.value = (v2 & mask1) | (v1 & mask2)
}

func (c *BinaryChromosome) Evaluate(f FitnessFunc) {
	c.fitness = f.Evaluate(c)
}

func (c *BinaryChromosome) Fitness() float64 { return c.fitness }

// String renders the bits most significant first.
func (c *BinaryChromosome) String() string {
	buf := make([]byte, c.length)
	v := c.value
	for i := c.length - 1; i >= 0; i-- {
		buf[i] = byte('0' + v&1)
		v >>= 1
	}
	return string(buf)
}
