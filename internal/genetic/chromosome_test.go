package genetic

import (
	"math/bits"
	"math/rand"
	"testing"

	"neurevo/internal/numeric"
	"neurevo/internal/random"
)

func TestBinaryChromosomeLengthClamp(t *testing.T) {
	if got := NewBinaryChromosome(1).Length(); got != 2 {
		t.Fatalf("length clamp low: got %d, want 2", got)
	}
	if got := NewBinaryChromosome(100).Length(); got != MaxBinaryLength {
		t.Fatalf("length clamp high: got %d, want %d", got, MaxBinaryLength)
	}
	if got := NewBinaryChromosome(32).MaxValue(); got != 1<<31-1 {
		t.Fatalf("max value for 32 bits: got %d, want %d", got, uint64(1<<31-1))
	}
}

func TestBinaryChromosomeMutateFlipsOneBit(t *testing.T) {
	c := NewBinaryChromosomeRand(16, rand.New(rand.NewSource(7)))

	before := c.Value()
	c.Mutate()
	diff := before ^ c.Value()

	if bits.OnesCount64(diff) != 1 {
		t.Fatalf("mutation flipped %d bits, want 1", bits.OnesCount64(diff))
	}
	if diff >= 1<<16 {
		t.Fatalf("mutation flipped bit outside chromosome length: %b", diff)
	}
}

func TestBinaryChromosomeCrossoverIgnoresMismatch(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	c := NewBinaryChromosomeRand(16, rng)
	other := NewBinaryChromosomeRand(32, rng)

	v1, v2 := c.Value(), other.Value()
	c.Crossover(other)

	if c.Value() != v1 || other.Value() != v2 {
		t.Fatal("crossover with mismatched length should leave both chromosomes unchanged")
	}
}

func TestBinaryChromosomeCrossoverExchangesBits(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	c1 := NewBinaryChromosomeRand(32, rng)
	c2 := NewBinaryChromosomeRand(32, rng)

	before := bits.OnesCount64(c1.Value()) + bits.OnesCount64(c2.Value())
	c1.Crossover(c2)
	after := bits.OnesCount64(c1.Value()) + bits.OnesCount64(c2.Value())

	if before != after {
		t.Fatalf("crossover changed combined bit count: %d -> %d", before, after)
	}
}

func TestBinaryChromosomeString(t *testing.T) {
	c := NewBinaryChromosome(8)
	c.value = 0b10110001

	if got := c.String(); got != "10110001" {
		t.Fatalf("string form: got %q, want %q", got, "10110001")
	}
}

func TestShortArrayChromosomeBounds(t *testing.T) {
	c := NewShortArrayChromosomeRand(10, 5, rand.New(rand.NewSource(11)))

	if c.MaxValue() != 5 {
		t.Fatalf("max value: got %d, want 5", c.MaxValue())
	}
	for i := 0; i < 50; i++ {
		c.Generate()
		for _, g := range c.Value() {
			if int(g) > 5 {
				t.Fatalf("gene %d out of bound 5", g)
			}
		}
	}
}

func TestShortArrayChromosomeCrossoverKeepsHeads(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	c1 := NewShortArrayChromosomeRand(8, 100, rng)
	c2 := NewShortArrayChromosomeRand(8, 100, rng)

	v1 := append([]uint16(nil), c1.Value()...)
	v2 := append([]uint16(nil), c2.Value()...)

	c1.Crossover(c2)

	// every position holds a gene from one parent or the other
	for i := range v1 {
		a, b := c1.Value()[i], c2.Value()[i]
		same := a == v1[i] && b == v2[i]
		swapped := a == v2[i] && b == v1[i]
		if !same && !swapped {
			t.Fatalf("position %d holds genes from neither parent", i)
		}
	}
}

func TestShortArrayChromosomeCloneIsIndependent(t *testing.T) {
	c := NewShortArrayChromosome(6)
	clone := c.Clone().(*ShortArrayChromosome)

	clone.Value()[0] = c.Value()[0] + 1
	if c.Value()[0] == clone.Value()[0] {
		t.Fatal("clone shares the gene array with the original")
	}
}

func isPermutation(t *testing.T, genes []uint16) {
	t.Helper()
	seen := make([]bool, len(genes))
	for _, g := range genes {
		if int(g) >= len(genes) {
			t.Fatalf("gene %d out of range for length %d", g, len(genes))
		}
		if seen[g] {
			t.Fatalf("gene %d repeated", g)
		}
		seen[g] = true
	}
}

func TestPermutationChromosomeInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(21))
	c := NewPermutationChromosomeRand(17, rng)

	isPermutation(t, c.Value())

	for i := 0; i < 20; i++ {
		c.Mutate()
		isPermutation(t, c.Value())
	}

	pair := NewPermutationChromosomeRand(17, rng)
	for i := 0; i < 20; i++ {
		c.Crossover(pair)
		isPermutation(t, c.Value())
		isPermutation(t, pair.Value())
	}
}

func TestPermutationChromosomeCreateNew(t *testing.T) {
	c := NewPermutationChromosome(9)
	fresh := c.CreateNew()

	p, ok := fresh.(*PermutationChromosome)
	if !ok {
		t.Fatalf("CreateNew returned %T, want *PermutationChromosome", fresh)
	}
	isPermutation(t, p.Value())
}

func TestDoubleArrayChromosomeGenerate(t *testing.T) {
	gen := random.NewUniformSeeded(numeric.NewRange(-1, 1), 13)
	c := NewDoubleArrayChromosome(gen, random.NewUniformOneSeeded(14), random.NewUniformOneSeeded(15), 12)

	if c.Length() != 12 {
		t.Fatalf("length: got %d, want 12", c.Length())
	}
	for _, g := range c.Value() {
		if g < -1 || g > 1 {
			t.Fatalf("gene %v outside the generator range", g)
		}
	}
}

func TestDoubleArrayChromosomeValuesLengthCheck(t *testing.T) {
	gen := random.NewUniformOneSeeded(1)
	if _, err := NewDoubleArrayChromosomeValues(gen, gen, gen, []float64{1}); err == nil {
		t.Fatal("expected error for a single value array")
	}

	c, err := NewDoubleArrayChromosomeValues(gen, gen, gen, []float64{1, 2, 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := c.Value(); got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatalf("values not copied: %v", got)
	}
}

func TestDoubleArrayChromosomeBlendCrossoverKeepsSums(t *testing.T) {
	gen := random.NewUniformSeeded(numeric.NewRange(0, 10), 31)
	c1 := NewDoubleArrayChromosome(gen, gen, gen, 6)
	c2 := NewDoubleArrayChromosome(gen, gen, gen, 6)
	c1.Seed(8)
	c1.SetCrossoverBalancer(0)

	sums := make([]float64, 6)
	for i := range sums {
		sums[i] = c1.Value()[i] + c2.Value()[i]
	}

	c1.Crossover(c2)

	for i := range sums {
		got := c1.Value()[i] + c2.Value()[i]
		if diff := got - sums[i]; diff > 1e-9 || diff < -1e-9 {
			t.Fatalf("gene %d pair sum changed: %v -> %v", i, sums[i], got)
		}
	}
}
