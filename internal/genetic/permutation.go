package genetic

import "math/rand"

// PermutationChromosome is a short array chromosome whose genes form a
// permutation of [0, length): every gene is unique and smaller than the
// chromosome's length.
type PermutationChromosome struct {
	ShortArrayChromosome
}

// NewPermutationChromosome creates a random permutation of the given
// length, clamped to [2, MaxShortArrayLength].
func NewPermutationChromosome(length int) *PermutationChromosome {
	return NewPermutationChromosomeRand(length, newRand())
}

// NewPermutationChromosomeRand is like NewPermutationChromosome but
// draws all randomness from rng.
func NewPermutationChromosomeRand(length int, rng *rand.Rand) *PermutationChromosome {
	c := &PermutationChromosome{ShortArrayChromosome{
		length: min(MaxShortArrayLength, max(2, length)),
		rng:    rng,
	}}
	c.maxValue = c.length - 1
	c.genes = make([]uint16, c.length)
	c.Generate()
	return c
}

// Generate builds the ascending permutation and shuffles it with
// length/2 random swaps.
func (c *PermutationChromosome) Generate() {
	for i := range c.genes {
		c.genes[i] = uint16(i)
	}
	for i, n := 0, c.length>>1; i < n; i++ {
		j1 := c.rng.Intn(c.length)
		j2 := c.rng.Intn(c.length)
		c.genes[j1], c.genes[j2] = c.genes[j2], c.genes[j1]
	}
}

func (c *PermutationChromosome) CreateNew() Chromosome {
	return NewPermutationChromosomeRand(c.length, c.rng)
}

func (c *PermutationChromosome) Clone() Chromosome {
	cp := *c
	cp.genes = make([]uint16, len(c.genes))
	copy(cp.genes, c.genes)
	return &cp
}

// Mutate swaps two randomly chosen genes, preserving the permutation.
func (c *PermutationChromosome) Mutate() {
	j1 := c.rng.Intn(c.length)
	j2 := c.rng.Intn(c.length)
	c.genes[j1], c.genes[j2] = c.genes[j2], c.genes[j1]
}

// Crossover produces two child permutations by walking both parents'
// gene successors, then replaces the parents with them.
func (c *PermutationChromosome) Crossover(pair Chromosome) {
	p, ok := pair.(*PermutationChromosome)
	if !ok || p.length != c.length {
		return
	}

	child1 := make([]uint16, c.length)
	child2 := make([]uint16, c.length)

	c.crossChild(c.genes, p.genes, child1)
	c.crossChild(p.genes, c.genes, child2)

	c.genes = child1
	p.genes = child2
}

// Evaluate is redeclared so fitness functions receive the permutation
// type rather than the embedded short array chromosome.
func (c *PermutationChromosome) Evaluate(f FitnessFunc) {
	c.fitness = f.Evaluate(c)
}

func (c *PermutationChromosome) crossChild(parent1, parent2, child []uint16) {
	index1 := indexLookup(parent1)
	index2 := indexLookup(parent2)

	geneIsBusy := make([]bool, c.length)
	k := c.length - 1

	// the first gene of the child is taken from the second parent
	prev := parent2[0]
	child[0] = prev
	geneIsBusy[prev] = true

	for i := 1; i < c.length; i++ {
		// successors of prev in both parents
		j := index1[prev]
		next1 := parent1[0]
		if int(j) != k {
			next1 = parent1[j+1]
		}
		j = index2[prev]
		next2 := parent2[0]
		if int(j) != k {
			next2 = parent2[j+1]
		}

		valid1 := !geneIsBusy[next1]
		valid2 := !geneIsBusy[next2]

		switch {
		case valid1 && valid2:
			if c.rng.Intn(2) == 0 {
				prev = next1
			} else {
				prev = next2
			}
		case !valid1 && !valid2:
			// neither successor is free, pick a random free gene
			r := c.rng.Intn(c.length)
			start := r
			for r < c.length && geneIsBusy[r] {
				r++
			}
			if r == c.length {
				r = start - 1
				for geneIsBusy[r] {
					r--
				}
			}
			prev = uint16(r)
		case valid1:
			prev = next1
		default:
			prev = next2
		}

		child[i] = prev
		geneIsBusy[prev] = true
	}
}

func indexLookup(genes []uint16) []uint16 {
	index := make([]uint16, len(genes))
	for i, g := range genes {
		index[g] = uint16(i)
	}
	return index
}
