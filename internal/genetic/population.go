package genetic

import (
	"fmt"
	"math/rand"
)

// Population drives the life cycle of a collection of chromosomes:
// generation growth through crossover and mutation, then reduction back
// to the population size through a selection strategy. It works with
// any Chromosome, FitnessFunc and SelectionMethod implementations.
type Population struct {
	fitnessFunction FitnessFunc
	selectionMethod SelectionMethod
	members         []Chromosome
	size            int

	randomSelectionPortion float64
	autoShuffling          bool
	crossoverRate          float64
	mutationRate           float64

	rng *rand.Rand

	fitnessMax float64
	fitnessSum float64
	fitnessAvg float64
	best       Chromosome
}

// NewPopulation creates a population of the given size. The ancestor
// becomes the first member and stamps out the rest through CreateNew.
func NewPopulation(size int, ancestor Chromosome, fitnessFunction FitnessFunc, selectionMethod SelectionMethod) (*Population, error) {
	if size < 2 {
		return nil, fmt.Errorf("too small population size: %d", size)
	}

	p := &Population{
		fitnessFunction: fitnessFunction,
		selectionMethod: selectionMethod,
		size:            size,
		crossoverRate:   0.75,
		mutationRate:    0.10,
		rng:             newRand(),
	}

	ancestor.Evaluate(fitnessFunction)
	p.members = append(p.members, ancestor.Clone())
	for i := 1; i < size; i++ {
		c := ancestor.CreateNew()
		c.Evaluate(fitnessFunction)
		p.members = append(p.members, c)
	}
	return p, nil
}

// Seed reseeds the source driving crossover and mutation decisions and
// population shuffling.
func (p *Population) Seed(seed int64) {
	p.rng = rand.New(rand.NewSource(seed))
}

// Regenerate refills the population with fresh random chromosomes.
func (p *Population) Regenerate() {
	ancestor := p.members[0]

	p.members = p.members[:0]
	for i := 0; i < p.size; i++ {
		c := ancestor.CreateNew()
		c.Evaluate(p.fitnessFunction)
		p.members = append(p.members, c)
	}
}

// Crossover pairs up neighboring members and, with crossover rate
// probability per pair, appends two crossed over offspring.
func (p *Population) Crossover() {
	for i := 1; i < p.size; i += 2 {
		if p.rng.Float64() <= p.crossoverRate {
			c1 := p.members[i-1].Clone()
			c2 := p.members[i].Clone()

			c1.Crossover(c2)

			c1.Evaluate(p.fitnessFunction)
			c2.Evaluate(p.fitnessFunction)

			p.members = append(p.members, c1, c2)
		}
	}
}

// Mutate walks the population and, with mutation rate probability per
// member, appends a mutated clone.
func (p *Population) Mutate() {
	for i := 0; i < p.size; i++ {
		if p.rng.Float64() <= p.mutationRate {
			c := p.members[i].Clone()
			c.Mutate()
			c.Evaluate(p.fitnessFunction)
			p.members = append(p.members, c)
		}
	}
}

// Selection reduces the grown generation back to the population size,
// replacing a random selection portion of it with fresh chromosomes.
func (p *Population) Selection() {
	randomAmount := int(p.randomSelectionPortion * float64(p.size))

	p.members = p.selectionMethod.ApplySelection(p.members, p.size-randomAmount)

	if randomAmount > 0 {
		ancestor := p.members[0]
		for i := 0; i < randomAmount; i++ {
			c := ancestor.CreateNew()
			c.Evaluate(p.fitnessFunction)
			p.members = append(p.members, c)
		}
	}

	p.findBestChromosome()
}

// RunEpoch runs one full life cycle: crossover, mutation, selection and
// an optional shuffle.
func (p *Population) RunEpoch() {
	p.Crossover()
	p.Mutate()
	p.Selection()

	if p.autoShuffling {
		p.Shuffle()
	}
}

// Shuffle randomizes member order. Useful after selection strategies
// that leave the population sorted.
func (p *Population) Shuffle() {
	p.rng.Shuffle(len(p.members), func(i, j int) {
		p.members[i], p.members[j] = p.members[j], p.members[i]
	})
}

// AddChromosome evaluates the chromosome and adds it to the population.
// The chromosome must have the same type and construction parameters as
// the rest of the population.
func (p *Population) AddChromosome(c Chromosome) {
	c.Evaluate(p.fitnessFunction)
	p.members = append(p.members, c)
}

// Migrate exchanges numberOfMigrants chromosomes between the two
// populations. Migrants are picked by migrantsSelector from a copy of
// each population and replace the worst members on the other side.
func (p *Population) Migrate(another *Population, numberOfMigrants int, migrantsSelector SelectionMethod) {
	currentSize := p.size
	anotherSize := another.size

	currentCopy := make([]Chromosome, 0, currentSize)
	for i := 0; i < currentSize; i++ {
		currentCopy = append(currentCopy, p.members[i].Clone())
	}
	anotherCopy := make([]Chromosome, 0, anotherSize)
	for i := 0; i < anotherSize; i++ {
		anotherCopy = append(anotherCopy, another.members[i].Clone())
	}

	currentCopy = migrantsSelector.ApplySelection(currentCopy, numberOfMigrants)
	anotherCopy = migrantsSelector.ApplySelection(anotherCopy, numberOfMigrants)

	// drop the worst members to make room for the migrants
	sortByFitness(p.members)
	sortByFitness(another.members)
	p.members = removeRange(p.members, currentSize-numberOfMigrants, numberOfMigrants)
	another.members = removeRange(another.members, anotherSize-numberOfMigrants, numberOfMigrants)

	p.members = append(p.members, anotherCopy...)
	another.members = append(another.members, currentCopy...)

	p.findBestChromosome()
	another.findBestChromosome()
}

// Resize grows the population with random members or shrinks it with
// the population's selection method.
func (p *Population) Resize(newSize int) error {
	return p.ResizeWith(newSize, p.selectionMethod)
}

// ResizeWith is like Resize but shrinks with the given selection
// method.
func (p *Population) ResizeWith(newSize int, membersSelector SelectionMethod) error {
	if newSize < 2 {
		return fmt.Errorf("too small new population size: %d", newSize)
	}

	if newSize > p.size {
		// the member list may be bigger than size already after
		// crossover or mutation, keep those instead of adding random
		// ones
		toAdd := newSize - len(p.members)
		for i := 0; i < toAdd; i++ {
			c := p.members[0].CreateNew()
			c.Evaluate(p.fitnessFunction)
			p.members = append(p.members, c)
		}
	} else {
		p.members = membersSelector.ApplySelection(p.members, newSize)
	}

	p.size = newSize
	return nil
}

func (p *Population) findBestChromosome() {
	p.best = p.members[0]
	p.fitnessMax = p.best.Fitness()
	p.fitnessSum = p.fitnessMax

	for i := 1; i < p.size && i < len(p.members); i++ {
		fitness := p.members[i].Fitness()

		p.fitnessSum += fitness

		if fitness > p.fitnessMax {
			p.fitnessMax = fitness
			p.best = p.members[i]
		}
	}
	p.fitnessAvg = p.fitnessSum / float64(p.size)
}

func removeRange(members []Chromosome, index, count int) []Chromosome {
	return append(members[:index], members[index+count:]...)
}

// CrossoverRate returns the chance of each neighbor pair crossing over.
func (p *Population) CrossoverRate() float64 { return p.crossoverRate }

// SetCrossoverRate sets the crossover rate, clamped to [0.1, 1].
func (p *Population) SetCrossoverRate(rate float64) {
	p.crossoverRate = min(1.0, max(0.1, rate))
}

// MutationRate returns the chance of each member producing a mutant.
func (p *Population) MutationRate() float64 { return p.mutationRate }

// SetMutationRate sets the mutation rate, clamped to [0.1, 1].
func (p *Population) SetMutationRate(rate float64) {
	p.mutationRate = min(1.0, max(0.1, rate))
}

// RandomSelectionPortion returns the share of each new generation
// filled with fresh random chromosomes.
func (p *Population) RandomSelectionPortion() float64 { return p.randomSelectionPortion }

// SetRandomSelectionPortion sets the random portion, clamped to
// [0, 0.9].
func (p *Population) SetRandomSelectionPortion(portion float64) {
	p.randomSelectionPortion = min(0.9, max(0.0, portion))
}

// AutoShuffling reports whether RunEpoch shuffles after selection.
func (p *Population) AutoShuffling() bool { return p.autoShuffling }

func (p *Population) SetAutoShuffling(v bool) { p.autoShuffling = v }

// SelectionMethod returns the strategy reducing each generation.
func (p *Population) SelectionMethod() SelectionMethod { return p.selectionMethod }

func (p *Population) SetSelectionMethod(m SelectionMethod) { p.selectionMethod = m }

// FitnessFunction returns the function scoring the chromosomes.
func (p *Population) FitnessFunction() FitnessFunc { return p.fitnessFunction }

// SetFitnessFunction installs a new fitness function and rescores the
// whole population with it.
func (p *Population) SetFitnessFunction(f FitnessFunc) {
	p.fitnessFunction = f
	for _, c := range p.members {
		c.Evaluate(f)
	}
	p.findBestChromosome()
}

// FitnessMax returns the best fitness seen during the last selection.
func (p *Population) FitnessMax() float64 { return p.fitnessMax }

// FitnessSum returns the summary fitness from the last selection.
func (p *Population) FitnessSum() float64 { return p.fitnessSum }

// FitnessAvg returns the average fitness from the last selection.
func (p *Population) FitnessAvg() float64 { return p.fitnessAvg }

// BestChromosome returns the fittest member found so far, or nil before
// the first selection.
func (p *Population) BestChromosome() Chromosome { return p.best }

// Size returns the nominal population size the population returns to
// after each selection.
func (p *Population) Size() int { return p.size }

// Len returns the current member count, which exceeds Size in between
// reproduction and selection.
func (p *Population) Len() int { return len(p.members) }

// At returns the member with the given index.
func (p *Population) At(index int) Chromosome { return p.members[index] }
