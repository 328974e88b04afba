package genetic

import (
	"math/rand"
	"sort"
)

// SelectionMethod reduces a grown generation back to the requested
// size, returning the members of the new generation.
type SelectionMethod interface {
	ApplySelection(chromosomes []Chromosome, size int) []Chromosome
}

// EliteSelection keeps the fittest chromosomes and nothing else. The
// returned generation is ordered by descending fitness.
type EliteSelection struct{}

func NewEliteSelection() *EliteSelection { return &EliteSelection{} }

func (s *EliteSelection) ApplySelection(chromosomes []Chromosome, size int) []Chromosome {
	sortByFitness(chromosomes)
	if size > len(chromosomes) {
		size = len(chromosomes)
	}
	return chromosomes[:size]
}

// RouletteWheelSelection selects chromosomes with probability
// proportional to their share of the generation's total fitness. A
// chromosome may be selected more than once.
type RouletteWheelSelection struct {
	rng *rand.Rand
}

func NewRouletteWheelSelection() *RouletteWheelSelection {
	return NewRouletteWheelSelectionRand(newRand())
}

func NewRouletteWheelSelectionRand(rng *rand.Rand) *RouletteWheelSelection {
	return &RouletteWheelSelection{rng: rng}
}

func (s *RouletteWheelSelection) ApplySelection(chromosomes []Chromosome, size int) []Chromosome {
	var fitnessSum float64
	for _, c := range chromosomes {
		fitnessSum += c.Fitness()
	}

	// wheel ranges, one portion per chromosome
	rangeMax := make([]float64, len(chromosomes))
	var acc float64
	for i, c := range chromosomes {
		acc += c.Fitness() / fitnessSum
		rangeMax[i] = acc
	}
	// rounding must not leave a gap at the top of the wheel
	if len(rangeMax) > 0 {
		rangeMax[len(rangeMax)-1] = 1
	}

	newGeneration := make([]Chromosome, 0, size)
	for j := 0; j < size; j++ {
		wheelValue := s.rng.Float64()
		for i, m := range rangeMax {
			if wheelValue <= m {
				newGeneration = append(newGeneration, chromosomes[i].Clone())
				break
			}
		}
	}
	return newGeneration
}

// RankSelection selects chromosomes with probability proportional to
// their fitness rank rather than the fitness value itself, which keeps
// selection pressure stable when fitness values are badly scaled.
type RankSelection struct {
	rng *rand.Rand
}

func NewRankSelection() *RankSelection {
	return NewRankSelectionRand(newRand())
}

func NewRankSelectionRand(rng *rand.Rand) *RankSelection {
	return &RankSelection{rng: rng}
}

func (s *RankSelection) ApplySelection(chromosomes []Chromosome, size int) []Chromosome {
	sortByFitness(chromosomes)

	// wheel ranges shrink linearly from best to worst
	currentSize := len(chromosomes)
	ranges := float64(currentSize*(currentSize+1)) / 2
	rangeMax := make([]float64, currentSize)
	var acc float64
	for i, n := 0, currentSize; i < currentSize; i, n = i+1, n-1 {
		acc += float64(n) / ranges
		rangeMax[i] = acc
	}
	// rounding must not leave a gap at the top of the wheel
	if len(rangeMax) > 0 {
		rangeMax[len(rangeMax)-1] = 1
	}

	newGeneration := make([]Chromosome, 0, size)
	for j := 0; j < size; j++ {
		wheelValue := s.rng.Float64()
		for i, m := range rangeMax {
			if wheelValue <= m {
				newGeneration = append(newGeneration, chromosomes[i].Clone())
				break
			}
		}
	}
	return newGeneration
}

func sortByFitness(chromosomes []Chromosome) {
	sort.SliceStable(chromosomes, func(i, j int) bool {
		return chromosomes[i].Fitness() > chromosomes[j].Fitness()
	})
}
