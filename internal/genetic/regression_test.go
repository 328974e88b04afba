package genetic

import (
	"math"
	"testing"
)

// literalChromosome carries a fixed polish expression.
type literalChromosome struct {
	expression string
	fitness    float64
}

func (c *literalChromosome) Generate()              {}
func (c *literalChromosome) CreateNew() Chromosome  { return &literalChromosome{expression: c.expression} }
func (c *literalChromosome) Clone() Chromosome      { cp := *c; return &cp }
func (c *literalChromosome) Mutate()                {}
func (c *literalChromosome) Crossover(Chromosome)   {}
func (c *literalChromosome) Evaluate(f FitnessFunc) { c.fitness = f.Evaluate(c) }
func (c *literalChromosome) Fitness() float64       { return c.fitness }
func (c *literalChromosome) String() string         { return c.expression }

func TestSymbolicRegressionFitnessExactMatch(t *testing.T) {
	data := [][2]float64{{1, 2}, {2, 3}, {3, 4}}
	f := NewSymbolicRegressionFitness(data, []float64{1})

	// y = x + 1, matches the data exactly
	got := f.Evaluate(&literalChromosome{expression: "$0 $1 +"})
	if got != 100 {
		t.Fatalf("fitness for exact expression: got %v, want 100", got)
	}
}

func TestSymbolicRegressionFitnessError(t *testing.T) {
	data := [][2]float64{{1, 1}, {2, 2}}
	f := NewSymbolicRegressionFitness(data, nil)

	// y = x + x overshoots by x at each point, total error 3
	got := f.Evaluate(&literalChromosome{expression: "$0 $0 +"})
	if math.Abs(got-25) > 1e-9 {
		t.Fatalf("fitness: got %v, want 25", got)
	}
}

func TestSymbolicRegressionFitnessInvalidExpression(t *testing.T) {
	data := [][2]float64{{1, 1}}
	f := NewSymbolicRegressionFitness(data, nil)

	if got := f.Evaluate(&literalChromosome{expression: "$0 +"}); got != 0 {
		t.Fatalf("fitness for broken expression: got %v, want 0", got)
	}
}

func TestTimeSeriesPredictionFitness(t *testing.T) {
	data := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	f, err := NewTimeSeriesPredictionFitness(data, 2, 1, nil)
	if err != nil {
		t.Fatalf("NewTimeSeriesPredictionFitness: %v", err)
	}

	// predicting the last window sample misses each target by one,
	// giving error 7 over the 7 training samples
	got := f.Evaluate(&literalChromosome{expression: "$0"})
	if math.Abs(got-12.5) > 1e-9 {
		t.Fatalf("fitness: got %v, want 12.5", got)
	}
}

func TestTimeSeriesPredictionFitnessValidation(t *testing.T) {
	data := []float64{1, 2, 3}

	if _, err := NewTimeSeriesPredictionFitness(data, 3, 1, nil); err == nil {
		t.Fatal("expected error for window covering whole series")
	}
	if _, err := NewTimeSeriesPredictionFitness(data, 2, 1, nil); err == nil {
		t.Fatal("expected error when no training samples remain")
	}
}

func TestTimeSeriesPredictionWindowOrder(t *testing.T) {
	// $1 is the sample before the most recent one
	data := []float64{5, 1, 5, 1, 5, 1}
	f, err := NewTimeSeriesPredictionFitness(data, 2, 0, nil)
	if err != nil {
		t.Fatalf("NewTimeSeriesPredictionFitness: %v", err)
	}

	// the series alternates, so the value two steps back predicts
	// the next one exactly
	if got := f.Evaluate(&literalChromosome{expression: "$1"}); got != 100 {
		t.Fatalf("fitness: got %v, want 100", got)
	}
}
