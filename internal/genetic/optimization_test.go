package genetic

import (
	"math"
	"testing"

	"neurevo/internal/numeric"
)

func TestOptimizationFunction1DTranslate(t *testing.T) {
	f := NewOptimizationFunction1D(numeric.NewRange(0, 255), func(x float64) float64 { return x })

	c := NewBinaryChromosome(32)
	c.value = 0
	if got := f.Translate(c); got != 0 {
		t.Fatalf("translate of zero value: got %v, want 0", got)
	}

	c.value = c.MaxValue()
	if got := f.Translate(c); math.Abs(got-255) > 1e-9 {
		t.Fatalf("translate of max value: got %v, want 255", got)
	}
}

func TestOptimizationFunction1DModes(t *testing.T) {
	f := NewOptimizationFunction1D(numeric.NewRange(0, 10), func(x float64) float64 { return x + 2 })

	c := NewBinaryChromosome(16)
	c.value = c.MaxValue()

	maximized := f.Evaluate(c)
	if math.Abs(maximized-12) > 1e-9 {
		t.Fatalf("maximization fitness: got %v, want 12", maximized)
	}

	f.Mode = Minimization
	minimized := f.Evaluate(c)
	if math.Abs(minimized-1.0/12) > 1e-9 {
		t.Fatalf("minimization fitness: got %v, want %v", minimized, 1.0/12)
	}
}

func TestOptimizationFunction2DTranslate(t *testing.T) {
	f := NewOptimizationFunction2D(numeric.NewRange(-4, 4), numeric.NewRange(-4, 4),
		func(x, y float64) float64 { return x * y })

	c := NewBinaryChromosome(32)
	c.value = 0
	x, y := f.Translate(c)
	if math.Abs(x+4) > 1e-6 || math.Abs(y+4) > 1e-6 {
		t.Fatalf("translate of zero value: got (%v, %v), want (-4, -4)", x, y)
	}
}

func TestOptimizationFunctionRejectsOtherChromosomes(t *testing.T) {
	f1 := NewOptimizationFunction1D(numeric.NewRange(0, 1), func(x float64) float64 { return 1 })
	f2 := NewOptimizationFunction2D(numeric.NewRange(0, 1), numeric.NewRange(0, 1),
		func(x, y float64) float64 { return 1 })

	c := NewShortArrayChromosome(4)
	if got := f1.Evaluate(c); got != 0 {
		t.Fatalf("1d fitness for foreign chromosome: got %v, want 0", got)
	}
	if got := f2.Evaluate(c); got != 0 {
		t.Fatalf("2d fitness for foreign chromosome: got %v, want 0", got)
	}
}

func TestOptimizationConvergence(t *testing.T) {
	f := NewOptimizationFunction1D(numeric.NewRange(0, 255), func(x float64) float64 {
		return math.Cos(x/23)*math.Sin(x/50) + 2
	})

	p, err := NewPopulation(40, NewBinaryChromosome(32), f, NewEliteSelection())
	if err != nil {
		t.Fatalf("NewPopulation: %v", err)
	}
	p.Seed(77)
	p.Selection()

	start := p.FitnessMax()
	for i := 0; i < 50; i++ {
		p.RunEpoch()
	}

	if p.FitnessMax() < start {
		t.Fatalf("best fitness degraded: %v -> %v", start, p.FitnessMax())
	}
	if p.BestChromosome() == nil {
		t.Fatal("no best chromosome after evolution")
	}
}
