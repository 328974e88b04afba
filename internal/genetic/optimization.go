package genetic

import (
	"math"

	"neurevo/internal/numeric"
)

// OptimizationMode selects which extremum a function optimization
// fitness searches for.
type OptimizationMode int

const (
	// Maximization searches for the function's maximum value.
	Maximization OptimizationMode = iota
	// Minimization searches for the function's minimum value.
	Minimization
)

// OptimizationFunction1D scores binary chromosomes for one dimensional
// function optimization. The chromosome's numerical value is mapped
// onto the optimization range and fed to Func, which should stay
// greater than zero over the range.
type OptimizationFunction1D struct {
	// Range is the function's input range to search.
	Range numeric.Range
	// Mode selects the extremum to search for.
	Mode OptimizationMode
	// Func is the function to optimize.
	Func func(x float64) float64
}

// NewOptimizationFunction1D creates a maximization fitness for the
// given function over the given range.
func NewOptimizationFunction1D(r numeric.Range, f func(x float64) float64) *OptimizationFunction1D {
	return &OptimizationFunction1D{Range: r, Func: f}
}

func (o *OptimizationFunction1D) Evaluate(c Chromosome) float64 {
	bc, ok := c.(*BinaryChromosome)
	if !ok {
		return 0
	}
	value := o.Func(o.Translate(bc))
	if o.Mode == Minimization {
		return 1 / value
	}
	return value
}

// Translate maps the chromosome's value onto the optimization range.
func (o *OptimizationFunction1D) Translate(c *BinaryChromosome) float64 {
	val := float64(c.Value())
	max := float64(c.MaxValue())

	return val*float64(o.Range.Length())/max + float64(o.Range.Min)
}

// OptimizationFunction2D scores binary chromosomes for two dimensional
// function optimization. The lower half of the chromosome's bits
// encodes x and the upper half y.
type OptimizationFunction2D struct {
	// RangeX and RangeY bound the search area.
	RangeX numeric.Range
	RangeY numeric.Range
	// Mode selects the extremum to search for.
	Mode OptimizationMode
	// Func is the function to optimize.
	Func func(x, y float64) float64
}

// NewOptimizationFunction2D creates a maximization fitness for the
// given function over the given ranges.
func NewOptimizationFunction2D(rangeX, rangeY numeric.Range, f func(x, y float64) float64) *OptimizationFunction2D {
	return &OptimizationFunction2D{RangeX: rangeX, RangeY: rangeY, Func: f}
}

func (o *OptimizationFunction2D) Evaluate(c Chromosome) float64 {
	bc, ok := c.(*BinaryChromosome)
	if !ok {
		return 0
	}
	x, y := o.Translate(bc)
	value := o.Func(x, y)
	if o.Mode == Minimization {
		return 1 / value
	}
	return value
}

// Translate splits the chromosome's bits into the x and y components
// and maps them onto the search ranges.
func (o *OptimizationFunction2D) Translate(c *BinaryChromosome) (x, y float64) {
	val := c.Value()
	length := c.Length()

	xLength := length / 2
	yLength := length - xLength
	xMax := uint64(math.MaxInt64) >> (64 - xLength)
	yMax := uint64(math.MaxInt64) >> (64 - yLength)
	xPart := float64(val & xMax)
	yPart := float64(val >> xLength)

	x = xPart*float64(o.RangeX.Length())/float64(xMax) + float64(o.RangeX.Min)
	y = yPart*float64(o.RangeY.Length())/float64(yMax) + float64(o.RangeY.Min)
	return x, y
}
