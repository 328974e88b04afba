// Package random provides seedable random number generator strategies used to
// drive chromosome generation, mutation and weight initialization. Each
// generator owns its own source, so independent streams stay reproducible.
package random

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"neurevo/internal/numeric"
)

// Generator produces a stream of random float32 values with a known
// distribution.
type Generator interface {
	// Next returns the next random value of the stream.
	Next() float32
	// Mean returns the mean of the distribution.
	Mean() float32
	// Variance returns the variance of the distribution.
	Variance() float32
	// SetSeed reinitializes the stream with the given seed.
	SetSeed(seed int64)
}

// UniformOne generates values uniformly distributed in [0, 1).
type UniformOne struct {
	rng *rand.Rand
}

// NewUniformOne returns a process-seeded uniform [0, 1) generator.
func NewUniformOne() *UniformOne {
	return &UniformOne{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewUniformOneSeeded returns a uniform [0, 1) generator with a fixed seed.
func NewUniformOneSeeded(seed int64) *UniformOne {
	return &UniformOne{rng: rand.New(rand.NewSource(seed))}
}

func (g *UniformOne) Next() float32 {
	return float32(g.rng.Float64())
}

func (g *UniformOne) Mean() float32 {
	return 0.5
}

func (g *UniformOne) Variance() float32 {
	return 1.0 / 12
}

func (g *UniformOne) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Uniform generates values uniformly distributed in a configured range.
type Uniform struct {
	rand   *UniformOne
	min    float32
	length float32
}

// NewUniform returns a process-seeded generator uniform over r.
func NewUniform(r numeric.Range) *Uniform {
	return &Uniform{rand: NewUniformOne(), min: r.Min, length: r.Length()}
}

// NewUniformSeeded returns a generator uniform over r with a fixed seed.
func NewUniformSeeded(r numeric.Range, seed int64) *Uniform {
	return &Uniform{rand: NewUniformOneSeeded(seed), min: r.Min, length: r.Length()}
}

func (g *Uniform) Next() float32 {
	return g.rand.Next()*g.length + g.min
}

func (g *Uniform) Mean() float32 {
	return (g.min + g.min + g.length) / 2
}

func (g *Uniform) Variance() float32 {
	return g.length * g.length / 12
}

func (g *Uniform) SetSeed(seed int64) {
	g.rand.SetSeed(seed)
}

// Exponential generates exponentially distributed values with a configured
// rate parameter.
type Exponential struct {
	rand *UniformOne
	rate float32
}

// NewExponential returns a process-seeded exponential generator. The rate
// must be greater than zero.
func NewExponential(rate float32) (*Exponential, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("rate must be greater than zero: %v", rate)
	}
	return &Exponential{rand: NewUniformOne(), rate: rate}, nil
}

// NewExponentialSeeded returns an exponential generator with a fixed seed.
func NewExponentialSeeded(rate float32, seed int64) (*Exponential, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("rate must be greater than zero: %v", rate)
	}
	return &Exponential{rand: NewUniformOneSeeded(seed), rate: rate}, nil
}

func (g *Exponential) Next() float32 {
	return -float32(math.Log(float64(g.rand.Next()))) / g.rate
}

func (g *Exponential) Mean() float32 {
	return 1.0 / g.rate
}

func (g *Exponential) Variance() float32 {
	return 1.0 / (g.rate * g.rate)
}

func (g *Exponential) SetSeed(seed int64) {
	g.rand.SetSeed(seed)
}

// Rate returns the configured rate parameter.
func (g *Exponential) Rate() float32 {
	return g.rate
}
