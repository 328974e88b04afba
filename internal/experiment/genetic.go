package experiment

import (
	"context"
	"math"

	"neurevo/internal/genetic"
	"neurevo/internal/numeric"
	"neurevo/internal/storage"
)

func init() {
	mustRegister(gaOptimize1D{})
	mustRegister(gaOptimize2D{})
	mustRegister(gaTravelingSalesman{})
}

// evolvePopulation runs epochs and returns the best fitness observed
// after each one.
func evolvePopulation(ctx context.Context, population *genetic.Population, epochs int) ([]float64, error) {
	history := make([]float64, 0, epochs)
	for i := 0; i < epochs; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		population.RunEpoch()
		history = append(history, population.FitnessMax())
	}
	return history, nil
}

// finishFitnessResult is the fitness-maximization counterpart of
// finishResult: convergence means reaching at least the target.
func finishFitnessResult(result *Result, history []float64, targetFitness float64) {
	finishResult(result, history, 0)
	result.Converged = targetFitness > 0 && result.FinalError >= targetFitness
}

func attachPopulation(result *Result, population *genetic.Population) {
	record := storage.PopulationRecord{
		VersionedRecord:        storage.NewVersionedRecord(),
		ID:                     result.RunID,
		Size:                   population.Size(),
		CrossoverRate:          population.CrossoverRate(),
		MutationRate:           population.MutationRate(),
		RandomSelectionPortion: population.RandomSelectionPortion(),
		FitnessMax:             population.FitnessMax(),
		FitnessAvg:             population.FitnessAvg(),
	}
	for i := 0; i < population.Len(); i++ {
		member := population.At(i)
		record.Members = append(record.Members, storage.ChromosomeRecord{
			Genes:   member.String(),
			Fitness: member.Fitness(),
		})
	}
	result.Population = &record
}

type gaOptimize1D struct{}

func (gaOptimize1D) Name() string { return "ga_optimize_1d" }

func (gaOptimize1D) Description() string {
	return "binary chromosome population maximizing a one dimensional function"
}

func (e gaOptimize1D) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 100)
	seed := defaultSeed(opts.Seed, 1)
	populationSize := defaultInt(opts.PopulationSize, 40)

	fitness := genetic.NewOptimizationFunction1D(
		numeric.NewRange(0, 255),
		func(x float64) float64 {
			return math.Cos(x/23)*math.Sin(x/50) + 2
		},
	)

	population, err := genetic.NewPopulation(
		populationSize,
		genetic.NewBinaryChromosome(32),
		fitness,
		genetic.NewEliteSelection(),
	)
	if err != nil {
		return Result{}, err
	}
	population.Seed(seed)

	history, err := evolvePopulation(ctx, population, epochs)
	if err != nil {
		return Result{}, err
	}
	attachPopulation(&result, population)
	finishFitnessResult(&result, history, opts.TargetError)
	return result, nil
}

type gaOptimize2D struct{}

func (gaOptimize2D) Name() string { return "ga_optimize_2d" }

func (gaOptimize2D) Description() string {
	return "binary chromosome population maximizing a two dimensional function"
}

func (e gaOptimize2D) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 100)
	seed := defaultSeed(opts.Seed, 1)
	populationSize := defaultInt(opts.PopulationSize, 40)

	fitness := genetic.NewOptimizationFunction2D(
		numeric.NewRange(-4, 4),
		numeric.NewRange(-4, 4),
		func(x, y float64) float64 {
			return 10 * math.Exp(-(x*x+y*y)/10)
		},
	)

	population, err := genetic.NewPopulation(
		populationSize,
		genetic.NewBinaryChromosome(32),
		fitness,
		genetic.NewEliteSelection(),
	)
	if err != nil {
		return Result{}, err
	}
	population.Seed(seed)

	history, err := evolvePopulation(ctx, population, epochs)
	if err != nil {
		return Result{}, err
	}
	attachPopulation(&result, population)
	finishFitnessResult(&result, history, opts.TargetError)
	return result, nil
}

// routeFitness scores permutation chromosomes by the inverse length of
// the closed tour they describe.
type routeFitness struct {
	cities [][2]float64
}

func (f *routeFitness) Evaluate(c genetic.Chromosome) float64 {
	pc, ok := c.(*genetic.PermutationChromosome)
	if !ok {
		return 0
	}
	return 1 / (f.routeLength(pc) + 1)
}

func (f *routeFitness) routeLength(pc *genetic.PermutationChromosome) float64 {
	order := pc.Value()
	var length float64
	for i := range order {
		from := f.cities[order[i]]
		to := f.cities[order[(i+1)%len(order)]]
		dx := from[0] - to[0]
		dy := from[1] - to[1]
		length += math.Sqrt(dx*dx + dy*dy)
	}
	return length
}

type gaTravelingSalesman struct{}

func (gaTravelingSalesman) Name() string { return "ga_tsp" }

func (gaTravelingSalesman) Description() string {
	return "permutation chromosome population shortening a closed tour over fixed cities"
}

func (e gaTravelingSalesman) Run(ctx context.Context, opts Options) (Result, error) {
	result, err := newResult(e.Name())
	if err != nil {
		return Result{}, err
	}
	epochs := defaultInt(opts.Epochs, 100)
	seed := defaultSeed(opts.Seed, 1)
	populationSize := defaultInt(opts.PopulationSize, 40)

	cities := [][2]float64{
		{0, 0}, {0, 4}, {1, 2}, {3, 1}, {4, 4},
		{5, 0}, {6, 3}, {7, 1}, {8, 4}, {9, 0},
	}
	fitness := &routeFitness{cities: cities}

	population, err := genetic.NewPopulation(
		populationSize,
		genetic.NewPermutationChromosome(len(cities)),
		fitness,
		genetic.NewEliteSelection(),
	)
	if err != nil {
		return Result{}, err
	}
	population.Seed(seed)

	history, err := evolvePopulation(ctx, population, epochs)
	if err != nil {
		return Result{}, err
	}
	attachPopulation(&result, population)
	finishFitnessResult(&result, history, opts.TargetError)
	return result, nil
}
