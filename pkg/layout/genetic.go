package layout

import (
	"context"
	"runtime"
	"sort"
	"strconv"
	"sync"
)

// Genetic search parameters. The budget is fixed: there is no early
// convergence stopping, only context cancellation at generation boundaries.
const (
	populationSize = 50
	generations    = 100
	mutationRate   = 0.1
	tournamentSize = 5
	mutationOffset = 5.0

	// eliteFraction of each generation survives unchanged.
	eliteFraction = 5 // top 1/5 = 20%
)

// geneticSearch evolves a population of random layouts under selection,
// crossover, and mutation, and returns the best layout ever observed with
// its score and the requested unit count.
//
// Best-ever tracking is updated only between generations, so cancelling the
// context mid-run still yields a consistent result: whatever was best at
// the last completed generation boundary.
func (g *generator) geneticSearch(ctx context.Context) (Layout, float64, int) {
	requested, _ := g.targetUnitCounts()

	population := make([]Layout, populationSize)
	for i := range population {
		population[i], _ = g.createRandomLayout()
	}

	var best Layout
	bestScore := 0.0

	for gen := 0; gen < generations; gen++ {
		if ctx.Err() != nil {
			g.logger.Debug("genetic search cancelled", "generation", gen, "best", bestScore)
			break
		}

		scores := g.evaluatePopulation(population)

		order := make([]int, len(population))
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(a, b int) bool {
			return scores[order[a]] > scores[order[b]]
		})

		// Elitism boundary: best-ever only ever moves up.
		if gen == 0 || scores[order[0]] > bestScore {
			bestScore = scores[order[0]]
			best = population[order[0]].clone()
		}

		if g.onGeneration != nil {
			g.onGeneration(gen, bestScore)
		}
		if gen%10 == 0 {
			g.logger.Debug("generation", "n", gen, "best", bestScore, "top", scores[order[0]])
		}

		next := make([]Layout, 0, populationSize)
		for i := 0; i < populationSize/eliteFraction; i++ {
			next = append(next, population[order[i]].clone())
		}

		for len(next) < populationSize {
			parent1 := g.tournamentSelect(population, scores)
			parent2 := g.tournamentSelect(population, scores)
			child := g.crossover(parent1, parent2)

			if g.rng.Float64() < mutationRate {
				child = g.mutate(child)
			}
			next = append(next, child)
		}

		population = next
	}

	return best, bestScore, requested
}

// evaluatePopulation scores every individual. Layouts share no mutable
// state, so fitness runs on a bounded worker pool; only ranking and
// reproduction are sequential.
func (g *generator) evaluatePopulation(population []Layout) []float64 {
	scores := make([]float64, len(population))

	workers := runtime.GOMAXPROCS(0)
	if workers > len(population) {
		workers = len(population)
	}

	var wg sync.WaitGroup
	jobs := make(chan int)
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scores[i] = g.evaluateFitness(population[i])
			}
		}()
	}
	for i := range population {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return scores
}

// tournamentSelect samples tournamentSize individuals without replacement
// and returns the highest scoring one.
func (g *generator) tournamentSelect(population []Layout, scores []float64) Layout {
	k := tournamentSize
	if k > len(population) {
		k = len(population)
	}

	perm := g.rng.Perm(len(population))
	bestIdx := perm[0]
	for _, idx := range perm[1:k] {
		if scores[idx] > scores[bestIdx] {
			bestIdx = idx
		}
	}
	return population[bestIdx]
}

// crossover pools the units of both parents and keeps each one only if it
// does not intersect a unit kept earlier. The walk order is always parent A
// then parent B, so the operator is deterministic for a given pair; the
// arrival-order bias this introduces is intentional. Kept units are
// renumbered so ids stay unique within the child, and corridors are
// regenerated for the kept set.
func (g *generator) crossover(a, b Layout) Layout {
	pool := make([]Ilot, 0, len(a.Ilots)+len(b.Ilots))
	pool = append(pool, a.Ilots...)
	pool = append(pool, b.Ilots...)

	var kept []Ilot
	for _, candidate := range pool {
		overlaps := false
		for _, existing := range kept {
			if candidate.Rect.Intersects(existing.Rect) {
				overlaps = true
				break
			}
		}
		if !overlaps {
			candidate.ID = strconv.Itoa(len(kept) + 1)
			kept = append(kept, candidate)
		}
	}

	return Layout{
		Ilots:     kept,
		Corridors: g.generateCorridors(kept),
	}
}

// mutate perturbs one unit's position by a uniform offset in
// [-mutationOffset, +mutationOffset] on each axis, keeping its size. The
// perturbation is accepted only if the moved unit remains admissible
// against the other units and the zones; otherwise the unit is left where
// it was. Corridors are regenerated either way.
func (g *generator) mutate(l Layout) Layout {
	ilots := make([]Ilot, len(l.Ilots))
	copy(ilots, l.Ilots)

	if len(ilots) > 0 {
		idx := g.rng.Intn(len(ilots))

		dx := (g.rng.Float64()*2 - 1) * mutationOffset
		dy := (g.rng.Float64()*2 - 1) * mutationOffset
		moved := ilots[idx].Rect.Translate(dx, dy)

		others := make([]Ilot, 0, len(ilots)-1)
		others = append(others, ilots[:idx]...)
		others = append(others, ilots[idx+1:]...)

		if g.isValidPlacement(moved, others) {
			ilots[idx].Rect = moved
		}
	}

	return Layout{
		Ilots:     ilots,
		Corridors: g.generateCorridors(ilots),
	}
}
