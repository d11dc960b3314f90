package layout

import "math"

// Fitness weights. They sum to 1.0; each term is clamped to [0,1] before
// weighting, so the final score needs only an upper clamp.
const (
	weightUtilization  = 0.30
	weightCorridor     = 0.20
	weightAccess       = 0.25
	weightDistribution = 0.15
	weightRegularity   = 0.10

	// alignmentTolerance is the coordinate slack within which two units
	// count as axis-aligned for the regularity term.
	alignmentTolerance = 2.0
)

// evaluateFitness scores a layout in [0,1]. An empty layout scores 0
// unconditionally; every ratio term would otherwise be undefined.
func (g *generator) evaluateFitness(l Layout) float64 {
	if len(l.Ilots) == 0 {
		return 0
	}

	available := g.availableArea()

	// Space utilization: unit area over available area.
	utilization := 0.0
	if available > 0 {
		utilization = l.totalIlotArea() / available
	}

	// Corridor efficiency: less floor spent on circulation is better.
	corridorRatio := 0.0
	if available > 0 {
		totalCorridorArea := 0.0
		for _, c := range l.Corridors {
			totalCorridorArea += c.Rect.Area()
		}
		corridorRatio = totalCorridorArea / available
	}
	corridorScore := math.Max(0, 1-corridorRatio*2)

	// Accessibility: fraction of units reachable from some corridor.
	reachable := make(map[string]struct{})
	for _, c := range l.Corridors {
		for _, id := range c.ConnectedIlots {
			reachable[id] = struct{}{}
		}
	}
	accessibility := float64(len(reachable)) / float64(len(l.Ilots))

	score := utilization*weightUtilization +
		corridorScore*weightCorridor +
		accessibility*weightAccess +
		g.sizeDistributionScore(l.Ilots)*weightDistribution +
		regularityScore(l.Ilots)*weightRegularity

	return math.Min(1.0, score)
}

// sizeDistributionScore measures how closely the placed units match the
// profile's target mix. Each bucket contributes max(0, 1 - 2*|actual -
// target|); units whose area falls in no bucket are excluded from the
// denominator rather than penalized. No distribution at all scores 1.
func (g *generator) sizeDistributionScore(ilots []Ilot) float64 {
	buckets := g.profile.SizeDistribution
	if len(buckets) == 0 {
		return 1.0
	}

	counts := make([]int, len(buckets))
	matched := 0
	for _, il := range ilots {
		for bi, b := range buckets {
			if b.MinSize <= il.Area && il.Area <= b.MaxSize {
				counts[bi]++
				matched++
				break
			}
		}
	}

	score := 0.0
	for bi, b := range buckets {
		actual := 0.0
		if matched > 0 {
			actual = float64(counts[bi]) / float64(matched)
		}
		target := b.Percentage / 100
		score += math.Max(0, 1-2*math.Abs(actual-target))
	}
	return score / float64(len(buckets))
}

// regularityScore is the fraction of unit pairs that share an x or y
// coordinate within the alignment tolerance. Fewer than two units is
// trivially regular.
func regularityScore(ilots []Ilot) float64 {
	if len(ilots) < 2 {
		return 1.0
	}

	aligned := 0
	for i := 0; i < len(ilots); i++ {
		for j := i + 1; j < len(ilots); j++ {
			if math.Abs(ilots[i].X-ilots[j].X) < alignmentTolerance ||
				math.Abs(ilots[i].Y-ilots[j].Y) < alignmentTolerance {
				aligned++
			}
		}
	}

	pairs := len(ilots) * (len(ilots) - 1) / 2
	return math.Min(1.0, float64(aligned)/float64(pairs))
}
