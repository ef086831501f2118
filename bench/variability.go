package bench

// SeedVariability captures how sensitive a group's outcomes are to the
// randomization seed controlling dynamic content.
type SeedVariability struct {
	ProjectID string  `json:"project_id"`
	Basis     string  `json:"basis"`
	SeedCount int     `json:"seed_count"`
	Variance  float64 `json:"variance"`

	// SuspiciouslyDeterministic is set when the group spans multiple seeds
	// yet its per-seed success rates barely vary. This is a correctness
	// signal for the benchmark generator, not the agent: a nominally
	// dynamic task whose outcome ignores the seed may not be dynamic at
	// all.
	SuspiciouslyDeterministic bool `json:"suspiciously_deterministic"`
}

// DefaultVariabilityCutoff is the variance below which a multi-seed group
// is flagged as suspiciously deterministic.
const DefaultVariabilityCutoff = 0.02

// ComputeSeedVariability groups entries by (project, use case) and computes
// the population variance of the per-seed success rates across distinct
// seeds.
func ComputeSeedVariability(entries []DatasetEntry, successThreshold float64, cutoff float64) map[BasisKey]SeedVariability {
	type seedKey struct {
		basis BasisKey
		seed  int64
	}
	total := make(map[seedKey]int)
	succeeded := make(map[seedKey]int)
	seeds := make(map[BasisKey][]int64)

	for i := range entries {
		e := &entries[i]
		key := seedKey{basis: BasisKey{ProjectID: e.ProjectID, Basis: e.UseCase}, seed: e.Seed}
		if total[key] == 0 {
			seeds[key.basis] = append(seeds[key.basis], e.Seed)
		}
		total[key]++
		if e.Score >= successThreshold {
			succeeded[key]++
		}
	}

	out := make(map[BasisKey]SeedVariability, len(seeds))
	for basis, seedList := range seeds {
		rates := make([]float64, 0, len(seedList))
		for _, seed := range seedList {
			key := seedKey{basis: basis, seed: seed}
			rates = append(rates, float64(succeeded[key])/float64(total[key]))
		}
		v := SeedVariability{
			ProjectID: basis.ProjectID,
			Basis:     basis.Basis,
			SeedCount: len(seedList),
			Variance:  PopVariance(rates),
		}
		v.SuspiciouslyDeterministic = v.SeedCount >= 2 && v.Variance < cutoff
		out[basis] = v
	}
	return out
}
