package bench

import "sort"

// FindUnresolvedTasks returns every task group where no entry across any
// seed or agent ever reaches the success threshold. Such a task may be
// unsolvable or mis-specified. Output is sorted for determinism.
func FindUnresolvedTasks(entries []DatasetEntry, successThreshold float64) []TaskKey {
	best := make(map[TaskKey]float64)
	for i := range entries {
		e := &entries[i]
		key := e.Key()
		if s, ok := best[key]; !ok || e.Score > s {
			best[key] = e.Score
		}
	}

	var out []TaskKey
	for key, score := range best {
		if score < successThreshold {
			out = append(out, key)
		}
	}
	sortTaskKeys(out)
	return out
}

// FindTrivialTasks returns task groups where success is universal (every
// entry scores at or above the threshold) and the minimal action count
// among successful attempts falls below actionFloor. Such a task is
// solvable almost by accident and is worth removing from the benchmark.
func FindTrivialTasks(entries []DatasetEntry, successThreshold float64, actionFloor int) []TaskKey {
	type taskStats struct {
		total      int
		successful int
		minActions int
	}
	groups := make(map[TaskKey]*taskStats)
	for i := range entries {
		e := &entries[i]
		key := e.Key()
		st, ok := groups[key]
		if !ok {
			st = &taskStats{minActions: int(^uint(0) >> 1)}
			groups[key] = st
		}
		st.total++
		if e.Score >= successThreshold {
			st.successful++
			if n := e.EffectiveActionCount(); n < st.minActions {
				st.minActions = n
			}
		}
	}

	var out []TaskKey
	for key, st := range groups {
		if st.successful == st.total && st.total > 0 && st.minActions < actionFloor {
			out = append(out, key)
		}
	}
	sortTaskKeys(out)
	return out
}

func sortTaskKeys(keys []TaskKey) {
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.ProjectID != b.ProjectID {
			return a.ProjectID < b.ProjectID
		}
		if a.UseCase != b.UseCase {
			return a.UseCase < b.UseCase
		}
		return a.TaskID < b.TaskID
	})
}
