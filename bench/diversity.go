package bench

import "strings"

// AgentDiversity summarizes the variety of action sequences one agent
// produced across its attempts.
type AgentDiversity struct {
	AgentID           string  `json:"agent_id"`
	Attempts          int     `json:"attempts"`
	DistinctSequences int     `json:"distinct_sequences"`
	DiversityRatio    float64 `json:"diversity_ratio"`
	Flagged           bool    `json:"flagged"`
}

// DetectAgentMemorization computes, per agent, the ratio of distinct action
// sequences to total attempts and flags agents below the diversity cutoff.
// Low diversity across many repeated tasks suggests rote memorization
// rather than generalization. Agents with fewer than two attempts and
// entries without an agent_id are never flagged.
func DetectAgentMemorization(entries []DatasetEntry, diversityCutoff float64) map[string]AgentDiversity {
	attempts := make(map[string]int)
	sequences := make(map[string]map[string]struct{})

	for i := range entries {
		e := &entries[i]
		if e.AgentID == "" {
			continue
		}
		attempts[e.AgentID]++
		if len(e.Actions) == 0 {
			// ActionCount-only entries count toward attempts but cannot
			// contribute a distinguishable sequence.
			continue
		}
		set, ok := sequences[e.AgentID]
		if !ok {
			set = make(map[string]struct{})
			sequences[e.AgentID] = set
		}
		set[strings.Join(e.Actions, "\x1f")] = struct{}{}
	}

	out := make(map[string]AgentDiversity, len(attempts))
	for agent, n := range attempts {
		distinct := len(sequences[agent])
		d := AgentDiversity{
			AgentID:           agent,
			Attempts:          n,
			DistinctSequences: distinct,
			DiversityRatio:    float64(distinct) / float64(n),
		}
		d.Flagged = n >= 2 && d.DiversityRatio < diversityCutoff
		out[agent] = d
	}
	return out
}
