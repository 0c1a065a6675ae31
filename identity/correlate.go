package identity

import (
	"sort"

	"github.com/codeGROOVE-dev/namehunt/source"
)

// Correlate runs the full correlation pass over per-source results:
// normalize, cluster, score, rank. It never fails; if no source
// produced a usable name it returns a well-formed not-found Result.
func Correlate(results map[string]source.Result, cfg Config) Result {
	if cfg.Weights == nil {
		cfg.Weights = source.Weights()
	}
	if cfg.Threshold == 0 {
		cfg.Threshold = 0.7
	}
	if cfg.MaxSourceTypes == 0 {
		cfg.MaxSourceTypes = 4
	}

	observations := collect(results, cfg.Weights)

	out := Result{
		PrimaryNames:     []string{},
		AllNames:         []string{},
		ConfidenceScores: map[string]float64{},
	}
	if len(observations) == 0 {
		return out
	}

	groups := clusterObservations(observations, cfg.Threshold)

	clusters := make([]Cluster, 0, len(groups))
	for _, members := range groups {
		clusters = append(clusters, Cluster{
			Members:        members,
			Representative: members[0].Name,
			Sources:        distinctSources(members),
			Confidence:     clusterConfidence(members),
		})
	}

	// Rank: confidence, then size, then first-seen order (sort is
	// stable, so equal entries keep their discovery order).
	sort.SliceStable(clusters, func(i, j int) bool {
		if clusters[i].Confidence != clusters[j].Confidence {
			return clusters[i].Confidence > clusters[j].Confidence
		}
		return len(clusters[i].Members) > len(clusters[j].Members)
	})

	top := clusters[0]
	out.Found = true
	out.BestConfidence = top.Confidence
	out.PrimaryNames = dedupe(memberNames(top.Members))
	out.ConsensusScore = min(float64(len(top.Sources))/float64(cfg.MaxSourceTypes), 1.0)
	out.Clusters = clusters

	seen := make(map[string]bool)
	for _, c := range clusters {
		for _, m := range c.Members {
			if !seen[m.Name] {
				seen[m.Name] = true
				out.AllNames = append(out.AllNames, m.Name)
			}
			// A name landing in two clusters should not happen at a
			// 0.7 threshold, but if it does the lower-ranked cluster
			// wins the map write, as the original tool behaved.
			out.ConfidenceScores[m.Name] = c.Confidence
		}
	}

	return out
}

// collect normalizes every raw name from every found source and tags
// it with the source's static weight. Weight-0 sources are validation
// only and never contribute observations.
func collect(results map[string]source.Result, weights map[string]float64) []Observation {
	// Map iteration order is random; visit sources by descending
	// weight (ties by tag) so clustering anchors are deterministic.
	tags := make([]string, 0, len(results))
	for tag := range results {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		wi, wj := weights[tags[i]], weights[tags[j]]
		if wi != wj {
			return wi > wj
		}
		return tags[i] < tags[j]
	})

	var observations []Observation
	for _, tag := range tags {
		res := results[tag]
		weight := weights[tag]
		if !res.Found || weight <= 0 {
			continue
		}
		for _, raw := range res.Names {
			cleaned, ok := Normalize(raw)
			if !ok {
				continue
			}
			observations = append(observations, Observation{
				Name:   cleaned,
				Source: tag,
				Weight: weight,
			})
		}
	}
	return observations
}

// clusterObservations greedily partitions observations: each
// unassigned observation anchors a new cluster and absorbs every
// remaining unassigned observation similar enough to the anchor.
// Every observation ends up in exactly one cluster.
func clusterObservations(observations []Observation, threshold float64) [][]Observation {
	var clusters [][]Observation
	assigned := make([]bool, len(observations))

	for i, anchor := range observations {
		if assigned[i] {
			continue
		}
		cluster := []Observation{anchor}
		assigned[i] = true

		for j := i + 1; j < len(observations); j++ {
			if assigned[j] {
				continue
			}
			if Similarity(anchor.Name, observations[j].Name) >= threshold {
				cluster = append(cluster, observations[j])
				assigned[j] = true
			}
		}
		clusters = append(clusters, cluster)
	}

	return clusters
}

// clusterConfidence scores a cluster from its members' source weights
// plus capped bonuses for source diversity and repeated sightings.
// Redundancy alone cannot manufacture certainty: the occurrence bonus
// tops out at 0.2 and the diversity bonus at 0.3.
func clusterConfidence(members []Observation) float64 {
	if len(members) == 0 {
		return 0.0
	}

	var sum float64
	for _, m := range members {
		sum += m.Weight
	}
	base := sum / float64(len(members))

	diversity := min(0.1*float64(len(distinctSources(members))), 0.3)
	occurrence := min(0.05*float64(len(members)-1), 0.2)

	return min(base+diversity+occurrence, 1.0)
}

func distinctSources(members []Observation) []string {
	seen := make(map[string]bool)
	var sources []string
	for _, m := range members {
		if !seen[m.Source] {
			seen[m.Source] = true
			sources = append(sources, m.Source)
		}
	}
	sort.Strings(sources)
	return sources
}

func memberNames(members []Observation) []string {
	names := make([]string, 0, len(members))
	for _, m := range members {
		names = append(names, m.Name)
	}
	return names
}

func dedupe(names []string) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
