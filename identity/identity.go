// Package identity correlates candidate owner names collected from
// multiple hunting sources into a single most-likely identity.
//
// Every source reports raw, noisy name strings with a static
// reliability weight. The engine normalizes each string, clusters
// near-duplicates by string similarity, scores each cluster from
// source weight, source diversity, and redundancy, and ranks the
// clusters to pick a primary identity.
package identity

import "github.com/codeGROOVE-dev/namehunt/source"

// Observation is one normalized name plus its provenance. Observations
// live for a single correlation pass.
type Observation struct {
	Name   string  `json:"name"`
	Source string  `json:"source"`
	Weight float64 `json:"weight"`
}

// Cluster groups observations judged to refer to the same person.
//
// Clustering is greedy and anchor-based: members were admitted because
// they were similar to the cluster's first member, not to each other,
// so two members may be mutually dissimilar. This matches the behavior
// of the tool this library replaces; ranked output stays comparable.
type Cluster struct {
	Members        []Observation `json:"members"`
	Representative string        `json:"representative_name"`
	Sources        []string      `json:"sources"`
	Confidence     float64       `json:"confidence"`
}

// Result is the terminal output of one correlation pass.
type Result struct {
	Found            bool               `json:"found"`
	PrimaryNames     []string           `json:"primary_names"`
	AllNames         []string           `json:"all_names"`
	ConfidenceScores map[string]float64 `json:"confidence_scores"`
	BestConfidence   float64            `json:"best_confidence"`
	ConsensusScore   float64            `json:"consensus_score"`
	Clusters         []Cluster          `json:"clusters,omitempty"`
}

// Config tunes a correlation pass.
type Config struct {
	// Weights maps source tags to reliability weights. Sources with
	// weight 0 are excluded entirely.
	Weights map[string]float64

	// Threshold is the minimum similarity for two names to share a
	// cluster.
	Threshold float64

	// MaxSourceTypes normalizes the consensus score: a cluster backed
	// by this many distinct sources has full consensus.
	MaxSourceTypes int
}

// DefaultConfig returns the standard correlation settings.
func DefaultConfig() Config {
	return Config{
		Weights:        source.Weights(),
		Threshold:      0.7,
		MaxSourceTypes: 4,
	}
}
