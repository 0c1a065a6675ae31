package source

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Weights maps a source tag to its static reliability weight in (0,1].
// A weight of 0 marks a validation-only source that never yields names;
// the correlation engine skips those entirely.
func Weights() map[string]float64 {
	return map[string]float64{
		"twilio":           0.9,  // official carrier lookup
		"whitepages":       0.85, // paid people-search API
		"truepeoplesearch": 0.8,  // free people-search scrape
		"fastpeople":       0.7,  // free people-search scrape
		"numverify":        0.0,  // validation only, no names
	}
}

// SequenceThresholds maps a source tag to the confidence at which the
// sequential strategy stops early after that source fires. Sources
// missing from the map use DefaultThreshold.
func SequenceThresholds() map[string]float64 {
	return map[string]float64{
		"twilio":           0.8,
		"whitepages":       0.7,
		"numverify":        0.6,
		"truepeoplesearch": 0.6,
		"fastpeople":       0.5,
	}
}

// DefaultThreshold is the early-termination confidence for sources
// without an explicit entry in SequenceThresholds.
const DefaultThreshold = 0.6

// WeightFile is the on-disk form of the weight table, so new sources
// can be integrated without code changes.
type WeightFile struct {
	Weights        map[string]float64 `yaml:"weights"`
	Thresholds     map[string]float64 `yaml:"thresholds,omitempty"`
	MaxSourceTypes int                `yaml:"max_source_types,omitempty"`
}

// LoadWeights reads a YAML weight file. Entries missing from the file
// fall back to the built-in table; unknown sources are kept so that
// external adapters can register their own weights.
func LoadWeights(path string) (WeightFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return WeightFile{}, fmt.Errorf("read weight file: %w", err)
	}

	var wf WeightFile
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return WeightFile{}, fmt.Errorf("parse weight file %s: %w", path, err)
	}

	merged := Weights()
	for tag, w := range wf.Weights {
		if w < 0 || w > 1 {
			return WeightFile{}, fmt.Errorf("weight for %q out of range: %v", tag, w)
		}
		merged[tag] = w
	}
	wf.Weights = merged

	thresholds := SequenceThresholds()
	for tag, th := range wf.Thresholds {
		thresholds[tag] = th
	}
	wf.Thresholds = thresholds

	return wf, nil
}
