package fermiprog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Results is the on-disk H-test store, keyed by pulsar name.  Random
// draws accumulate in a list; real measurements are keyed by the
// log10 reference energy so runs at different references coexist.
type Results struct {
	Pulsars map[string]*PulsarResults `yaml:"pulsars"`
}

type PulsarResults struct {
	Random []float64          `yaml:"random,omitempty"`
	Valid  map[string]float64 `yaml:"valid,omitempty"`
	Full   map[string]float64 `yaml:"full,omitempty"`
}

func loadResults(path string) (*Results, error) {
	r := &Results{Pulsars: make(map[string]*PulsarResults)}
	b, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return r, nil
	}
	if err != nil {
		return nil, fmt.Errorf("results store: %v", err)
	}
	if err := yaml.Unmarshal(b, r); err != nil {
		return nil, fmt.Errorf("results store %s: %v", path, err)
	}
	if r.Pulsars == nil {
		r.Pulsars = make(map[string]*PulsarResults)
	}
	return r, nil
}

func (r *Results) write(path string) error {
	b, err := yaml.Marshal(r)
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// storeResult records one H-test value.  Random phase runs append to
// the random list; otherwise the value lands in the valid bucket when a
// lower MJD bound trimmed the data set, the full bucket when not.
func storeResult(path, pulsar string, logeref, h float64,
	random, mjdCut bool) error {
	r, err := loadResults(path)
	if err != nil {
		return err
	}
	p := r.Pulsars[pulsar]
	if p == nil {
		p = &PulsarResults{}
		r.Pulsars[pulsar] = p
	}
	key := fmt.Sprintf("%.2f", logeref)
	switch {
	case random:
		p.Random = append(p.Random, h)
	case mjdCut:
		if p.Valid == nil {
			p.Valid = make(map[string]float64)
		}
		p.Valid[key] = h
	default:
		if p.Full == nil {
			p.Full = make(map[string]float64)
		}
		p.Full[key] = h
	}
	return r.write(path)
}
