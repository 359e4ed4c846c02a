package nn

import (
	"github.com/aiedward/allennlp/common"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// NormalConfig implements a configuration of an initializer that
// draws tensor entries from the normal distribution N(Mean, Std²).
type NormalConfig struct {
	Mean, Std float64
	Seed      uint64
}

// NewNormal returns a new normal initializer. A seed of 0 means seed
// from the current time.
func NewNormal(mean, std float64, seed uint64) (Initializer, error) {
	if std <= 0 {
		return nil, common.NewConfigurationError("newnormal: standard "+
			"deviation must be positive, got %v", std)
	}
	return &NormalConfig{Mean: mean, Std: std, Seed: seed}, nil
}

func normalFromParams(p common.Params) (Initializer, error) {
	mean, err := p.PopFloat("mean", 0.0)
	if err != nil {
		return nil, err
	}
	std, err := p.PopFloat("std", 1.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewNormal(mean, std, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (n *NormalConfig) Type() Type {
	return NormalInit
}

// Apply fills t with draws from the configured distribution.
func (n *NormalConfig) Apply(t *tensor.Dense) error {
	dist := distuv.Normal{Mu: n.Mean, Sigma: n.Std, Src: source(n.Seed)}
	return fill(t, dist.Rand)
}
