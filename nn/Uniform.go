package nn

import (
	"github.com/aiedward/allennlp/common"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// UniformConfig implements a configuration of an initializer that
// draws tensor entries uniformly from the half-open interval [A, B).
type UniformConfig struct {
	A, B float64
	Seed uint64
}

// NewUniform returns a new uniform initializer. A seed of 0 means
// seed from the current time.
func NewUniform(a, b float64, seed uint64) (Initializer, error) {
	if b <= a {
		return nil, common.NewConfigurationError("newuniform: upper bound "+
			"must exceed lower bound, got [%v, %v)", a, b)
	}
	return &UniformConfig{A: a, B: b, Seed: seed}, nil
}

func uniformFromParams(p common.Params) (Initializer, error) {
	a, err := p.PopFloat("a", 0.0)
	if err != nil {
		return nil, err
	}
	b, err := p.PopFloat("b", 1.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewUniform(a, b, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (u *UniformConfig) Type() Type {
	return UniformInit
}

// Apply fills t with draws from the configured distribution.
func (u *UniformConfig) Apply(t *tensor.Dense) error {
	dist := distuv.Uniform{Min: u.A, Max: u.B, Src: source(u.Seed)}
	return fill(t, dist.Rand)
}
