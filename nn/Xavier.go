package nn

import (
	"math"

	"github.com/aiedward/allennlp/common"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// XavierNormalConfig implements a configuration of the Xavier
// (Glorot) Normal initialization algorithm. Entries are drawn from
// N(0, std²) where std = Gain * sqrt(2 / (fanIn + fanOut)).
type XavierNormalConfig struct {
	Gain float64
	Seed uint64
}

// NewXavierNormal returns a new Xavier Normal initializer
func NewXavierNormal(gain float64, seed uint64) (Initializer, error) {
	if gain <= 0 {
		return nil, common.NewConfigurationError("newxaviernormal: gain "+
			"must be positive, got %v", gain)
	}
	return &XavierNormalConfig{Gain: gain, Seed: seed}, nil
}

func xavierNormalFromParams(p common.Params) (Initializer, error) {
	gain, err := p.PopFloat("gain", 1.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewXavierNormal(gain, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (x *XavierNormalConfig) Type() Type {
	return XavierNormalInit
}

// Apply fills t with draws from the Xavier Normal distribution for
// t's shape.
func (x *XavierNormalConfig) Apply(t *tensor.Dense) error {
	fanIn, fanOut, err := fans(t)
	if err != nil {
		return err
	}
	std := x.Gain * math.Sqrt(2.0/float64(fanIn+fanOut))
	dist := distuv.Normal{Mu: 0.0, Sigma: std, Src: source(x.Seed)}
	return fill(t, dist.Rand)
}

// XavierUniformConfig implements a configuration of the Xavier
// (Glorot) Uniform initialization algorithm. Entries are drawn
// uniformly from [-bound, bound] where
// bound = Gain * sqrt(6 / (fanIn + fanOut)).
type XavierUniformConfig struct {
	Gain float64
	Seed uint64
}

// NewXavierUniform returns a new Xavier Uniform initializer
func NewXavierUniform(gain float64, seed uint64) (Initializer, error) {
	if gain <= 0 {
		return nil, common.NewConfigurationError("newxavieruniform: gain "+
			"must be positive, got %v", gain)
	}
	return &XavierUniformConfig{Gain: gain, Seed: seed}, nil
}

func xavierUniformFromParams(p common.Params) (Initializer, error) {
	gain, err := p.PopFloat("gain", 1.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewXavierUniform(gain, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (x *XavierUniformConfig) Type() Type {
	return XavierUniformInit
}

// Apply fills t with draws from the Xavier Uniform distribution for
// t's shape.
func (x *XavierUniformConfig) Apply(t *tensor.Dense) error {
	fanIn, fanOut, err := fans(t)
	if err != nil {
		return err
	}
	bound := x.Gain * math.Sqrt(6.0/float64(fanIn+fanOut))
	dist := distuv.Uniform{Min: -bound, Max: bound, Src: source(x.Seed)}
	return fill(t, dist.Rand)
}
