package nn

import (
	"math"

	"github.com/aiedward/allennlp/common"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// KaimingNormalConfig implements a configuration of the Kaiming (He)
// Normal initialization algorithm for rectifier networks. Entries are
// drawn from N(0, std²) where std = sqrt(2 / ((1 + A²) * fan)) and A
// is the negative slope of the leaky rectifier that follows the
// layer. Mode selects whether fan in or fan out is used.
type KaimingNormalConfig struct {
	A    float64
	Mode string
	Seed uint64
}

// NewKaimingNormal returns a new Kaiming Normal initializer
func NewKaimingNormal(a float64, mode string, seed uint64) (Initializer,
	error) {
	if err := checkFanMode(mode); err != nil {
		return nil, err
	}
	return &KaimingNormalConfig{A: a, Mode: mode, Seed: seed}, nil
}

func kaimingNormalFromParams(p common.Params) (Initializer, error) {
	a, err := p.PopFloat("a", 0.0)
	if err != nil {
		return nil, err
	}
	mode, err := p.PopString("mode", FanIn)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewKaimingNormal(a, mode, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (k *KaimingNormalConfig) Type() Type {
	return KaimingNormalInit
}

// Apply fills t with draws from the Kaiming Normal distribution for
// t's shape.
func (k *KaimingNormalConfig) Apply(t *tensor.Dense) error {
	fan, err := selectFan(t, k.Mode)
	if err != nil {
		return err
	}
	std := math.Sqrt(2.0 / ((1.0 + k.A*k.A) * float64(fan)))
	dist := distuv.Normal{Mu: 0.0, Sigma: std, Src: source(k.Seed)}
	return fill(t, dist.Rand)
}

// KaimingUniformConfig implements a configuration of the Kaiming (He)
// Uniform initialization algorithm. Entries are drawn uniformly from
// [-bound, bound] where bound = sqrt(6 / ((1 + A²) * fan)).
type KaimingUniformConfig struct {
	A    float64
	Mode string
	Seed uint64
}

// NewKaimingUniform returns a new Kaiming Uniform initializer
func NewKaimingUniform(a float64, mode string, seed uint64) (Initializer,
	error) {
	if err := checkFanMode(mode); err != nil {
		return nil, err
	}
	return &KaimingUniformConfig{A: a, Mode: mode, Seed: seed}, nil
}

func kaimingUniformFromParams(p common.Params) (Initializer, error) {
	a, err := p.PopFloat("a", 0.0)
	if err != nil {
		return nil, err
	}
	mode, err := p.PopString("mode", FanIn)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewKaimingUniform(a, mode, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (k *KaimingUniformConfig) Type() Type {
	return KaimingUniformInit
}

// Apply fills t with draws from the Kaiming Uniform distribution for
// t's shape.
func (k *KaimingUniformConfig) Apply(t *tensor.Dense) error {
	fan, err := selectFan(t, k.Mode)
	if err != nil {
		return err
	}
	bound := math.Sqrt(6.0 / ((1.0 + k.A*k.A) * float64(fan)))
	dist := distuv.Uniform{Min: -bound, Max: bound, Src: source(k.Seed)}
	return fill(t, dist.Rand)
}

// checkFanMode validates a Kaiming fan mode
func checkFanMode(mode string) error {
	if mode != FanIn && mode != FanOut {
		return common.NewConfigurationError("checkfanmode: mode must be %q "+
			"or %q, got %q", FanIn, FanOut, mode)
	}
	return nil
}

// selectFan returns the fan of t named by mode
func selectFan(t *tensor.Dense, mode string) (int, error) {
	fanIn, fanOut, err := fans(t)
	if err != nil {
		return 0, err
	}
	if mode == FanOut {
		return fanOut, nil
	}
	return fanIn, nil
}
