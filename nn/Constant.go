package nn

import (
	"github.com/aiedward/allennlp/common"
	"gorgonia.org/tensor"
)

// ConstantConfig implements a configuration of an initializer that
// fills a tensor with a single value.
type ConstantConfig struct {
	Val float64
}

// NewConstant returns a new constant initializer
func NewConstant(val float64) (Initializer, error) {
	return &ConstantConfig{Val: val}, nil
}

func constantFromParams(p common.Params) (Initializer, error) {
	if !p.Has("val") {
		return nil, common.NewConfigurationError("constant: initializer " +
			"requires keyword argument \"val\"")
	}
	val, err := p.PopFloat("val", 0.0)
	if err != nil {
		return nil, err
	}
	return NewConstant(val)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (c *ConstantConfig) Type() Type {
	return ConstantInit
}

// Apply fills t with the configured value.
func (c *ConstantConfig) Apply(t *tensor.Dense) error {
	return fill(t, func() float64 { return c.Val })
}
