package nn

import (
	"fmt"

	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/utils/intutils"
	"gorgonia.org/tensor"
)

// EyeConfig implements a configuration of an initializer that sets a
// 2-dimensional tensor to the identity: ones on the main diagonal and
// zeroes elsewhere. Identity initialization preserves the inputs of a
// linear layer, as far as the layer's shape allows.
type EyeConfig struct{}

// NewEye returns a new identity initializer
func NewEye() (Initializer, error) {
	return &EyeConfig{}, nil
}

func eyeFromParams(common.Params) (Initializer, error) {
	return NewEye()
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (e *EyeConfig) Type() Type {
	return EyeInit
}

// Apply sets t to the identity. Tensors that are not 2-dimensional
// are a configuration error.
func (e *EyeConfig) Apply(t *tensor.Dense) error {
	shape := t.Shape()
	if len(shape) != 2 {
		return common.NewConfigurationError("eye: tensor must have 2 "+
			"dimensions, got shape %v", shape)
	}
	if err := fill(t, func() float64 { return 0.0 }); err != nil {
		return err
	}
	for i := 0; i < intutils.Min(shape[0], shape[1]); i++ {
		if err := t.SetAt(1.0, i, i); err != nil {
			return fmt.Errorf("eye: could not set diagonal entry %v: %v",
				i, err)
		}
	}
	return nil
}
