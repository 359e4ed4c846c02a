package nn

import (
	"fmt"

	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/utils/intutils"
	"gorgonia.org/tensor"
)

// DiracConfig implements a configuration of an initializer that fills
// a convolutional weight tensor with the Dirac delta function: each
// output channel passes its corresponding input channel through
// unchanged, with the impulse placed at the centre of the spatial
// dimensions.
type DiracConfig struct{}

// NewDirac returns a new Dirac initializer
func NewDirac() (Initializer, error) {
	return &DiracConfig{}, nil
}

func diracFromParams(common.Params) (Initializer, error) {
	return NewDirac()
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (d *DiracConfig) Type() Type {
	return DiracInit
}

// Apply fills t with the Dirac delta function. Tensors that are not
// 3-, 4-, or 5-dimensional are a configuration error.
func (d *DiracConfig) Apply(t *tensor.Dense) error {
	shape := t.Shape()
	if len(shape) < 3 || len(shape) > 5 {
		return common.NewConfigurationError("dirac: tensor must have 3, 4, "+
			"or 5 dimensions, got shape %v", shape)
	}
	if err := fill(t, func() float64 { return 0.0 }); err != nil {
		return err
	}

	for c := 0; c < intutils.Min(shape[0], shape[1]); c++ {
		coords := make([]int, len(shape))
		coords[0], coords[1] = c, c
		for dim := 2; dim < len(shape); dim++ {
			coords[dim] = shape[dim] / 2
		}
		if err := t.SetAt(1.0, coords...); err != nil {
			return fmt.Errorf("dirac: could not set impulse at %v: %v",
				coords, err)
		}
	}
	return nil
}
