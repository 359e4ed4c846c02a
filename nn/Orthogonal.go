package nn

import (
	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/utils/intutils"
	"github.com/aiedward/allennlp/utils/matutils"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
)

// OrthogonalConfig implements a configuration of an initializer that
// sets a tensor to a scaled (semi-)orthogonal matrix. Tensors with
// more than 2 dimensions are treated as matrices with all trailing
// dimensions flattened. Orthogonal initialization preserves gradient
// norms through linear layers.
type OrthogonalConfig struct {
	Gain float64
	Seed uint64
}

// NewOrthogonal returns a new orthogonal initializer. A seed of 0
// means seed from the current time.
func NewOrthogonal(gain float64, seed uint64) (Initializer, error) {
	if gain == 0 {
		return nil, common.NewConfigurationError("neworthogonal: gain " +
			"must be nonzero")
	}
	return &OrthogonalConfig{Gain: gain, Seed: seed}, nil
}

func orthogonalFromParams(p common.Params) (Initializer, error) {
	gain, err := p.PopFloat("gain", 1.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewOrthogonal(gain, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (o *OrthogonalConfig) Type() Type {
	return OrthogonalInit
}

// Apply sets t to a scaled (semi-)orthogonal matrix.
func (o *OrthogonalConfig) Apply(t *tensor.Dense) error {
	return Orthogonal(t, o.Gain, source(o.Seed))
}

// Orthogonal initializes t in place as a (semi-)orthogonal matrix
// scaled by gain, drawing the underlying random matrix from src.
// Tensors with more than 2 dimensions are treated as matrices of
// shape (dims[0], prod(dims[1:])); tensors with fewer than 2
// dimensions are a configuration error.
func Orthogonal(t *tensor.Dense, gain float64, src rand.Source) error {
	if err := checkFloat64(t); err != nil {
		return err
	}
	shape := t.Shape()
	if len(shape) < 2 {
		return common.NewConfigurationError("orthogonal: tensor must have "+
			"at least 2 dimensions, got shape %v", shape)
	}

	rows := shape[0]
	cols := intutils.Prod(shape[1:]...)
	q := matutils.Orthonormal(rows, cols, src)

	// The tensor is written in row-major order, which matches a
	// row-by-row walk of q
	row, col := 0, 0
	return fill(t, func() float64 {
		val := gain * q.At(row, col)
		col++
		if col == cols {
			col = 0
			row++
		}
		return val
	})
}
