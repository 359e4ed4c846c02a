package nn

import (
	"fmt"
	"math"

	"github.com/aiedward/allennlp/common"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
	"gorgonia.org/tensor"
)

// SparseConfig implements a configuration of an initializer that
// fills a 2-dimensional tensor with draws from N(0, Std²) and then
// zeroes a fraction Sparsity of the entries in each column.
type SparseConfig struct {
	Sparsity, Std float64
	Seed          uint64
}

// NewSparse returns a new sparse initializer. Sparsity is the
// fraction of each column to zero and must lie in [0, 1].
func NewSparse(sparsity, std float64, seed uint64) (Initializer, error) {
	if sparsity < 0 || sparsity > 1 {
		return nil, common.NewConfigurationError("newsparse: sparsity must "+
			"be in [0, 1], got %v", sparsity)
	}
	if std <= 0 {
		return nil, common.NewConfigurationError("newsparse: standard "+
			"deviation must be positive, got %v", std)
	}
	return &SparseConfig{Sparsity: sparsity, Std: std, Seed: seed}, nil
}

func sparseFromParams(p common.Params) (Initializer, error) {
	if !p.Has("sparsity") {
		return nil, common.NewConfigurationError("sparse: initializer " +
			"requires keyword argument \"sparsity\"")
	}
	sparsity, err := p.PopFloat("sparsity", 0.0)
	if err != nil {
		return nil, err
	}
	std, err := p.PopFloat("std", 0.01)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewSparse(sparsity, std, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (s *SparseConfig) Type() Type {
	return SparseInit
}

// Apply fills t with the configured sparse initialization. Tensors
// that are not 2-dimensional are a configuration error.
func (s *SparseConfig) Apply(t *tensor.Dense) error {
	shape := t.Shape()
	if len(shape) != 2 {
		return common.NewConfigurationError("sparse: tensor must have 2 "+
			"dimensions, got shape %v", shape)
	}
	rows, cols := shape[0], shape[1]

	src := source(s.Seed)
	rng := rand.New(src)
	dist := distuv.Normal{Mu: 0.0, Sigma: s.Std, Src: src}
	if err := fill(t, dist.Rand); err != nil {
		return err
	}

	numZeros := int(math.Ceil(s.Sparsity * float64(rows)))
	for col := 0; col < cols; col++ {
		perm := rng.Perm(rows)
		for _, row := range perm[:numZeros] {
			if err := t.SetAt(0.0, row, col); err != nil {
				return fmt.Errorf("sparse: could not zero entry (%v, %v): %v",
					row, col, err)
			}
		}
	}
	return nil
}
