package nn

import (
	"fmt"

	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/utils/tensorutils"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
)

// BlockOrthogonalConfig implements a configuration of the
// block-orthogonal initialization algorithm: the tensor is divided
// into a grid of axis-aligned blocks of shape SplitSizes and each
// block is orthogonally initialized independently of the others. This
// is used for gate-concatenated recurrent weight matrices, where each
// gate's sub-block should be independently orthogonal rather than the
// whole matrix jointly orthogonal.
type BlockOrthogonalConfig struct {
	SplitSizes []int
	Gain       float64
	Seed       uint64
}

// NewBlockOrthogonal returns a new block-orthogonal initializer.
// SplitSizes must have one entry per dimension of the tensors the
// initializer will be applied to, and each entry must evenly divide
// the corresponding dimension.
func NewBlockOrthogonal(splitSizes []int, gain float64,
	seed uint64) (Initializer, error) {
	if len(splitSizes) == 0 {
		return nil, common.NewConfigurationError("newblockorthogonal: " +
			"split sizes cannot be empty")
	}
	for _, split := range splitSizes {
		if split <= 0 {
			return nil, common.NewConfigurationError("newblockorthogonal: "+
				"split sizes must be positive, got %v", splitSizes)
		}
	}
	if gain == 0 {
		return nil, common.NewConfigurationError("newblockorthogonal: " +
			"gain must be nonzero")
	}
	return &BlockOrthogonalConfig{
		SplitSizes: splitSizes,
		Gain:       gain,
		Seed:       seed,
	}, nil
}

func blockOrthogonalFromParams(p common.Params) (Initializer, error) {
	if !p.Has("split_sizes") {
		return nil, common.NewConfigurationError("block_orthogonal: " +
			"initializer requires keyword argument \"split_sizes\"")
	}
	rawSizes, err := p.PopSlice("split_sizes")
	if err != nil {
		return nil, err
	}
	splitSizes := make([]int, len(rawSizes))
	for i, raw := range rawSizes {
		switch size := raw.(type) {
		case int:
			splitSizes[i] = size
		case int64:
			splitSizes[i] = int(size)
		case float64:
			if size != float64(int(size)) {
				return nil, common.NewConfigurationError("block_orthogonal: "+
					"split size %v is not an integer", size)
			}
			splitSizes[i] = int(size)
		default:
			return nil, common.NewConfigurationError("block_orthogonal: "+
				"split size %v (%T) is not an integer", raw, raw)
		}
	}

	gain, err := p.PopFloat("gain", 1.0)
	if err != nil {
		return nil, err
	}
	seed, err := popSeed(p)
	if err != nil {
		return nil, err
	}
	return NewBlockOrthogonal(splitSizes, gain, seed)
}

// Type returns the type of initialization algorithm described by the
// configuration.
func (b *BlockOrthogonalConfig) Type() Type {
	return BlockOrthogonalInit
}

// Apply block-orthogonally initializes t in place.
func (b *BlockOrthogonalConfig) Apply(t *tensor.Dense) error {
	return BlockOrthogonal(t, b.SplitSizes, b.Gain, source(b.Seed))
}

// BlockOrthogonal initializes t in place as a grid of independent
// orthogonal blocks of shape splitSizes, each scaled by gain, drawing
// the underlying random matrices from src. splitSizes must have one
// entry per dimension of t, and each entry must evenly divide the
// corresponding dimension; otherwise a configuration error is
// returned and t is left unchanged. Blocks are visited in
// lexicographic order of their start offsets, though the order does
// not affect the result since blocks do not overlap.
func BlockOrthogonal(t *tensor.Dense, splitSizes []int, gain float64,
	src rand.Source) error {
	if err := checkFloat64(t); err != nil {
		return err
	}
	shape := t.Shape()
	if len(splitSizes) != len(shape) {
		return common.NewConfigurationError("blockorthogonal: got %v split "+
			"sizes for a tensor with %v dimensions", len(splitSizes),
			len(shape))
	}
	for i, split := range splitSizes {
		if split <= 0 || shape[i]%split != 0 {
			return common.NewConfigurationError("blockorthogonal: tensor "+
				"dimensions %v must be divisible by their respective split "+
				"sizes %v", []int(shape), splitSizes)
		}
	}

	starts := make([]int, len(shape))
	for {
		view, err := t.Slice(tensorutils.Block(starts, splitSizes)...)
		if err != nil {
			return fmt.Errorf("blockorthogonal: could not slice block at "+
				"%v: %v", starts, err)
		}
		if err := Orthogonal(view.(*tensor.Dense), gain, src); err != nil {
			return fmt.Errorf("blockorthogonal: could not initialize block "+
				"at %v: %v", starts, err)
		}

		// Advance to the next block, last dimension fastest
		dim := len(starts) - 1
		for ; dim >= 0; dim-- {
			starts[dim] += splitSizes[dim]
			if starts[dim] < shape[dim] {
				break
			}
			starts[dim] = 0
		}
		if dim < 0 {
			return nil
		}
	}
}
