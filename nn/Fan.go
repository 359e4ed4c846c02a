package nn

import (
	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/utils/intutils"
	"gorgonia.org/tensor"
)

// Fan modes for the Kaiming initializers
const (
	FanIn  = "fan_in"
	FanOut = "fan_out"
)

// fans computes the fan in and fan out of a weight tensor. The first
// dimension is taken as the output dimension and the second as the
// input dimension; any further dimensions form the receptive field.
// Tensors with fewer than 2 dimensions are a configuration error.
func fans(t *tensor.Dense) (fanIn, fanOut int, err error) {
	shape := t.Shape()
	if len(shape) < 2 {
		return 0, 0, common.NewConfigurationError("fans: fan in and fan "+
			"out require a tensor with at least 2 dimensions, got shape %v",
			shape)
	}

	receptive := 1
	if len(shape) > 2 {
		receptive = intutils.Prod(shape[2:]...)
	}
	return shape[1] * receptive, shape[0] * receptive, nil
}
