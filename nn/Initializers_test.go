package nn

import (
	"math"
	"testing"

	"github.com/aiedward/allennlp/common"
	"github.com/aiedward/allennlp/utils/floatutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorgonia.org/tensor"
)

// newDense returns a zeroed float64 tensor of the given shape
func newDense(shape ...int) *tensor.Dense {
	size := 1
	for _, dim := range shape {
		size *= dim
	}
	return tensor.New(
		tensor.WithShape(shape...),
		tensor.WithBacking(make([]float64, size)),
	)
}

func TestFromNameUnknown(t *testing.T) {
	init, err := FromName("not_a_real_name")
	require.Error(t, err)
	assert.Nil(t, init)
	assert.True(t, common.IsConfigurationError(err))
}

func TestFromSpecString(t *testing.T) {
	init, err := FromSpec("xavier_uniform")
	require.NoError(t, err)
	assert.Equal(t, XavierUniformInit, init.Type())
}

func TestFromSpecMap(t *testing.T) {
	init, err := FromSpec(map[string]interface{}{
		"type": "uniform",
		"a":    -1.0,
		"b":    1.0,
		"seed": 7,
	})
	require.NoError(t, err)
	require.Equal(t, UniformInit, init.Type())

	m := newDense(4, 4)
	require.NoError(t, init.Apply(m))
	data := m.Data().([]float64)
	assert.GreaterOrEqual(t, floatutils.Min(data...), -1.0)
	assert.Less(t, floatutils.Max(data...), 1.0)
}

func TestFromSpecUnknownArgument(t *testing.T) {
	_, err := FromSpec(map[string]interface{}{
		"type":   "normal",
		"stddev": 2.0,
	})
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
	assert.Contains(t, err.Error(), "stddev")
}

func TestFromSpecBadType(t *testing.T) {
	_, err := FromSpec(42)
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestConstantRequiresVal(t *testing.T) {
	_, err := FromName("constant")
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestSparseRequiresSparsity(t *testing.T) {
	_, err := FromName("sparse")
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestBlockOrthogonalRequiresSplitSizes(t *testing.T) {
	_, err := FromName("block_orthogonal")
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestTypesContainsBuiltins(t *testing.T) {
	types := Types()
	for _, name := range []Type{
		NormalInit, UniformInit, OrthogonalInit, ConstantInit, DiracInit,
		XavierNormalInit, XavierUniformInit, KaimingNormalInit,
		KaimingUniformInit, SparseInit, EyeInit, BlockOrthogonalInit,
	} {
		assert.Contains(t, types, string(name))
	}
}

func TestRegisterDuplicate(t *testing.T) {
	err := Register(NormalInit, normalFromParams)
	assert.Error(t, err)
}

func TestSeedDeterminism(t *testing.T) {
	a, b := newDense(5, 5), newDense(5, 5)

	init, err := NewNormal(0.0, 1.0, 42)
	require.NoError(t, err)
	require.NoError(t, init.Apply(a))

	init, err = NewNormal(0.0, 1.0, 42)
	require.NoError(t, err)
	require.NoError(t, init.Apply(b))

	assert.Equal(t, a.Data(), b.Data())
}

func TestConstantApply(t *testing.T) {
	init, err := NewConstant(3.5)
	require.NoError(t, err)

	m := newDense(2, 3, 4)
	require.NoError(t, init.Apply(m))
	for _, val := range m.Data().([]float64) {
		require.Equal(t, 3.5, val)
	}
}

func TestEyeApply(t *testing.T) {
	init, err := NewEye()
	require.NoError(t, err)

	m := newDense(3, 4)
	require.NoError(t, init.Apply(m))
	for i := 0; i < 3; i++ {
		for j := 0; j < 4; j++ {
			val, atErr := m.At(i, j)
			require.NoError(t, atErr)
			if i == j {
				assert.Equal(t, 1.0, val)
			} else {
				assert.Equal(t, 0.0, val)
			}
		}
	}
}

func TestEyeRejectsVector(t *testing.T) {
	init, err := NewEye()
	require.NoError(t, err)

	err = init.Apply(newDense(5))
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestDiracApply(t *testing.T) {
	init, err := NewDirac()
	require.NoError(t, err)

	m := newDense(2, 3, 3)
	require.NoError(t, init.Apply(m))
	for c := 0; c < 2; c++ {
		val, atErr := m.At(c, c, 1)
		require.NoError(t, atErr)
		assert.Equal(t, 1.0, val, "impulse missing for channel %v", c)
	}

	sum := 0.0
	for _, val := range m.Data().([]float64) {
		sum += val
	}
	assert.Equal(t, 2.0, sum, "entries off the impulses should be zero")
}

func TestDiracRejectsMatrix(t *testing.T) {
	init, err := NewDirac()
	require.NoError(t, err)

	err = init.Apply(newDense(3, 3))
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestXavierUniformBounds(t *testing.T) {
	init, err := NewXavierUniform(1.0, 42)
	require.NoError(t, err)

	m := newDense(20, 30)
	require.NoError(t, init.Apply(m))

	bound := math.Sqrt(6.0 / 50.0)
	data := m.Data().([]float64)
	assert.GreaterOrEqual(t, floatutils.Min(data...), -bound)
	assert.LessOrEqual(t, floatutils.Max(data...), bound)
}

func TestFanRequiresMatrix(t *testing.T) {
	init, err := NewXavierNormal(1.0, 42)
	require.NoError(t, err)

	err = init.Apply(newDense(5))
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}

func TestKaimingModeValidation(t *testing.T) {
	_, err := NewKaimingNormal(0.0, "fan_sideways", 42)
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))

	_, err = NewKaimingUniform(0.0, FanOut, 42)
	assert.NoError(t, err)
}

func TestSparseApply(t *testing.T) {
	init, err := NewSparse(0.5, 0.01, 42)
	require.NoError(t, err)

	m := newDense(10, 4)
	require.NoError(t, init.Apply(m))

	for j := 0; j < 4; j++ {
		zeros := 0
		for i := 0; i < 10; i++ {
			val, atErr := m.At(i, j)
			require.NoError(t, atErr)
			if val.(float64) == 0.0 {
				zeros++
			}
		}
		assert.GreaterOrEqual(t, zeros, 5,
			"column %v should have at least half of its entries zeroed", j)
	}
}

func TestApplyRejectsFloat32(t *testing.T) {
	init, err := NewConstant(1.0)
	require.NoError(t, err)

	m := tensor.New(
		tensor.WithShape(2, 2),
		tensor.WithBacking(make([]float32, 4)),
	)
	err = init.Apply(m)
	require.Error(t, err)
	assert.True(t, common.IsConfigurationError(err))
}
