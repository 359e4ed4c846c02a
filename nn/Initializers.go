// Package nn implements declarative weight initialization for
// gorgonia modules. Initializers are selected by string name, bound
// with keyword arguments from a configuration file, and applied in
// place to the parameters of a module whose names match configured
// regular expressions.
package nn

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/aiedward/allennlp/common"
	"golang.org/x/exp/rand"
	"gorgonia.org/tensor"
)

// Type describes the different types of Initializer that are
// available. Type is used to implement a basic type system of
// Initializers so that they can be selected by name from
// configuration files.
type Type string

// Built-in Initializer types
const (
	NormalInit          Type = "normal"
	UniformInit         Type = "uniform"
	OrthogonalInit      Type = "orthogonal"
	ConstantInit        Type = "constant"
	DiracInit           Type = "dirac"
	XavierNormalInit    Type = "xavier_normal"
	XavierUniformInit   Type = "xavier_uniform"
	KaimingNormalInit   Type = "kaiming_normal"
	KaimingUniformInit  Type = "kaiming_uniform"
	SparseInit          Type = "sparse"
	EyeInit             Type = "eye"
	BlockOrthogonalInit Type = "block_orthogonal"
)

// Initializer sets the initial values of a tensor's contents in
// place, following some statistical or structural scheme.
type Initializer interface {
	// Apply initializes t in place
	Apply(t *tensor.Dense) error

	// Type returns the registry name of the initialization scheme
	Type() Type
}

// Constructor builds an Initializer from configuration parameters.
// Keyword arguments the constructor understands are popped from the
// Params; keys left over afterwards are treated as unknown arguments
// by FromParams.
type Constructor func(common.Params) (Initializer, error)

// registry maps initializer type names to their constructors. It is
// populated once, during package initialization and any external
// Register calls made at program start, and read-only afterwards.
var registry = make(map[Type]Constructor)

func init() {
	MustRegister(NormalInit, normalFromParams)
	MustRegister(UniformInit, uniformFromParams)
	MustRegister(OrthogonalInit, orthogonalFromParams)
	MustRegister(ConstantInit, constantFromParams)
	MustRegister(DiracInit, diracFromParams)
	MustRegister(XavierNormalInit, xavierNormalFromParams)
	MustRegister(XavierUniformInit, xavierUniformFromParams)
	MustRegister(KaimingNormalInit, kaimingNormalFromParams)
	MustRegister(KaimingUniformInit, kaimingUniformFromParams)
	MustRegister(SparseInit, sparseFromParams)
	MustRegister(EyeInit, eyeFromParams)
	MustRegister(BlockOrthogonalInit, blockOrthogonalFromParams)
}

// Register makes an Initializer constructor available to FromParams
// under the type name. Registering a name twice is an error.
func Register(name Type, c Constructor) error {
	if _, exists := registry[name]; exists {
		return fmt.Errorf("register: initializer type %q already registered",
			name)
	}
	registry[name] = c
	slog.Debug("registered initializer", "type", string(name))
	return nil
}

// MustRegister is like Register but panics if the type name is
// already registered.
func MustRegister(name Type, c Constructor) {
	if err := Register(name, c); err != nil {
		panic(err)
	}
}

// Types returns the names of all registered Initializer types in
// sorted order.
func Types() []string {
	types := make([]string, 0, len(registry))
	for name := range registry {
		types = append(types, string(name))
	}
	sort.Strings(types)
	return types
}

// FromName constructs the named Initializer with all of its keyword
// arguments left at their defaults. An unregistered name is a
// configuration error.
func FromName(name string) (Initializer, error) {
	return construct(name, common.NewParams(nil))
}

// FromParams constructs an Initializer from configuration parameters
// holding a required "type" key naming the initializer, plus the
// scheme's keyword arguments. Unknown keyword arguments and
// unregistered type names are configuration errors.
func FromParams(params common.Params) (Initializer, error) {
	name, err := params.PopString("type", "")
	if err != nil {
		return nil, err
	}
	if name == "" {
		return nil, common.NewConfigurationError("fromparams: initializer " +
			"spec is missing required key \"type\"")
	}
	return construct(name, params)
}

// FromSpec constructs an Initializer from a raw configuration value:
// either a bare string naming the initializer, or a map holding a
// "type" key plus keyword arguments.
func FromSpec(spec interface{}) (Initializer, error) {
	switch v := spec.(type) {
	case string:
		return FromName(v)
	case map[string]interface{}:
		// Copy so that construction does not consume the caller's map
		kwargs := make(map[string]interface{}, len(v))
		for key, val := range v {
			kwargs[key] = val
		}
		return FromParams(common.NewParams(kwargs))
	case common.Params:
		return FromParams(v)
	}
	return nil, common.NewConfigurationError("fromspec: initializer spec "+
		"must be a name or a map with a \"type\" key, got %T", spec)
}

// construct dispatches to the registered constructor for name and
// ensures the constructor consumed every keyword argument.
func construct(name string, params common.Params) (Initializer, error) {
	ctor, ok := registry[Type(name)]
	if !ok {
		return nil, common.NewConfigurationError("construct: %q is not a "+
			"registered initializer type, must be one of %v", name, Types())
	}
	init, err := ctor(params)
	if err != nil {
		return nil, err
	}
	if params.Len() != 0 {
		return nil, common.NewConfigurationError("construct: unknown "+
			"arguments %v for initializer type %q", params.Keys(), name)
	}
	return init, nil
}

// source returns the random source for seed. A seed of 0 means seed
// from the current time.
func source(seed uint64) rand.Source {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.NewSource(seed)
}

// popSeed pops the optional "seed" keyword argument
func popSeed(p common.Params) (uint64, error) {
	return p.PopUint64("seed", 0)
}

// checkFloat64 ensures t holds float64 data
func checkFloat64(t *tensor.Dense) error {
	if t.Dtype() != tensor.Float64 {
		return common.NewConfigurationError("initializer applied to tensor "+
			"of dtype %v, expected %v", t.Dtype(), tensor.Float64)
	}
	return nil
}

// fill assigns next() to each element of t in row-major order.
// Elements are addressed by coordinate so that views into larger
// tensors are written through their strides.
func fill(t *tensor.Dense, next func() float64) error {
	if err := checkFloat64(t); err != nil {
		return err
	}
	shape := t.Shape()
	coords := make([]int, len(shape))
	for {
		if err := t.SetAt(next(), coords...); err != nil {
			return fmt.Errorf("fill: could not set entry %v: %v", coords, err)
		}

		// Advance to the next coordinate, last dimension fastest
		dim := len(coords) - 1
		for ; dim >= 0; dim-- {
			coords[dim]++
			if coords[dim] < shape[dim] {
				break
			}
			coords[dim] = 0
		}
		if dim < 0 {
			return nil
		}
	}
}
