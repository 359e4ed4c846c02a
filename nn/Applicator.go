package nn

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/aiedward/allennlp/common"
	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// Parameterized is a module exposing named parameters. A gorgonia
// node's Name is the hierarchical path identifying the parameter
// within the module tree, and its Value is the parameter tensor that
// initializers mutate in place.
type Parameterized interface {
	Learnables() G.Nodes
}

// NamedInitializer pairs a regular expression over parameter names
// with the Initializer to apply to matching parameters.
type NamedInitializer struct {
	Pattern string
	Init    Initializer

	re *regexp.Regexp
}

// InitializerApplicator applies initializers to the parameters of a
// module based on each parameter's name. The applicator holds an
// ordered list of (pattern, Initializer) pairs; each parameter is
// initialized by the first pair whose pattern matches anywhere within
// the parameter's name. Parameters matching no pattern are left with
// whatever initialization the module itself applied.
type InitializerApplicator struct {
	inits  []NamedInitializer
	logger *slog.Logger
}

// NewInitializerApplicator returns a new InitializerApplicator that
// applies inits in the given order. An invalid regular expression is
// a configuration error. An applicator with no pairs is valid and
// initializes nothing.
func NewInitializerApplicator(inits ...NamedInitializer) (
	*InitializerApplicator, error) {
	compiled := make([]NamedInitializer, len(inits))
	for i, ni := range inits {
		re, err := regexp.Compile(ni.Pattern)
		if err != nil {
			return nil, common.WrapConfigurationError(err,
				"newinitializerapplicator: invalid pattern %q", ni.Pattern)
		}
		ni.re = re
		compiled[i] = ni
	}
	return &InitializerApplicator{
		inits:  compiled,
		logger: slog.Default(),
	}, nil
}

// ApplicatorFromParams constructs an InitializerApplicator from a
// configuration list of two-element [pattern, initializer] entries,
// where the initializer is either a bare string naming the
// initializer or a map holding a "type" key plus keyword arguments.
func ApplicatorFromParams(entries []interface{}) (*InitializerApplicator,
	error) {
	inits := make([]NamedInitializer, len(entries))
	for i, entry := range entries {
		pair, ok := entry.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, common.NewConfigurationError(
				"applicatorfromparams: entry %v is not a two-element "+
					"[pattern, initializer] pair: %v", i, entry)
		}
		pattern, ok := pair[0].(string)
		if !ok {
			return nil, common.NewConfigurationError(
				"applicatorfromparams: pattern of entry %v is a %T, not a "+
					"string", i, pair[0])
		}
		init, err := FromSpec(pair[1])
		if err != nil {
			return nil, err
		}
		inits[i] = NamedInitializer{Pattern: pattern, Init: init}
	}
	return NewInitializerApplicator(inits...)
}

// WithLogger sets the logger the applicator reports to and returns
// the applicator.
func (a *InitializerApplicator) WithLogger(logger *slog.Logger) *InitializerApplicator {
	a.logger = logger
	return a
}

// Apply initializes the parameters of module in place. Every
// parameter is matched against the applicator's patterns in order,
// and the first matching pair's initializer is applied; later pairs
// are not tried even if they would also match, so no parameter is
// initialized more than once. Parameters matching no pattern and
// patterns matching no parameter are logged, not errors, since
// partially specified configurations are an intended usage pattern.
func (a *InitializerApplicator) Apply(module Parameterized) error {
	a.logger.Info("initializing parameters")

	used := make([]bool, len(a.inits))
	var defaulted []string
	for _, node := range module.Learnables() {
		name := node.Name()

		matched := false
		for i := range a.inits {
			ni := &a.inits[i]
			if !ni.re.MatchString(name) {
				continue
			}

			data, ok := node.Value().(*tensor.Dense)
			if !ok {
				return fmt.Errorf("apply: parameter %v holds a %T, not a "+
					"dense tensor", name, node.Value())
			}
			if err := ni.Init.Apply(data); err != nil {
				return fmt.Errorf("apply: could not initialize parameter "+
					"%v: %w", name, err)
			}

			a.logger.Info("initialized parameter",
				"parameter", name,
				"pattern", ni.Pattern,
				"type", string(ni.Init.Type()),
			)
			used[i] = true
			matched = true
			break
		}
		if !matched {
			defaulted = append(defaulted, name)
		}
	}

	for i, ni := range a.inits {
		if !used[i] {
			a.logger.Warn("initializer pattern matched no parameter",
				"pattern", ni.Pattern)
		}
	}
	if len(defaulted) > 0 {
		a.logger.Info("parameters left to the module's own initialization",
			"parameters", defaulted)
	}
	return nil
}
