package common

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Params wraps a map of configuration values parsed from a YAML or
// JSON file. Values are removed from the map as they are consumed so
// that leftover, unrecognized keys can be detected after an object has
// popped everything it understands.
type Params struct {
	data map[string]interface{}
}

// NewParams returns Params wrapping data. A nil map is treated as
// empty.
func NewParams(data map[string]interface{}) Params {
	if data == nil {
		data = make(map[string]interface{})
	}
	return Params{data: data}
}

// FromFile reads a configuration file into Params, detecting the
// format from the file extension. Supported extensions are .yaml,
// .yml, and .json.
func FromFile(path string) (Params, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Params{}, errors.Wrap(err, "fromfile: could not read config file")
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		return FromYAML(data)
	case ".json":
		return FromJSON(data)
	default:
		return Params{}, NewConfigurationError("fromfile: unsupported "+
			"config file extension: %v", ext)
	}
}

// FromYAML parses YAML data into Params.
func FromYAML(data []byte) (Params, error) {
	m := map[string]interface{}{}
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Params{}, errors.Wrap(err, "fromyaml: could not parse yaml")
	}
	return NewParams(m), nil
}

// FromJSON parses JSON data into Params.
func FromJSON(data []byte) (Params, error) {
	m := map[string]interface{}{}
	if err := json.Unmarshal(data, &m); err != nil {
		return Params{}, errors.Wrap(err, "fromjson: could not parse json")
	}
	return NewParams(m), nil
}

// Pop removes key from the Params and returns its value, along with
// whether the key was present.
func (p Params) Pop(key string) (interface{}, bool) {
	v, ok := p.data[key]
	if ok {
		delete(p.data, key)
	}
	return v, ok
}

// PopString removes key and returns its value as a string, or def if
// the key is missing. A value of the wrong type is a configuration
// error.
func (p Params) PopString(key, def string) (string, error) {
	v, ok := p.Pop(key)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", NewConfigurationError("popstring: key %q holds %T, "+
			"not a string", key, v)
	}
	return s, nil
}

// PopChoice removes key and returns its value, which must be a string
// equal to one of choices. A missing key or a value outside choices is
// a configuration error.
func (p Params) PopChoice(key string, choices []string) (string, error) {
	v, ok := p.Pop(key)
	if !ok {
		return "", NewConfigurationError("popchoice: key %q is required "+
			"and must be one of %v", key, choices)
	}
	s, ok := v.(string)
	if !ok {
		return "", NewConfigurationError("popchoice: key %q holds %T, "+
			"not a string", key, v)
	}
	for _, choice := range choices {
		if s == choice {
			return s, nil
		}
	}
	return "", NewConfigurationError("popchoice: %q is not a valid choice "+
		"for key %q, must be one of %v", s, key, choices)
}

// PopFloat removes key and returns its value as a float64, or def if
// the key is missing. Integer values are converted.
func (p Params) PopFloat(key string, def float64) (float64, error) {
	v, ok := p.Pop(key)
	if !ok {
		return def, nil
	}
	switch val := v.(type) {
	case float64:
		return val, nil
	case float32:
		return float64(val), nil
	case int:
		return float64(val), nil
	case int64:
		return float64(val), nil
	}
	return 0, NewConfigurationError("popfloat: key %q holds %T, not a "+
		"number", key, v)
}

// PopInt removes key and returns its value as an int, or def if the
// key is missing. Float values are converted only when they have no
// fractional part.
func (p Params) PopInt(key string, def int) (int, error) {
	v, ok := p.Pop(key)
	if !ok {
		return def, nil
	}
	switch val := v.(type) {
	case int:
		return val, nil
	case int64:
		return int(val), nil
	case float64:
		if val == float64(int(val)) {
			return int(val), nil
		}
	}
	return 0, NewConfigurationError("popint: key %q holds %v (%T), not an "+
		"integer", key, v, v)
}

// PopUint64 removes key and returns its value as a uint64, or def if
// the key is missing. Negative values are a configuration error.
func (p Params) PopUint64(key string, def uint64) (uint64, error) {
	v, ok := p.Pop(key)
	if !ok {
		return def, nil
	}
	switch val := v.(type) {
	case int:
		if val >= 0 {
			return uint64(val), nil
		}
	case int64:
		if val >= 0 {
			return uint64(val), nil
		}
	case uint64:
		return val, nil
	case float64:
		if val >= 0 && val == float64(uint64(val)) {
			return uint64(val), nil
		}
	}
	return 0, NewConfigurationError("popuint64: key %q holds %v (%T), not "+
		"a non-negative integer", key, v, v)
}

// PopBool removes key and returns its value as a bool, or def if the
// key is missing.
func (p Params) PopBool(key string, def bool) (bool, error) {
	v, ok := p.Pop(key)
	if !ok {
		return def, nil
	}
	b, ok := v.(bool)
	if !ok {
		return false, NewConfigurationError("popbool: key %q holds %T, "+
			"not a bool", key, v)
	}
	return b, nil
}

// PopSlice removes key and returns its value as a slice of arbitrary
// values, or nil if the key is missing.
func (p Params) PopSlice(key string) ([]interface{}, error) {
	v, ok := p.Pop(key)
	if !ok {
		return nil, nil
	}
	s, ok := v.([]interface{})
	if !ok {
		return nil, NewConfigurationError("popslice: key %q holds %T, "+
			"not a list", key, v)
	}
	return s, nil
}

// Has returns whether key is present in the Params.
func (p Params) Has(key string) bool {
	_, ok := p.data[key]
	return ok
}

// Len returns the number of keys remaining in the Params.
func (p Params) Len() int {
	return len(p.data)
}

// Keys returns the keys remaining in the Params in sorted order.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p.data))
	for key := range p.data {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the underlying map of values that have not yet been
// popped. The returned map should not be modified.
func (p Params) Raw() map[string]interface{} {
	return p.data
}
