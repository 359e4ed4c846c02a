// Package tensorutils provides utilities for working with tensors
package tensorutils

import "gorgonia.org/tensor"

// Slice implements a struct that can be used for slicing tensors.
//
// Given a tensor T and a Slice S, T.Slice(..., S, ...) is equivalent to
// T[..., S.start:S.end:S.step, ...]
type Slice struct {
	start, end, step int
}

// Start returns the start index for the tensor slice
func (s Slice) Start() int {
	return s.start
}

// End returns the ending index for the tensor slice
func (s Slice) End() int {
	return s.end
}

// Step returns the step for the tensor slice
func (s Slice) Step() int {
	return s.step
}

// NewSlice returns a new Slice that can be used to slice tensors
func NewSlice(start, stop, step int) Slice {
	return Slice{start, stop, step}
}

// Block returns the slices selecting an axis-aligned block of a
// tensor. The block begins at starts[i] along dimension i and extends
// for sizes[i] elements. The two arguments must have one entry per
// tensor dimension.
func Block(starts, sizes []int) []tensor.Slice {
	slices := make([]tensor.Slice, len(starts))
	for i := range starts {
		slices[i] = NewSlice(starts[i], starts[i]+sizes[i], 1)
	}
	return slices
}
