// Package network implements gorgonia neural network modules whose
// parameters are exposed through hierarchically named learnable
// nodes, so that initializers can be matched against and applied to
// parameters by name.
package network

import (
	G "gorgonia.org/gorgonia"
)

// NeuralNet implements a neural network module. The network's
// parameters are exposed through Learnables with hierarchical,
// dot-delimited names such as "layer0.weight".
type NeuralNet interface {
	// Graph returns the computational graph the network is built on
	Graph() *G.ExprGraph

	// BatchSize returns the number of samples in an input batch
	BatchSize() int

	// Features returns the number of features in a single input
	// observation
	Features() int

	// Outputs returns the number of outputs from the network
	Outputs() int

	// SetInput sets the value of the input node before running the
	// forward pass
	SetInput([]float64) error

	// Learnables returns the learnable parameter nodes of the network
	Learnables() G.Nodes

	// Model returns the learnable nodes with their gradients
	Model() []G.ValueGrad

	// Output returns the value of the network's output after a
	// forward pass has been run
	Output() G.Value

	// Prediction returns the node of the computational graph that
	// stores the network's output
	Prediction() *G.Node
}

// Layer implements a single layer of a NeuralNet
type Layer interface {
	fwd(*G.Node) (*G.Node, error)
	Weights() *G.Node
	Bias() *G.Node
	Activation() *Activation
}
