package network

import (
	"fmt"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

// LSTMCell implements a single-step LSTM cell whose gate parameters
// are concatenated along the column dimension in input, forget, cell,
// output order. The concatenated parameters are named
// "lstm.weight_ih" of shape (features, 4*hidden), "lstm.weight_hh" of
// shape (hidden, 4*hidden), and "lstm.bias" of shape (1, 4*hidden).
// Because the gates are concatenated, each gate's sub-block of the
// recurrent weights can be independently orthogonally initialized
// with a block-orthogonal initializer.
type LSTMCell struct {
	g          *G.ExprGraph
	weightIH   *G.Node
	weightHH   *G.Node
	bias       *G.Node
	input      *G.Node
	prevHidden *G.Node
	prevCell   *G.Node

	features   int
	hiddenSize int
	batchSize  int

	learnables G.Nodes
	model      []G.ValueGrad

	hidden    *G.Node
	cell      *G.Node
	hiddenVal G.Value
	cellVal   G.Value
}

// NewLSTMCell creates and returns a new LSTM cell on the graph g. The
// cell maps an input of features values and a previous hidden state
// of hiddenSize values to the next hidden and cell states. The
// parameter init determines the weight initialization scheme applied
// by the module itself.
func NewLSTMCell(features, hiddenSize, batch int, g *G.ExprGraph,
	init G.InitWFn) (*LSTMCell, error) {
	if features <= 0 || hiddenSize <= 0 || batch <= 0 {
		msg := "newlstmcell: features, hidden size, and batch must be " +
			"positive, got (%v, %v, %v)"
		return nil, fmt.Errorf(msg, features, hiddenSize, batch)
	}

	cell := &LSTMCell{
		g:          g,
		features:   features,
		hiddenSize: hiddenSize,
		batchSize:  batch,
	}

	cell.weightIH = G.NewMatrix(g, tensor.Float64,
		G.WithShape(features, 4*hiddenSize),
		G.WithName("lstm.weight_ih"), G.WithInit(init))
	cell.weightHH = G.NewMatrix(g, tensor.Float64,
		G.WithShape(hiddenSize, 4*hiddenSize),
		G.WithName("lstm.weight_hh"), G.WithInit(init))
	cell.bias = G.NewMatrix(g, tensor.Float64,
		G.WithShape(1, 4*hiddenSize),
		G.WithName("lstm.bias"), G.WithInit(G.Zeroes()))

	cell.input = G.NewMatrix(g, tensor.Float64,
		G.WithShape(batch, features),
		G.WithName("lstm.input"), G.WithInit(G.Zeroes()))
	cell.prevHidden = G.NewMatrix(g, tensor.Float64,
		G.WithShape(batch, hiddenSize),
		G.WithName("lstm.hidden"), G.WithInit(G.Zeroes()))
	cell.prevCell = G.NewMatrix(g, tensor.Float64,
		G.WithShape(batch, hiddenSize),
		G.WithName("lstm.cell"), G.WithInit(G.Zeroes()))

	if err := cell.fwd(); err != nil {
		return nil, fmt.Errorf("newlstmcell: could not compute forward "+
			"pass: %v", err)
	}
	return cell, nil
}

// fwd adds the single-step forward pass of the cell to the
// computational graph
func (l *LSTMCell) fwd() error {
	gates := G.Must(G.Add(
		G.Must(G.Mul(l.input, l.weightIH)),
		G.Must(G.Mul(l.prevHidden, l.weightHH)),
	))
	gates = G.Must(G.BroadcastAdd(gates, l.bias, nil, []byte{0}))

	inGate, err := l.gate(gates, 0, Sigmoid())
	if err != nil {
		return err
	}
	forgetGate, err := l.gate(gates, 1, Sigmoid())
	if err != nil {
		return err
	}
	cellGate, err := l.gate(gates, 2, TanH())
	if err != nil {
		return err
	}
	outGate, err := l.gate(gates, 3, Sigmoid())
	if err != nil {
		return err
	}

	l.cell = G.Must(G.Add(
		G.Must(G.HadamardProd(forgetGate, l.prevCell)),
		G.Must(G.HadamardProd(inGate, cellGate)),
	))
	l.hidden = G.Must(G.HadamardProd(outGate, G.Must(G.Tanh(l.cell))))

	G.Read(l.cell, &l.cellVal)
	G.Read(l.hidden, &l.hiddenVal)
	return nil
}

// gate slices gate number i out of the concatenated gate
// pre-activations and applies act to it
func (l *LSTMCell) gate(gates *G.Node, i int, act *Activation) (*G.Node,
	error) {
	sliced, err := G.Slice(gates, G.S(0, l.batchSize),
		G.S(i*l.hiddenSize, (i+1)*l.hiddenSize))
	if err != nil {
		return nil, fmt.Errorf("gate: could not slice gate %v: %v", i, err)
	}
	// Slicing may drop size-1 dimensions
	sliced, err = G.Reshape(sliced, tensor.Shape{l.batchSize, l.hiddenSize})
	if err != nil {
		return nil, fmt.Errorf("gate: could not reshape gate %v: %v", i, err)
	}
	return act.fwd(sliced)
}

// Graph returns the computational graph of the cell.
func (l *LSTMCell) Graph() *G.ExprGraph {
	return l.g
}

// BatchSize returns the batch size of inputs to the cell
func (l *LSTMCell) BatchSize() int {
	return l.batchSize
}

// Features returns the number of features in a single observation
// vector that the cell takes as input.
func (l *LSTMCell) Features() int {
	return l.features
}

// HiddenSize returns the number of units in the cell's hidden state
func (l *LSTMCell) HiddenSize() int {
	return l.hiddenSize
}

// SetInput sets the value of the input node before running the
// forward pass.
func (l *LSTMCell) SetInput(input []float64) error {
	if len(input) != l.features*l.batchSize {
		msg := "setinput: invalid number of inputs\n\twant(%v)\n\thave(%v)"
		return fmt.Errorf(msg, l.features*l.batchSize, len(input))
	}
	inputTensor := tensor.New(
		tensor.WithBacking(input),
		tensor.WithShape(l.batchSize, l.features),
	)
	return G.Let(l.input, inputTensor)
}

// SetState sets the previous hidden and cell states before running
// the forward pass.
func (l *LSTMCell) SetState(hidden, cell []float64) error {
	if len(hidden) != l.hiddenSize*l.batchSize ||
		len(cell) != l.hiddenSize*l.batchSize {
		msg := "setstate: invalid state size\n\twant(%v)\n\thave(%v, %v)"
		return fmt.Errorf(msg, l.hiddenSize*l.batchSize, len(hidden),
			len(cell))
	}

	hiddenTensor := tensor.New(
		tensor.WithBacking(hidden),
		tensor.WithShape(l.batchSize, l.hiddenSize),
	)
	if err := G.Let(l.prevHidden, hiddenTensor); err != nil {
		return err
	}

	cellTensor := tensor.New(
		tensor.WithBacking(cell),
		tensor.WithShape(l.batchSize, l.hiddenSize),
	)
	return G.Let(l.prevCell, cellTensor)
}

// Learnables returns the learnable nodes in the cell
func (l *LSTMCell) Learnables() G.Nodes {
	// Lazy instantiation
	if l.learnables == nil {
		l.learnables = G.Nodes{l.weightIH, l.weightHH, l.bias}
	}
	return l.learnables
}

// Model returns the learnable nodes with their gradients.
func (l *LSTMCell) Model() []G.ValueGrad {
	// Lazy instantiation
	if l.model == nil {
		for _, node := range l.Learnables() {
			l.model = append(l.model, node)
		}
	}
	return l.model
}

// Hidden returns the value of the cell's next hidden state after a
// forward pass has been run.
func (l *LSTMCell) Hidden() G.Value {
	return l.hiddenVal
}

// Cell returns the value of the cell's next cell state after a
// forward pass has been run.
func (l *LSTMCell) Cell() G.Value {
	return l.cellVal
}
