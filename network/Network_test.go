package network

import (
	"testing"

	G "gorgonia.org/gorgonia"
	"gorgonia.org/tensor"
)

func TestMLPParameterNames(t *testing.T) {
	g := G.NewGraph()
	net, err := NewMLP(3, 1, 2, g, []int{5}, []bool{true}, G.GlorotU(1.0),
		[]*Activation{ReLU()})
	if err != nil {
		t.Fatalf("could not construct network: %v", err)
	}

	want := map[string]tensor.Shape{
		"layer0.weight": {3, 5},
		"layer0.bias":   {1, 5},
		"layer1.weight": {5, 2},
		"layer1.bias":   {1, 2},
	}

	learnables := net.Learnables()
	if len(learnables) != len(want) {
		t.Fatalf("wrong number of learnables\n\twant(%v)\n\thave(%v)",
			len(want), len(learnables))
	}
	for _, node := range learnables {
		shape, ok := want[node.Name()]
		if !ok {
			t.Errorf("unexpected parameter %v", node.Name())
			continue
		}
		if !node.Shape().Eq(shape) {
			t.Errorf("%v has wrong shape\n\twant(%v)\n\thave(%v)",
				node.Name(), shape, node.Shape())
		}
	}
}

func TestMLPInvalidArguments(t *testing.T) {
	g := G.NewGraph()

	// One activation for two hidden layers
	_, err := NewMLP(3, 1, 2, g, []int{5, 5}, []bool{true, true},
		G.GlorotU(1.0), []*Activation{ReLU()})
	if err == nil {
		t.Error("expected an error for mismatched activations")
	}

	// One bias flag for two hidden layers
	_, err = NewMLP(3, 1, 2, g, []int{5, 5}, []bool{true}, G.GlorotU(1.0),
		[]*Activation{ReLU(), ReLU()})
	if err == nil {
		t.Error("expected an error for mismatched biases")
	}
}

func TestMLPForward(t *testing.T) {
	g := G.NewGraph()
	net, err := NewMLP(2, 1, 3, g, []int{4}, []bool{true}, G.GlorotU(1.0),
		[]*Activation{TanH()})
	if err != nil {
		t.Fatalf("could not construct network: %v", err)
	}

	if err := net.SetInput([]float64{0.5, -0.5}); err != nil {
		t.Fatalf("could not set input: %v", err)
	}

	vm := G.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		t.Fatalf("could not run forward pass: %v", err)
	}

	out := net.Output()
	if out == nil {
		t.Fatal("no output after forward pass")
	}
	if !out.Shape().Eq(tensor.Shape{1, 3}) {
		t.Errorf("wrong output shape\n\twant(%v)\n\thave(%v)",
			tensor.Shape{1, 3}, out.Shape())
	}
}

func TestLSTMCellParameterNames(t *testing.T) {
	g := G.NewGraph()
	cell, err := NewLSTMCell(3, 4, 1, g, G.GlorotU(1.0))
	if err != nil {
		t.Fatalf("could not construct cell: %v", err)
	}

	want := map[string]tensor.Shape{
		"lstm.weight_ih": {3, 16},
		"lstm.weight_hh": {4, 16},
		"lstm.bias":      {1, 16},
	}

	learnables := cell.Learnables()
	if len(learnables) != len(want) {
		t.Fatalf("wrong number of learnables\n\twant(%v)\n\thave(%v)",
			len(want), len(learnables))
	}
	for _, node := range learnables {
		shape, ok := want[node.Name()]
		if !ok {
			t.Errorf("unexpected parameter %v", node.Name())
			continue
		}
		if !node.Shape().Eq(shape) {
			t.Errorf("%v has wrong shape\n\twant(%v)\n\thave(%v)",
				node.Name(), shape, node.Shape())
		}
	}
}

func TestLSTMCellForward(t *testing.T) {
	g := G.NewGraph()
	cell, err := NewLSTMCell(2, 3, 1, g, G.GlorotU(1.0))
	if err != nil {
		t.Fatalf("could not construct cell: %v", err)
	}

	if err := cell.SetInput([]float64{0.5, -0.5}); err != nil {
		t.Fatalf("could not set input: %v", err)
	}
	if err := cell.SetState(make([]float64, 3), make([]float64, 3)); err != nil {
		t.Fatalf("could not set state: %v", err)
	}

	vm := G.NewTapeMachine(g)
	defer vm.Close()
	if err := vm.RunAll(); err != nil {
		t.Fatalf("could not run forward pass: %v", err)
	}

	hidden := cell.Hidden()
	if hidden == nil {
		t.Fatal("no hidden state after forward pass")
	}
	if !hidden.Shape().Eq(tensor.Shape{1, 3}) {
		t.Errorf("wrong hidden shape\n\twant(%v)\n\thave(%v)",
			tensor.Shape{1, 3}, hidden.Shape())
	}

	// Hidden values are bounded by the output gate and tanh
	data := hidden.Data().([]float64)
	for i, val := range data {
		if val < -1.0 || val > 1.0 {
			t.Errorf("hidden value %v out of range: %v", i, val)
		}
	}
}
