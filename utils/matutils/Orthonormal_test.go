package matutils

import (
	"math"
	"testing"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
)

const tolerance = 1e-12

// checkIdentity checks that m is approximately the identity
func checkIdentity(t *testing.T, m *mat.Dense) {
	rows, cols := m.Dims()
	if rows != cols {
		t.Fatalf("product is not square: (%v, %v)", rows, cols)
	}
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if math.Abs(m.At(i, j)-want) > tolerance {
				t.Fatalf("product is not the identity:\n%v", Format(m))
			}
		}
	}
}

func TestOrthonormalTall(t *testing.T) {
	q := Orthonormal(8, 3, rand.NewSource(42))

	rows, cols := q.Dims()
	if rows != 8 || cols != 3 {
		t.Fatalf("wrong shape\n\twant(8, 3)\n\thave(%v, %v)", rows, cols)
	}

	// Columns should be orthonormal: qᵀq = I
	var product mat.Dense
	product.Mul(q.T(), q)
	checkIdentity(t, &product)
}

func TestOrthonormalWide(t *testing.T) {
	q := Orthonormal(3, 8, rand.NewSource(42))

	rows, cols := q.Dims()
	if rows != 3 || cols != 8 {
		t.Fatalf("wrong shape\n\twant(3, 8)\n\thave(%v, %v)", rows, cols)
	}

	// Rows should be orthonormal: qqᵀ = I
	var product mat.Dense
	product.Mul(q, q.T())
	checkIdentity(t, &product)
}

func TestOrthonormalDeterministic(t *testing.T) {
	a := Orthonormal(5, 5, rand.NewSource(42))
	b := Orthonormal(5, 5, rand.NewSource(42))

	if !mat.Equal(a, b) {
		t.Error("same seed should produce the same matrix")
	}
}
