package matutils

import (
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Orthonormal returns a (rows x cols) matrix with orthonormal columns
// if rows >= cols and orthonormal rows otherwise. The matrix is the Q
// factor of the QR decomposition of a matrix with standard normal
// entries drawn from src, with the sign of each column fixed by the
// corresponding diagonal entry of R so that the factorization is
// unique.
func Orthonormal(rows, cols int, src rand.Source) *mat.Dense {
	// QR requires a tall matrix; compute the transpose for wide ones
	flipped := rows < cols
	r, c := rows, cols
	if flipped {
		r, c = cols, rows
	}

	normal := distuv.Normal{Mu: 0.0, Sigma: 1.0, Src: src}
	data := make([]float64, r*c)
	for i := range data {
		data[i] = normal.Rand()
	}

	var qr mat.QR
	qr.Factorize(mat.NewDense(r, c, data))

	var qFull, rFactor mat.Dense
	qr.QTo(&qFull)
	qr.RTo(&rFactor)

	q := mat.NewDense(r, c, nil)
	for j := 0; j < c; j++ {
		sign := 1.0
		if rFactor.At(j, j) < 0 {
			sign = -1.0
		}
		for i := 0; i < r; i++ {
			q.Set(i, j, sign*qFull.At(i, j))
		}
	}

	if flipped {
		t := mat.NewDense(rows, cols, nil)
		t.Copy(q.T())
		return t
	}
	return q
}
