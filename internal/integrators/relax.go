package integrators

import (
	"math"

	"github.com/san-kum/simlab/internal/dynamo"
)

// Relaxation moves every angle of a cols×rows lattice a fraction alpha of the
// shortest arc toward the circular mean of its up to eight neighbours. The
// mean comes from dynamo.MeanDirection over sines and cosines cached once
// per sweep. Edges have fewer neighbours; space does not wrap.
type Relaxation struct {
	cos, sin []float64
}

func NewRelaxation() *Relaxation {
	return &Relaxation{}
}

func (r *Relaxation) ensureScratch(n int) {
	if len(r.cos) != n {
		r.cos = make([]float64, n)
		r.sin = make([]float64, n)
	}
}

// Sweep reads only cur and writes every cell of next. The caller swaps the
// two slices afterwards; updating in place would make the result depend on
// row order.
func (r *Relaxation) Sweep(cur, next []float64, cols, rows int, alpha float64) {
	n := cols * rows
	if len(cur) < n || len(next) < n {
		return
	}
	r.ensureScratch(n)
	for i := 0; i < n; i++ {
		r.sin[i], r.cos[i] = math.Sincos(cur[i])
	}
	alpha = dynamo.Clamp(alpha, 0, 1)

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			idx := y*cols + x
			var sx, sy float64
			count := 0
			for dy := -1; dy <= 1; dy++ {
				ny := y + dy
				if ny < 0 || ny >= rows {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := x + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= cols {
						continue
					}
					j := ny*cols + nx
					sx += r.cos[j]
					sy += r.sin[j]
					count++
				}
			}

			theta := cur[idx]
			mean, ok := dynamo.MeanDirection(sx, sy, count)
			if !ok {
				next[idx] = theta
				continue
			}
			next[idx] = dynamo.WrapAngle(theta + alpha*dynamo.AngleDiff(theta, mean))
		}
	}
}
