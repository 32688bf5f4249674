package solver

import "svw.info/make24/internal/domain"

// orderings holds the 24 index permutations of four positions.
// Duplicate numbers are not collapsed; every position order is visited.
var orderings = permutations(4)

func permutations(n int) [][]int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	var out [][]int
	var rec func(k int)
	rec = func(k int) {
		if k == n {
			out = append(out, append([]int(nil), idx...))
			return
		}
		for i := k; i < n; i++ {
			idx[k], idx[i] = idx[i], idx[k]
			rec(k + 1)
			idx[k], idx[i] = idx[i], idx[k]
		}
	}
	rec(0)
	return out
}

// evalShape evaluates a op1 b op2 c op3 d grouped by s. ok is false
// when any division along the way has a zero divisor.
func evalShape(s domain.Shape, a, b, c, d float64, op1, op2, op3 domain.Operator) (float64, bool) {
	var x, y float64
	var ok bool
	switch s {
	case domain.ShapeLeftChain: // ((a op1 b) op2 c) op3 d
		if x, ok = op1.Apply(a, b); !ok {
			return 0, false
		}
		if y, ok = op2.Apply(x, c); !ok {
			return 0, false
		}
		return op3.Apply(y, d)
	case domain.ShapeLeftInner: // (a op1 (b op2 c)) op3 d
		if x, ok = op2.Apply(b, c); !ok {
			return 0, false
		}
		if y, ok = op1.Apply(a, x); !ok {
			return 0, false
		}
		return op3.Apply(y, d)
	case domain.ShapeRightInner: // a op1 ((b op2 c) op3 d)
		if x, ok = op2.Apply(b, c); !ok {
			return 0, false
		}
		if y, ok = op3.Apply(x, d); !ok {
			return 0, false
		}
		return op1.Apply(a, y)
	case domain.ShapeRightChain: // a op1 (b op2 (c op3 d))
		if x, ok = op3.Apply(c, d); !ok {
			return 0, false
		}
		if y, ok = op2.Apply(b, x); !ok {
			return 0, false
		}
		return op1.Apply(a, y)
	case domain.ShapeBalanced: // (a op1 b) op2 (c op3 d)
		if x, ok = op1.Apply(a, b); !ok {
			return 0, false
		}
		if y, ok = op3.Apply(c, d); !ok {
			return 0, false
		}
		return op2.Apply(x, y)
	}
	return 0, false
}

// searchOrdering tries every operator triple and shape for one fixed
// order of operands. It returns on the first tree equal to 24 and
// reports how many trees it evaluated.
func searchOrdering(v [4]float64) (found bool, evaluated int) {
	for _, op1 := range domain.Operators {
		for _, op2 := range domain.Operators {
			for _, op3 := range domain.Operators {
				for _, s := range domain.Shapes {
					evaluated++
					r, ok := evalShape(s, v[0], v[1], v[2], v[3], op1, op2, op3)
					if ok && domain.Equals24(r) {
						return true, evaluated
					}
				}
			}
		}
	}
	return false, evaluated
}

func arrange(q domain.Quadruple, order []int) [4]float64 {
	return [4]float64{
		float64(q[order[0]]),
		float64(q[order[1]]),
		float64(q[order[2]]),
		float64(q[order[3]]),
	}
}
