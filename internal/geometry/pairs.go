package geometry

const (
	// MinPairSize is the recursion base case: sizes at or below it do not expand.
	MinPairSize = 4.0
	// DefaultBudget caps the shapes one recursive pair instance may emit.
	// The seed pair is always emitted, whatever the budget.
	DefaultBudget = 5000
)

// PairResult is the output of a recursive pair generator.
type PairResult struct {
	Shapes []Ellipse
	// Expansions counts the recursive calls made below the seed level.
	Expansions int
	// Truncated is set when the budget stopped the expansion early.
	Truncated bool
}

type pairNode struct {
	center Point
	rx, ry float64
}

// CirclePairs emits, for every level, two circles of radius r centered at
// x±r/2 and recurses on both with r/2 while r > MinPairSize.
func CirclePairs(center Point, radius float64, budget int) PairResult {
	return pairs(center, radius, radius, budget, func(n pairNode) bool {
		return n.rx > MinPairSize
	})
}

// EllipsePairs is CirclePairs with independent width and height. It keeps
// recursing while both exceed MinPairSize, halving both each level.
func EllipsePairs(center Point, width, height float64, budget int) PairResult {
	return pairs(center, width, height, budget, func(n pairNode) bool {
		return n.rx > MinPairSize && n.ry > MinPairSize
	})
}

// pairs walks the recursion breadth first so that when the budget runs out
// the finest level is the one that gets cut.
func pairs(center Point, rx, ry float64, budget int, expand func(pairNode) bool) PairResult {
	if budget <= 0 {
		budget = DefaultBudget
	}
	var res PairResult
	queue := []pairNode{{center, rx, ry}}
	for len(queue) > 0 {
		var next []pairNode
		for _, n := range queue {
			if len(res.Shapes) > 0 && len(res.Shapes)+2 > budget {
				res.Truncated = true
				return res
			}
			left := Point{n.center.X - n.rx/2, n.center.Y}
			right := Point{n.center.X + n.rx/2, n.center.Y}
			res.Shapes = append(res.Shapes,
				Ellipse{Center: right, RX: n.rx, RY: n.ry},
				Ellipse{Center: left, RX: n.rx, RY: n.ry},
			)
			if !expand(n) {
				continue
			}
			next = append(next,
				pairNode{right, n.rx / 2, n.ry / 2},
				pairNode{left, n.rx / 2, n.ry / 2},
			)
		}
		res.Expansions += len(next)
		queue = next
	}
	return res
}
