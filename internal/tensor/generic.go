package tensor

import "golang.org/x/exp/constraints"

// maxOf picks the larger of two ordered values; used by shape broadcasting
// and element-type promotion, both of which otherwise repeat the same
// two-branch comparison.
func maxOf[T constraints.Ordered](a, b T) T {
	if a > b {
		return a
	}
	return b
}
