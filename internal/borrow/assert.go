//go:build debug

package borrow

import "fmt"

// assertPartition panics unless left and right exactly partition parent.
// Only enabled with -tags debug.
func assertPartition(method string, parent, left, right *Token) {
	if left.start != parent.start || left.end != right.start || right.end != parent.end {
		panic(fmt.Sprintf("%s: [%d, %d) + [%d, %d) does not partition [%d, %d)",
			method, left.start, left.end, right.start, right.end, parent.start, parent.end))
	}
}
