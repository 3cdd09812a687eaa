//go:build !debug

package borrow

// assertPartition is a no-op in production.
// Enable with -tags debug for runtime checks.
func assertPartition(string, *Token, *Token, *Token) {}
