package list

import (
	"github.com/iotaledger/hive.go/constraints"
	"github.com/iotaledger/hive.go/lo"
)

// Ascending is a compare function for Sort that orders values of any ordered type smallest first.
func Ascending[T constraints.Ordered](a T, b T) int {
	return lo.Comparator(a, b)
}

// Descending is a compare function for Sort that orders values of any ordered type largest first.
func Descending[T constraints.Ordered](a T, b T) int {
	return -lo.Comparator(a, b)
}
