//go:build !race

package loginfield

func passwordHashCost() int {
	return 12
}
