//go:build race

package loginfield

import "golang.org/x/crypto/bcrypt"

// race builds are slow enough already
func passwordHashCost() int {
	return bcrypt.DefaultCost
}
