// Package repository declares the login property on a bun model and
// stores accounts keyed by it.
package repository
