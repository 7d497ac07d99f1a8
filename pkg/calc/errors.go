package calc

import "errors"

var (
	// Type resolution errors 🔎
	ErrUnknownType  = errors.New("❌ invalid variable type")
	ErrUnknownModel = errors.New("❌ unknown calculator model")

	// Naming errors 🏷️
	ErrUntokenizable = errors.New("❌ name cannot be tokenized")
	ErrEmptyName     = errors.New("❌ empty variable name")
)
