// Package uid generates identifiers for correlation IDs and message IDs.
package uid

// StringID produces unique string identifiers.
type StringID interface {
	Generate() string
}
