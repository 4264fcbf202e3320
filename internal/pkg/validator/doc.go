// Package validator validates request payload structs.
//
// Handlers and use cases depend on the Validator interface. V10Validator backs
// it with go-playground/validator v10 and reports failures as a map keyed by
// the dotted JSON path of each offending field.
package validator
