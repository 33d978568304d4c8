//go:build tools

package tools

// This file tracks versions of CLI tool dependencies.
// It is not compiled into the binary.
//
// Tools in use:
// - github.com/pressly/goose/v3/cmd/goose (migrations, see the go.mod tool directive)
// - github.com/matryer/moq (service mocks, generated output is committed)
