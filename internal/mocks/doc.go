// Package mocks provides centralized mock implementations for testing.
//
// Mocks expose a function field per interface method so each test can script
// behavior inline, and record calls so tests can assert on what was sent.
//
// Usage:
//
//	import "github.com/phrazzld/braindump-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gen := mocks.NewMockGeneratorWithText(`{"tasks":[]}`)
//
//	    // Use the mock in your test...
//	}
package mocks
