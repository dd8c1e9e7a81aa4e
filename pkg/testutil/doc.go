// Package testutil provides utilities for testing dotsetup components.
//
// Key components:
//   - FakeRunner: scripted runner.Runner that records every command
//   - MockRunner: testify mock for call-by-call expectations
//   - WriteTree / ReadTree: declarative directory fixtures on a real
//     temp directory
//
// Usage guidelines:
//   - Tests never start package managers or git; use FakeRunner
//   - Filesystem tests run against t.TempDir()
//   - All test data should be defined inline, not in external files
package testutil
