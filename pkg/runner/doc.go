// Package runner executes external processes for dotsetup.
//
// Every package manager and git invocation goes through a Runner. The
// ExecRunner starts real processes, optionally elevated with sudo; the
// DryRunRunner only logs and records what would have been executed.
// Calls block until the process exits. No timeout is applied unless the
// Command asks for one.
package runner
