// Package filesystem provides filesystem implementations for dotsetup.
//
// NewOS is the OS-backed implementation of types.FS used for all copying
// and existence checks. NewDryRun wraps another FS so that reads pass
// through and writes are only logged.
package filesystem
