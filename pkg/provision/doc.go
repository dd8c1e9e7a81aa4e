// Package provision runs the provisioning steps in their fixed order.
//
// A Pipeline holds named steps. Run executes each one, logs its outcome
// and continues past failures: one step failing never prevents the next
// from running. Panics inside a step are recovered and recorded as
// UNEXPECTED errors. The returned Report lists every step with its
// status, error and duration.
//
// Build assembles the standard pipeline from configuration:
//
//	kernel, update, install, clone:<name>..., copy:<name>...
package provision
