// Package types defines the small set of interfaces shared across dotsetup
// packages, most importantly the FS abstraction used by the copier, the
// repository cloner and the requirements reader.
package types
