// Package repos clones git repositories into the home directory.
//
// Cloning is an install step, not a sync: once the target directory
// exists it is never touched again, whatever its contents.
package repos
