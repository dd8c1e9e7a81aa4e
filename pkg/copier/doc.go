// Package copier copies directories from the dotfiles root into the home
// directory.
//
// Top-level entries follow two rules. A directory is copied recursively
// only when nothing exists at its destination; an existing destination
// directory is left as is and never merged. A file is always copied and
// replaces any existing file of the same name. Symlinks are recreated as
// symlinks and file modes are preserved.
package copier
