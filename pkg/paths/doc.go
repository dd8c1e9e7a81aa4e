// Package paths provides centralized path handling for dotsetup.
// It resolves the dotfiles root, expands home-relative paths and
// locates the XDG config and state directories.
package paths
