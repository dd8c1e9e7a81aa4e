// Package packages drives the OS package manager.
//
// A Manager wraps a runner.Runner and the package_manager section of the
// configuration. It provides the three package steps:
//
//   - CheckKernelUpdates lists upgradable packages and warns about kernel ones
//   - UpdateSystem runs update, upgrade, autoremove and autoclean in order
//   - InstallRequirements installs every package of a requirements file in
//     one batched invocation
//
// Requirements files hold one package name per line. Blank lines and lines
// starting with the comment prefix are ignored.
package packages
