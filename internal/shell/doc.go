// Package shell tells the user how to put the binaries directory on PATH.
//
// pour never edits shell rc files. After an install it checks whether the
// target directory is on PATH and, if not, prints the line to add for the
// user's shell.
package shell
