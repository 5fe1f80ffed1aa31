// Package app holds process-wide identifiers.
package app

// Name is the binary name and the directory name under the user config dir.
const Name = "timeflow"
