// Package features holds the acceptance scenarios run by `wed run` when no
// feature path is given.
package features

import "embed"

// FS contains the .feature files of this directory at its root.
//
//go:embed *.feature
var FS embed.FS
