// Package workspace prepares the output directories of a site build.
//
// Each directory is described by a Rule: files are removed except an optional
// keep-file, optionally restricted to a set of extensions so that shared
// directories (such as a public assets folder next to hand-written files)
// only lose generated artifacts. Missing directories are created.
package workspace
