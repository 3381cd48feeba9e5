// Package magetasks implements the build, test and lint targets of the
// ansifold Magefile.
package magetasks
