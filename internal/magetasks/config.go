package magetasks

import (
	"os"
	"path/filepath"
)

var (
	// ModulePath is the Go module path.
	ModulePath = "github.com/dkoosis/ansifold"

	// MainPackage is the package of the ansifold binary.
	MainPackage = "./cmd/ansifold"

	// BinPath is the output path for the built binary.
	BinPath = "./bin/ansifold"

	// CoverProfile is where TestCoverage writes its profile.
	CoverProfile = "coverage.out"

	// ProjectRoot is the root directory of the project.
	ProjectRoot string
)

// Initialize records the project root and creates the bin directory.
// Call it from the Magefile init function.
func Initialize() error {
	var err error
	ProjectRoot, err = os.Getwd()
	if err != nil {
		return err
	}
	return os.MkdirAll(filepath.Join(ProjectRoot, filepath.Dir(BinPath)), 0o750)
}
