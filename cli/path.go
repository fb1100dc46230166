package cli

import (
	"os"
	"path/filepath"
	"sync"
)

// settingsBase is the base name of the settings file searched for in the
// working directory.
const settingsBase = "settings.json"

// logBase is the base name of the mirror log file.
const logBase = "gram.log"

// workDir returns the current working directory, falling back to "." if it
// cannot be determined.
var workDir = sync.OnceValue(
	func() string {
		dir, err := os.Getwd()
		if err != nil {
			dir = "."
		}

		return dir
	},
)

// settingsPath returns the path to the settings file in the working directory.
func settingsPath() string {
	return filepath.Join(workDir(), settingsBase)
}

// logPath returns the path to the mirror log file in the working directory.
func logPath() string {
	return filepath.Join(workDir(), logBase)
}
