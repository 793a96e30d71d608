package testutil

import (
	"os"
	"testing"
)

// BuildEnvVars are the process variables packwise reads its flags from
var BuildEnvVars = []string{"NODE_ENV", "PROGRESS", "HSERVER"}

// ClearBuildEnv unsets the build flags for the rest of the test and
// restores them afterwards
func ClearBuildEnv(t *testing.T) {
	t.Helper()
	for _, name := range BuildEnvVars {
		t.Setenv(name, "")
		_ = os.Unsetenv(name)
	}
}
