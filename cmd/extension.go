package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"
)

// Environment given to extensions.
const (
	EnvConfig  = "INVERS_CONFIG"
	EnvVerbose = "INVERS_VERBOSE"
)

// RunExtension runs an external invers-<subcommand> binary found in PATH.
// It returns false if there is no such binary, and the exit code otherwise.
func RunExtension(subcommand string, args []string) (bool, int) {
	lp, err := exec.LookPath("invers-" + subcommand)
	if err != nil {
		return false, 0
	}

	cmd := exec.Command(lp, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extensionEnv()...)

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return true, exitErr.ExitCode()
		}
		fmt.Fprintf(os.Stderr, "Error executing external command %q: %v\n", lp, err)
		return true, 1
	}
	return true, 0
}

// extensionEnv passes the global flags down to extensions.
func extensionEnv() []string {
	return []string{
		EnvConfig + "=" + *configPath,
		EnvVerbose + "=" + strconv.FormatBool(*Verbose),
	}
}
