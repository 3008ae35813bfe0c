package main

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
)

var (
	runEnvFiles []string
	runKeysFile string
	runKeyName  string
	runOverload bool
)

var runCmd = &cobra.Command{
	Use:   "run [flags] -- CMD [ARGS...]",
	Short: "Run a command with the decrypted environment injected",
	Long: `Run loads and decrypts the given .env file(s), merges the result with
the process environment — with --overload, loaded values take priority
over pre-existing OS values; without it, OS values win — and spawns CMD
with that merged environment, propagating its exit code.`,
	Args: cobra.MinimumNArgs(1),
	Example: `  dotenvx run -f .env -- node server.js
  dotenvx run -f .env --overload -- printenv API_KEY`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringSliceVarP(&runEnvFiles, "env-file", "f", projectConfig.DefaultEnvFiles, "Path(s) to .env file(s) to load (repeatable)")
	runCmd.Flags().StringVarP(&runKeysFile, "keys-file", "k", projectConfig.DefaultKeysFile, "Path to the .env.keys file (default: sibling .env.keys)")
	runCmd.Flags().StringVar(&runKeyName, "key-name", projectConfig.DefaultKeyName, "Env var name under which the private key is stored/resolved")
	runCmd.Flags().BoolVar(&runOverload, "overload", false, "Let loaded values shadow existing OS environment values")
}

func runRun(cmd *cobra.Command, args []string) error {
	vars, err := loadEnvFiles(runEnvFiles, runKeysFile, runKeyName)
	if err != nil {
		return err
	}

	childEnv := mergeEnv(os.Environ(), vars, runOverload)

	child := exec.Command(args[0], args[1:]...)
	child.Env = childEnv
	child.Stdin = os.Stdin
	child.Stdout = os.Stdout
	child.Stderr = os.Stderr

	if err := child.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			os.Exit(exitErr.ExitCode())
		}
		return dotenverr.CommandFailed("failed to start command", err)
	}
	return nil
}

// mergeEnv composes the child's environment from the baseline OS
// environment and the loaded map. overload=true lets loaded values shadow
// OS values; overload=false gives OS values priority.
func mergeEnv(osEnv []string, loaded map[string]string, overload bool) []string {
	merged := make(map[string]string, len(osEnv)+len(loaded))
	for _, kv := range osEnv {
		key, value := splitEnvPair(kv)
		merged[key] = value
	}

	for k, v := range loaded {
		if overload {
			merged[k] = v
		} else if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}

	result := make([]string, 0, len(merged))
	for k, v := range merged {
		result = append(result, k+"="+v)
	}
	return result
}

func splitEnvPair(kv string) (string, string) {
	for i := 0; i < len(kv); i++ {
		if kv[i] == '=' {
			return kv[:i], kv[i+1:]
		}
	}
	return kv, ""
}
