// Command dotenvx generates keypairs, encrypts and decrypts .env values in
// place, reads and writes individual variables, and runs a child process
// with the decrypted environment injected.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/config"
	"github.com/fabianopinto/dotenvx/internal/logger"
)

var log = logger.NewDefaultLogger()

// projectConfig is the optional ".dotenvx.yaml" project config, loaded once
// at startup. Load tolerates a missing file by returning defaults, so this
// is always non-nil. Each subcommand's init() reads its flag defaults
// (default env file, default keys file, default key name) directly off
// this value, rather than hardcoding its own.
var projectConfig = loadProjectConfig()

func loadProjectConfig() *config.Config {
	cfg, err := config.Load(".dotenvx.yaml")
	if err != nil {
		log.Warn("failed to load project config, using defaults", logger.Error(err))
		return &config.Config{
			DefaultEnvFiles: []string{".env"},
			DefaultKeyName:  "DOTENV_PRIVATE_KEY",
			Logging:         &config.LoggingConfig{Level: "info"},
		}
	}
	return cfg
}

// defaultEnvFile returns the first configured default env file, for
// single-file commands (encrypt, decrypt, set).
func defaultEnvFile() string {
	return projectConfig.DefaultEnvFiles[0]
}

var rootCmd = &cobra.Command{
	Use:   "dotenvx",
	Short: "dotenvx - a better dotenv: public-key encryption for .env files",
	Long: `dotenvx manages .env files with public-key encryption so that secrets
can be committed alongside code. It supports key generation, in-place
encrypt/decrypt, single-variable get/set, listing, and running a child
process with a decrypted environment injected.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	applyProjectConfig()

	// Subcommands register themselves in their own init():
	// - keypair.go: keypairCmd
	// - encrypt.go: encryptCmd
	// - decrypt.go: decryptCmd
	// - set.go: setCmd
	// - get.go: getCmd
	// - ls.go: lsCmd
	// - run.go: runCmd
	// - printenv.go: printenvCmd
}

// applyProjectConfig uses the already-loaded projectConfig to set the
// default logger level.
func applyProjectConfig() {
	switch strings.ToUpper(projectConfig.Logging.Level) {
	case "DEBUG":
		log.SetLevel(logger.DebugLevel)
	case "WARN":
		log.SetLevel(logger.WarnLevel)
	case "ERROR":
		log.SetLevel(logger.ErrorLevel)
	default:
		log.SetLevel(logger.InfoLevel)
	}
}
