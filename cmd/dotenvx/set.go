package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/logger"
	"github.com/fabianopinto/dotenvx/rewrite"
)

var (
	setEnvFile  string
	setKeysFile string
	setKeyName  string
	setPlain    bool
)

var setCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a single variable in an .env file",
	Long: `Set writes KEY=VALUE into the target .env file, creating the file if it
doesn't exist. By default the value is encrypted against the file's
public key (generating and persisting a fresh keypair if none exists
yet, and failing if the keys file already holds a private key under
--key-name); pass --plain to write the value unencrypted.`,
	Args:    cobra.ExactArgs(2),
	Example: `  dotenvx set API_KEY s3cr3t -f .env`,
	RunE:    runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)

	setCmd.Flags().StringVarP(&setEnvFile, "env-file", "f", defaultEnvFile(), "Path to the .env file to modify")
	setCmd.Flags().StringVarP(&setKeysFile, "keys-file", "k", projectConfig.DefaultKeysFile, "Path to the .env.keys file (default: sibling .env.keys)")
	setCmd.Flags().StringVar(&setKeyName, "key-name", projectConfig.DefaultKeyName, "Env var name under which the private key is stored/resolved")
	setCmd.Flags().BoolVar(&setPlain, "plain", false, "Write the value unencrypted")
}

func runSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]

	if err := rewrite.SetKey(setEnvFile, key, value, setKeysFile, setKeyName, setPlain); err != nil {
		return err
	}

	log.Info("set variable", logger.String("path", setEnvFile), logger.String("key", key))
	fmt.Printf("set %s in %s\n", key, setEnvFile)
	return nil
}
