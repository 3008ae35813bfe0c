package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/logger"
	"github.com/fabianopinto/dotenvx/rewrite"
)

var (
	decryptEnvFile  string
	decryptKeysFile string
	decryptKeyName  string
)

var decryptCmd = &cobra.Command{
	Use:   "decrypt",
	Short: "Decrypt values in an .env file in place",
	Long: `Decrypt replaces every "encrypted:"-prefixed value in an .env file with
its plaintext, using the private key resolved from --keys-file, the
sibling .env.keys, or the process environment. This operation is strict:
the first decryption failure aborts the rewrite and the file is left
untouched.`,
	Example: `  dotenvx decrypt -f .env`,
	RunE:    runDecrypt,
}

func init() {
	rootCmd.AddCommand(decryptCmd)

	decryptCmd.Flags().StringVarP(&decryptEnvFile, "env-file", "f", defaultEnvFile(), "Path to the .env file to decrypt")
	decryptCmd.Flags().StringVarP(&decryptKeysFile, "keys-file", "k", projectConfig.DefaultKeysFile, "Path to the .env.keys file (default: sibling .env.keys)")
	decryptCmd.Flags().StringVar(&decryptKeyName, "key-name", projectConfig.DefaultKeyName, "Env var name under which the private key is stored/resolved")
}

func runDecrypt(cmd *cobra.Command, args []string) error {
	if err := rewrite.DecryptFile(decryptEnvFile, decryptKeysFile, decryptKeyName); err != nil {
		return err
	}

	log.Info("decrypted .env file", logger.String("path", decryptEnvFile))
	fmt.Printf("decrypted %s\n", decryptEnvFile)
	return nil
}
