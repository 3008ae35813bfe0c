package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/logger"
	"github.com/fabianopinto/dotenvx/rewrite"
)

var (
	encryptEnvFile    string
	encryptKeysFile   string
	encryptKeyName    string
	encryptIncludeKey []string
	encryptExcludeKey []string
)

var encryptCmd = &cobra.Command{
	Use:   "encrypt",
	Short: "Encrypt values in an .env file in place",
	Long: `Encrypt replaces eligible plaintext values in an .env file with
"encrypted:" tokens sealed to a file-scoped public key. If the file has no
DOTENV_PUBLIC_KEY yet, a fresh keypair is generated and its private half is
persisted to the keys file (default: sibling .env.keys); if that keys file
already holds a private key under --key-name, encrypt fails instead.`,
	Example: `  dotenvx encrypt -f .env
  dotenvx encrypt -f .env --include-key API_KEY --include-key DB_PASSWORD`,
	RunE: runEncrypt,
}

func init() {
	rootCmd.AddCommand(encryptCmd)

	encryptCmd.Flags().StringVarP(&encryptEnvFile, "env-file", "f", defaultEnvFile(), "Path to the .env file to encrypt")
	encryptCmd.Flags().StringVarP(&encryptKeysFile, "keys-file", "k", projectConfig.DefaultKeysFile, "Path to the .env.keys file (default: sibling .env.keys)")
	encryptCmd.Flags().StringVar(&encryptKeyName, "key-name", projectConfig.DefaultKeyName, "Env var name under which the private key is stored/resolved")
	encryptCmd.Flags().StringSliceVar(&encryptIncludeKey, "include-key", nil, "Encrypt only these keys (repeatable)")
	encryptCmd.Flags().StringSliceVar(&encryptExcludeKey, "exclude-key", nil, "Encrypt all keys except these (repeatable)")
}

func runEncrypt(cmd *cobra.Command, args []string) error {
	opts := rewrite.EncryptOptions{
		KeysFilePath: encryptKeysFile,
		KeyName:      encryptKeyName,
		IncludeKeys:  encryptIncludeKey,
		ExcludeKeys:  encryptExcludeKey,
	}
	if err := rewrite.EncryptFile(encryptEnvFile, opts); err != nil {
		return err
	}

	log.Info("encrypted .env file", logger.String("path", encryptEnvFile))
	fmt.Printf("encrypted %s\n", encryptEnvFile)
	return nil
}
