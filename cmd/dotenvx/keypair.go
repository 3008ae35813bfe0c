package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/keypair"
)

var keypairCmd = &cobra.Command{
	Use:   "keypair",
	Short: "Generate a new secp256k1 keypair",
	Long: `Generate a new secp256k1 keypair and print its hex-encoded private
and public halves. The keypair is not persisted anywhere; pair this with
"dotenvx set" or redirect the private key into an .env.keys file yourself.`,
	Example: `  dotenvx keypair`,
	RunE:    runKeypair,
}

func init() {
	rootCmd.AddCommand(keypairCmd)
}

func runKeypair(cmd *cobra.Command, args []string) error {
	kp, err := keypair.Generate()
	if err != nil {
		return err
	}

	fmt.Printf("DOTENV_PUBLIC_KEY=%q\n", kp.PublicHex())
	fmt.Printf("DOTENV_PRIVATE_KEY=%q\n", kp.PrivateHex())
	return nil
}
