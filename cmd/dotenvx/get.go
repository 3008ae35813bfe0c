package main

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
)

var (
	getEnvFiles []string
	getKeysFile string
	getKeyName  string
	getJSON     bool
)

var getCmd = &cobra.Command{
	Use:   "get [KEY]",
	Short: "Print a decrypted variable, or all variables",
	Long: `Get loads and decrypts the variables in the given .env file(s) and
prints the requested KEY's value. With no KEY, prints every variable,
sorted lexicographically by key; --json switches the multi-variable form
to a JSON object.`,
	Args:    cobra.MaximumNArgs(1),
	Example: `  dotenvx get API_KEY -f .env
  dotenvx get --json -f .env`,
	RunE: runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)

	getCmd.Flags().StringSliceVarP(&getEnvFiles, "env-file", "f", projectConfig.DefaultEnvFiles, "Path(s) to .env file(s) to load (repeatable)")
	getCmd.Flags().StringVarP(&getKeysFile, "keys-file", "k", projectConfig.DefaultKeysFile, "Path to the .env.keys file (default: sibling .env.keys)")
	getCmd.Flags().StringVar(&getKeyName, "key-name", projectConfig.DefaultKeyName, "Env var name under which the private key is stored/resolved")
	getCmd.Flags().BoolVar(&getJSON, "json", false, "Print all variables as a JSON object")
}

func runGet(cmd *cobra.Command, args []string) error {
	vars, err := loadEnvFiles(getEnvFiles, getKeysFile, getKeyName)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		key := args[0]
		value, ok := vars[key]
		if !ok {
			return dotenverr.New(dotenverr.CodeMissingEnvFile, "no such variable: "+key, nil)
		}
		fmt.Println(value)
		return nil
	}

	if getJSON {
		data, err := json.MarshalIndent(vars, "", "  ")
		if err != nil {
			return dotenverr.IO(err)
		}
		fmt.Println(string(data))
		return nil
	}

	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("%s=%s\n", k, vars[k])
	}
	return nil
}
