package main

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
)

var (
	printenvEnvFiles []string
	printenvKeysFile string
	printenvKeyName  string
	printenvFormat   string
)

var printenvCmd = &cobra.Command{
	Use:   "printenv",
	Short: "Print decrypted variables in a shell-eval format",
	Long: `Printenv loads and decrypts the given .env file(s) and prints the
result in a format suitable for evaluation by a shell: bash/sh
("export KEY='VALUE'"), fish ("set -gx KEY 'VALUE'"), powershell
("$env:KEY=\"VALUE\""), or json.`,
	Example: `  eval "$(dotenvx printenv -f .env)"
  dotenvx printenv -f .env --format fish | source`,
	RunE: runPrintenv,
}

func init() {
	rootCmd.AddCommand(printenvCmd)

	printenvCmd.Flags().StringSliceVarP(&printenvEnvFiles, "env-file", "f", projectConfig.DefaultEnvFiles, "Path(s) to .env file(s) to load (repeatable)")
	printenvCmd.Flags().StringVarP(&printenvKeysFile, "keys-file", "k", projectConfig.DefaultKeysFile, "Path to the .env.keys file (default: sibling .env.keys)")
	printenvCmd.Flags().StringVar(&printenvKeyName, "key-name", projectConfig.DefaultKeyName, "Env var name under which the private key is stored/resolved")
	printenvCmd.Flags().StringVar(&printenvFormat, "format", "bash", "Output format: bash, fish, powershell, json")
}

func runPrintenv(cmd *cobra.Command, args []string) error {
	vars, err := loadEnvFiles(printenvEnvFiles, printenvKeysFile, printenvKeyName)
	if err != nil {
		return err
	}
	delete(vars, "DOTENV_PUBLIC_KEY")

	switch printenvFormat {
	case "json":
		return printJSON(vars)
	case "fish":
		printFish(vars)
	case "powershell", "ps1":
		printPowershell(vars)
	case "bash", "sh", "":
		printBash(vars)
	default:
		return dotenverr.New(dotenverr.CodeParseError, "unsupported printenv format: "+printenvFormat, nil)
	}
	return nil
}

func sortedKeys(vars map[string]string) []string {
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func printBash(vars map[string]string) {
	for _, key := range sortedKeys(vars) {
		escaped := strings.ReplaceAll(vars[key], "'", `'\''`)
		fmt.Printf("export %s='%s'\n", key, escaped)
	}
}

func printFish(vars map[string]string) {
	for _, key := range sortedKeys(vars) {
		escaped := strings.ReplaceAll(vars[key], "'", `\'`)
		fmt.Printf("set -gx %s '%s'\n", key, escaped)
	}
}

func printPowershell(vars map[string]string) {
	for _, key := range sortedKeys(vars) {
		escaped := strings.ReplaceAll(vars[key], `"`, "`\"")
		fmt.Printf("$env:%s=\"%s\"\n", key, escaped)
	}
}

func printJSON(vars map[string]string) error {
	data, err := json.MarshalIndent(vars, "", "  ")
	if err != nil {
		return dotenverr.IO(err)
	}
	fmt.Println(string(data))
	return nil
}
