package main

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls [DIR]",
	Short: "List .env files in a directory tree",
	Long: `Ls walks DIR and its subdirectories for every file whose name starts
with ".env" (.env, .env.keys, .env.production, and so on), printing the
matches sorted lexicographically. DIR defaults to the current directory.`,
	Args:    cobra.MaximumNArgs(1),
	Example: `  dotenvx ls
  dotenvx ls ./config`,
	RunE: runLs,
}

func init() {
	rootCmd.AddCommand(lsCmd)
}

func runLs(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	names, err := findEnvFiles(dir)
	if err != nil {
		return err
	}

	if len(names) == 0 {
		fmt.Printf("No .env files found in %s\n", dir)
		return nil
	}

	fmt.Printf("Found %d .env file(s):\n", len(names))
	for _, name := range names {
		fmt.Printf("  %s\n", name)
	}
	return nil
}

// findEnvFiles walks dir recursively and returns every path whose base
// name starts with ".env", sorted lexicographically.
func findEnvFiles(dir string) ([]string, error) {
	var matches []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasPrefix(d.Name(), ".env") {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(matches)
	return matches, nil
}
