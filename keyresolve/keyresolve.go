// Package keyresolve locates a private decryption key across the sources
// a dotenvx operator conventionally uses: an explicit keys file, a sibling
// ".env.keys" file, and the process environment, in that precedence order.
package keyresolve

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
)

// DefaultKeyName is the key name consulted when the caller has no
// file-specific override (e.g. multi-environment setups use
// "DOTENV_PRIVATE_KEY_PRODUCTION" instead).
const DefaultKeyName = "DOTENV_PRIVATE_KEY"

// Resolve locates the value of keyName, checking every source in order and
// returning the first that has it:
//
//  1. keysFilePath, if non-empty and it exists.
//  2. the sibling "<dir of envFilePath>/.env.keys", if it exists.
//  3. the process environment variable keyName.
//
// All three are always consulted in turn — an explicit keysFilePath that
// exists but lacks keyName does not short-circuit the sibling or
// process-env lookups. A total miss returns
// dotenverr.MissingPrivateKey(keyName).
func Resolve(envFilePath, keysFilePath, keyName string) (string, error) {
	if keyName == "" {
		keyName = DefaultKeyName
	}

	if keysFilePath != "" {
		if value, ok, err := readKeyFromFile(keysFilePath, keyName); err != nil {
			return "", err
		} else if ok {
			return value, nil
		}
	}

	sibling := filepath.Join(filepath.Dir(envFilePath), ".env.keys")
	if sibling != keysFilePath {
		if value, ok, err := readKeyFromFile(sibling, keyName); err != nil {
			return "", err
		} else if ok {
			return value, nil
		}
	}

	if value, ok := os.LookupEnv(keyName); ok && value != "" {
		return value, nil
	}

	return "", dotenverr.MissingPrivateKey(keyName)
}

// readKeyFromFile reads path and extracts keyName= if present. A missing
// file is not an error here — it simply means this source didn't have the
// key, so the caller falls through to the next source.
func readKeyFromFile(path, keyName string) (string, bool, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, dotenverr.IO(err)
	}
	value, ok := extractKey(string(content), keyName)
	return value, ok, nil
}

// extractKey scans content line by line; the first line whose trimmed
// form starts with "keyName=" wins. The value portion is unquoted by
// stripping a single pair of matching outer '"' or '\'', if present.
func extractKey(content, keyName string) (string, bool) {
	prefix := keyName + "="
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		trimmed = strings.TrimPrefix(trimmed, "export ")
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		value := trimmed[len(prefix):]
		return unquote(value), true
	}
	return "", false
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
