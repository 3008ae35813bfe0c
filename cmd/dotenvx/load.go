package main

import (
	"os"

	"github.com/fabianopinto/dotenvx/dotenv"
	"github.com/fabianopinto/dotenvx/envelope"
	"github.com/fabianopinto/dotenvx/internal/dotenverr"
	"github.com/fabianopinto/dotenvx/internal/logger"
	"github.com/fabianopinto/dotenvx/keyresolve"
)

// loadEnvFiles parses and processes every path in order, merging the
// resulting maps (later files win on key collision), then opportunistically
// decrypts "encrypted:"-prefixed values. Unlike the Rewriter's file-level
// decrypt, this load path is locally tolerant: a per-value decryption
// failure is logged and the ciphertext is left in place so unrelated
// variables remain usable.
func loadEnvFiles(paths []string, keysFile, keyName string) (map[string]string, error) {
	merged := make(map[string]string)

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, dotenverr.MissingEnvFile(path)
			}
			return nil, dotenverr.IO(err)
		}

		vars, err := dotenv.ParseWithProcessing(string(content))
		if err != nil {
			return nil, err
		}
		for k, v := range vars {
			merged[k] = v
		}

		decryptValuesTolerant(merged, path, keysFile, keyName)
	}

	return merged, nil
}

func decryptValuesTolerant(vars map[string]string, envFile, keysFile, keyName string) {
	if keyName == "" {
		keyName = keyresolve.DefaultKeyName
	}
	privHex, err := keyresolve.Resolve(envFile, keysFile, keyName)
	if err != nil {
		// No private key available: leave every encrypted value as-is.
		return
	}

	for key, value := range vars {
		if key == "DOTENV_PUBLIC_KEY" {
			continue
		}
		plain, err := envelope.Decrypt(value, privHex)
		if err != nil {
			log.Warn("failed to decrypt value, leaving ciphertext in place",
				logger.String("key", key), logger.Error(err))
			continue
		}
		vars[key] = plain
	}
}
