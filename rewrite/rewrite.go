// Package rewrite implements the format-preserving in-place editors:
// encrypting a whole file, decrypting a whole file, and setting a single
// key. Each operation is structured as a pure transducer over the ordered
// line stream the dotenv package produces — read the whole file, transform
// the line stream, write the result — so that idempotence on blank and
// comment lines, and preservation of unrelated assignments, are obvious
// properties of the code rather than incidental behavior.
package rewrite

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/fabianopinto/dotenvx/dotenv"
	"github.com/fabianopinto/dotenvx/envelope"
	"github.com/fabianopinto/dotenvx/internal/dotenverr"
	"github.com/fabianopinto/dotenvx/keypair"
	"github.com/fabianopinto/dotenvx/keyresolve"
)

// PublicKeyName is the well-known assignment key carrying the file-scoped
// public key in an encrypted .env file.
const PublicKeyName = "DOTENV_PUBLIC_KEY"

const envBanner = `#/-------------------[DOTENV_PUBLIC_KEY]--------------------/
#/            public-key encryption for .env files          /
#/       [how it works](https://dotenvx.com/encryption)     /
#/----------------------------------------------------------/
`

const keysBanner = `#/------------------!DOTENV_PRIVATE_KEYS!-------------------/
#/ private decryption keys. DO NOT commit to source control /
#/     [how it works](https://dotenvx.com/encryption)       /
#/----------------------------------------------------------/
`

// EncryptOptions configures EncryptFile.
type EncryptOptions struct {
	KeysFilePath string
	// KeyName overrides "DOTENV_PRIVATE_KEY" as the name consulted when
	// resolving and persisting the private key (multi-environment setups).
	// Empty means keyresolve.DefaultKeyName.
	KeyName     string
	IncludeKeys []string
	ExcludeKeys []string
}

// EncryptFile rewrites path in place, replacing eligible assignment values
// with envelope tokens under a file-scoped public key. If the file already
// carries a DOTENV_PUBLIC_KEY, its paired private key is resolved as a
// consistency check and reused; otherwise a fresh keypair is generated and
// its private half persisted via writeKeysFile. If the file has no
// DOTENV_PUBLIC_KEY but the keys file already holds keyName, EncryptFile
// returns an InvalidPublicKey error and writes nothing, since the fresh
// private key could not be persisted.
func EncryptFile(path string, opts EncryptOptions) error {
	keyName := opts.KeyName
	if keyName == "" {
		keyName = keyresolve.DefaultKeyName
	}

	content, err := readFileOrEmpty(path)
	if err != nil {
		return err
	}
	f := dotenv.ParseLenient(content)
	vars := f.Variables()

	var publicHex string
	if existing, ok := vars[PublicKeyName]; ok && existing != "" {
		privHex, err := keyresolve.Resolve(path, opts.KeysFilePath, keyName)
		if err != nil {
			return err
		}
		kp, err := keypair.FromPrivateHex(privHex)
		if err != nil {
			return err
		}
		if kp.PublicHex() != existing {
			return dotenverr.New(dotenverr.CodeInvalidPublicKey,
				"resolved private key does not match the file's DOTENV_PUBLIC_KEY", nil)
		}
		publicHex = existing
	} else {
		keysPath := keysFilePathFor(path, opts.KeysFilePath)
		keysContent, err := readFileOrEmpty(keysPath)
		if err != nil {
			return err
		}
		if hasKeyLine(keysContent, keyName) {
			return dotenverr.New(dotenverr.CodeInvalidPublicKey,
				keysPath+" already holds "+keyName+" but "+path+" has no "+PublicKeyName, nil)
		}
		kp, err := keypair.Generate()
		if err != nil {
			return err
		}
		publicHex = kp.PublicHex()
		if err := writeKeysFile(keysPath, path, kp.PrivateHex(), keyName); err != nil {
			return err
		}
	}

	predicate := shouldEncryptFunc(opts.IncludeKeys, opts.ExcludeKeys)

	var out strings.Builder
	out.WriteString(envBanner)
	out.WriteString(PublicKeyName + `="` + publicHex + "\"\n")
	out.WriteString("\n")

	for _, line := range f.Lines {
		switch line.Kind {
		case dotenv.Blank:
			out.WriteString(line.Raw + "\n")
		case dotenv.Comment:
			out.WriteString(line.Raw + "\n")
		case dotenv.Malformed:
			out.WriteString(line.Raw + "\n")
		case dotenv.Assignment:
			if line.Key == PublicKeyName {
				continue
			}
			if predicate(line.Key) && !strings.HasPrefix(line.Value, envelope.Prefix) {
				token, err := envelope.Encrypt([]byte(line.Value), publicHex)
				if err != nil {
					return err
				}
				out.WriteString(emitAssignment(line.Export, line.Key, token))
			} else {
				out.WriteString(line.Raw + "\n")
			}
		}
	}

	return os.WriteFile(path, []byte(out.String()), 0o600)
}

// DecryptFile rewrites path in place, replacing every "encrypted:"-prefixed
// value with its plaintext. Unlike the value-level tolerant decrypt used
// during enumeration, this operation is strict: the first decryption
// failure aborts the whole rewrite and the file is left untouched.
func DecryptFile(path string, keysFilePath string, keyName string) error {
	if keyName == "" {
		keyName = keyresolve.DefaultKeyName
	}

	content, err := readFileOrEmpty(path)
	if err != nil {
		return err
	}
	f := dotenv.ParseLenient(content)

	privHex, err := keyresolve.Resolve(path, keysFilePath, keyName)
	if err != nil {
		return err
	}

	var out strings.Builder
	for _, line := range f.Lines {
		switch line.Kind {
		case dotenv.Blank:
			out.WriteString(line.Raw + "\n")
		case dotenv.Comment:
			out.WriteString(line.Raw + "\n")
		case dotenv.Malformed:
			out.WriteString(line.Raw + "\n")
		case dotenv.Assignment:
			if line.Key == PublicKeyName {
				continue
			}
			if strings.HasPrefix(line.Value, envelope.Prefix) {
				plain, err := envelope.Decrypt(line.Value, privHex)
				if err != nil {
					if derr, ok := err.(*dotenverr.Error); ok {
						return dotenverr.DecryptionFailed(line.Key, keyName, derr)
					}
					return err
				}
				out.WriteString(emitAssignment(line.Export, line.Key, plain))
			} else {
				out.WriteString(line.Raw + "\n")
			}
		}
	}

	return os.WriteFile(path, []byte(out.String()), 0o600)
}

// SetKey assigns key=value in path, encrypting the value unless plain is
// true. It creates path if it doesn't already exist. When encrypting, it
// reuses the file's DOTENV_PUBLIC_KEY if present, otherwise generates and
// persists a fresh keypair and prepends the banner. If a keypair must be
// generated but the keys file already holds keyName, SetKey returns an
// InvalidPublicKey error and writes nothing.
func SetKey(path, key, value, keysFilePath, keyName string, plain bool) error {
	if keyName == "" {
		keyName = keyresolve.DefaultKeyName
	}

	content, err := readFileOrEmpty(path)
	if err != nil {
		return err
	}
	f := dotenv.ParseLenient(content)
	vars := f.Variables()

	encodedValue := value
	needsBanner := false
	publicHex := vars[PublicKeyName]

	if !plain {
		if publicHex == "" {
			keysPath := keysFilePathFor(path, keysFilePath)
			keysContent, err := readFileOrEmpty(keysPath)
			if err != nil {
				return err
			}
			if hasKeyLine(keysContent, keyName) {
				return dotenverr.New(dotenverr.CodeInvalidPublicKey,
					keysPath+" already holds "+keyName+" but "+path+" has no "+PublicKeyName, nil)
			}
			kp, err := keypair.Generate()
			if err != nil {
				return err
			}
			publicHex = kp.PublicHex()
			needsBanner = true
			if err := writeKeysFile(keysPath, path, kp.PrivateHex(), keyName); err != nil {
				return err
			}
		}
		token, err := envelope.Encrypt([]byte(value), publicHex)
		if err != nil {
			return err
		}
		encodedValue = token
	}

	replaced := false
	var out strings.Builder
	if needsBanner {
		out.WriteString(envBanner)
		out.WriteString(PublicKeyName + `="` + publicHex + "\"\n")
		out.WriteString("\n")
	}

	for _, line := range f.Lines {
		switch line.Kind {
		case dotenv.Blank:
			out.WriteString(line.Raw + "\n")
		case dotenv.Comment:
			out.WriteString(line.Raw + "\n")
		case dotenv.Malformed:
			out.WriteString(line.Raw + "\n")
		case dotenv.Assignment:
			if line.Key == key {
				out.WriteString(emitAssignment(line.Export, key, encodedValue))
				replaced = true
			} else {
				out.WriteString(line.Raw + "\n")
			}
		}
	}

	if !replaced {
		out.WriteString(emitAssignment(false, key, encodedValue))
	}

	return os.WriteFile(path, []byte(out.String()), 0o600)
}

// writeKeysFile persists privateHex under keyName in keysPath. If keysPath
// doesn't exist yet, it is created with the standard banner and a comment
// naming the paired env file. If it exists but lacks a keyName= line, the
// line is appended. If it already has one, the file is left untouched: a
// conservative first-write-wins policy that avoids silently clobbering an
// existing key. EncryptFile and SetKey check for an existing keyName line
// before generating a keypair, so they never hand this function a fresh
// key that it would drop.
func writeKeysFile(keysPath, envPath, privateHex, keyName string) error {
	content, err := readFileOrEmpty(keysPath)
	if err != nil {
		return err
	}

	if content == "" {
		var out strings.Builder
		out.WriteString(keysBanner)
		out.WriteString("# " + filepath.Base(envPath) + "\n")
		out.WriteString(keyName + "=" + privateHex + "\n")
		return os.WriteFile(keysPath, []byte(out.String()), 0o600)
	}

	if hasKeyLine(content, keyName) {
		return nil
	}

	appended := content
	if !strings.HasSuffix(appended, "\n") {
		appended += "\n"
	}
	appended += keyName + "=" + privateHex + "\n"
	return os.WriteFile(keysPath, []byte(appended), 0o600)
}

func hasKeyLine(content, keyName string) bool {
	prefix := keyName + "="
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimPrefix(strings.TrimSpace(line), "export ")
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func keysFilePathFor(envPath, explicit string) string {
	if explicit != "" {
		return explicit
	}
	return filepath.Join(filepath.Dir(envPath), ".env.keys")
}

func shouldEncryptFunc(include, exclude []string) func(key string) bool {
	includeSet := toSet(include)
	excludeSet := toSet(exclude)
	return func(key string) bool {
		if key == PublicKeyName {
			return false
		}
		if len(includeSet) > 0 {
			return includeSet[key]
		}
		if len(excludeSet) > 0 {
			return !excludeSet[key]
		}
		return true
	}
}

func toSet(items []string) map[string]bool {
	if len(items) == 0 {
		return nil
	}
	set := make(map[string]bool, len(items))
	for _, it := range items {
		set[it] = true
	}
	return set
}

func emitAssignment(exportFlag bool, key, value string) string {
	if exportFlag {
		return "export " + key + `="` + value + "\"\n"
	}
	return key + `="` + value + "\"\n"
}

func readFileOrEmpty(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", dotenverr.IO(err)
	}
	return string(content), nil
}
