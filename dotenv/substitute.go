package dotenv

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/fabianopinto/dotenvx/internal/dotenverr"
)

// Substitute locates non-overlapping $(command) spans in value — where
// command is any run of characters excluding ')' — and replaces each with
// the trimmed stdout of running it through the host shell. Matches are
// resolved right-to-left so that splicing one doesn't shift the indices
// of matches still to be processed. Nested parentheses and escaped ')'
// inside a command are not supported; this is a known, documented
// limitation inherited from the reference implementation.
func Substitute(value string) (string, error) {
	matches := findCommandSpans(value)
	if len(matches) == 0 {
		return value, nil
	}

	result := value
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		out, err := runShell(value[m.cmdStart:m.cmdEnd])
		if err != nil {
			return "", err
		}
		result = result[:m.start] + out + result[m.end:]
	}
	return result, nil
}

type commandSpan struct {
	start, end       int // span of "$(...)" including delimiters
	cmdStart, cmdEnd int // span of the command text itself
}

// findCommandSpans scans for $( ... ) where the command body excludes ')'.
func findCommandSpans(value string) []commandSpan {
	var spans []commandSpan
	i := 0
	for i < len(value) {
		if value[i] == '$' && i+1 < len(value) && value[i+1] == '(' {
			cmdStart := i + 2
			closeIdx := strings.IndexByte(value[cmdStart:], ')')
			if closeIdx < 0 {
				break
			}
			cmdEnd := cmdStart + closeIdx
			spans = append(spans, commandSpan{
				start: i, end: cmdEnd + 1,
				cmdStart: cmdStart, cmdEnd: cmdEnd,
			})
			i = cmdEnd + 1
			continue
		}
		i++
	}
	return spans
}

// runShell executes command through the host shell, captures stdout,
// and trims exactly one trailing newline.
func runShell(command string) (string, error) {
	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.Command("cmd", "/C", command)
	} else {
		cmd = exec.Command("sh", "-c", command)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", dotenverr.CommandSubstitution(
				fmt.Sprintf("command failed with exit code %d: %s", exitErr.ExitCode(), stderr.String()),
				err,
			)
		}
		return "", dotenverr.CommandSubstitution("failed to execute command: "+err.Error(), err)
	}

	out := stdout.Bytes()
	if !utf8.Valid(out) {
		return "", dotenverr.CommandSubstitution("command produced non-UTF-8 output", nil)
	}

	return trimOneTrailingNewline(string(out)), nil
}

// trimOneTrailingNewline removes a single trailing "\n", or "\r\n", from s.
func trimOneTrailingNewline(s string) string {
	if strings.HasSuffix(s, "\r\n") {
		return s[:len(s)-2]
	}
	if strings.HasSuffix(s, "\n") {
		return s[:len(s)-1]
	}
	return s
}
