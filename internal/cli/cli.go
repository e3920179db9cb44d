// Package cli implements the mermaid-ascii command-line interface.
//
// # Commands
//
//   - render: draw a flowchart as Unicode or ASCII text, or convert it to another format
//   - view: draw a flowchart and open it in a scrollable terminal viewer
//   - version: print build information
//
// Rendering options are merged from, lowest precedence first, built-in defaults, the
// TOML config file, padding directives in the input, and explicit flags.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger travels in
// the command context.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const appName = "mermaid-ascii"

// nopCloser wraps an io.Writer with a no-op Close method.
type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns the command's stdout when path is empty, or creates the file at
// path, overwriting it if it exists.
func openOutput(cmd *cobra.Command, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{cmd.OutOrStdout()}, nil
	}
	return os.Create(path)
}

// readInput reads the diagram source named by args. No argument or "-" reads stdin.
// The returned name is used for format detection and is empty for stdin.
func readInput(cmd *cobra.Command, args []string) (content, name string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "", nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return string(data), args[0], nil
}

// displayName is the title shown for an input: the file's base name, or "stdin".
func displayName(name string) string {
	if name == "" {
		return "stdin"
	}
	return filepath.Base(name)
}
