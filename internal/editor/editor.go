// Package editor opens files in the user's editor.
package editor

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strings"
)

// Name returns the editor to launch: $STUDIO_EDITOR, then $EDITOR, then vi.
func Name() string {
	for _, env := range []string{"STUDIO_EDITOR", "EDITOR"} {
		if v := strings.TrimSpace(os.Getenv(env)); v != "" {
			return v
		}
	}
	return "vi"
}

// Command builds the editor invocation for filePath. Editor values with
// arguments such as "code --wait" are split on whitespace.
func Command(filePath string) *exec.Cmd {
	parts := strings.Fields(Name())

	//nolint:gosec // the editor comes from the user's own environment
	cmd := exec.Command(parts[0], append(parts[1:], filePath)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd
}

// Open opens filePath in the user's preferred editor and waits for it to exit.
func Open(filePath string, logger *slog.Logger) error {
	cmd := Command(filePath)

	logger.Info("Opening file in editor", "editor", cmd.Path, "path", filePath)

	if err := cmd.Run(); err != nil {
		logger.Error("Failed to open editor", "error", err)
		logger.Info("You can manually edit the file", "path", filePath)
		return fmt.Errorf("failed to open editor: %w", err)
	}

	return nil
}
