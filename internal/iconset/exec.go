package iconset

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/k1LoW/exec"
)

// runTool runs an external command and folds its stderr into the error.
func runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to run %s: %w\nstderr: %s", name, err, strings.TrimSpace(stderr.String()))
	}
	return nil
}

// shellJoin renders argv for display, quoting arguments that need it.
func shellJoin(argv []string) string {
	parts := make([]string, len(argv))
	for i, a := range argv {
		if a == "" || strings.ContainsAny(a, " \t\n'\"\\$`*?[]{}()<>|&;#~") {
			parts[i] = "'" + strings.ReplaceAll(a, "'", `'\''`) + "'"
		} else {
			parts[i] = a
		}
	}
	return strings.Join(parts, " ")
}
