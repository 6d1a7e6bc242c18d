/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// runConvertHarness runs the real convert command with its action swapped
// for fn, so flag parsing and option validation execute without running a
// conversion.
func runConvertHarness(t *testing.T, args []string, fn func(cmd *cli.Command) error) error {
	t.Helper()
	cmd := convertCmd()
	cmd.Action = func(_ context.Context, c *cli.Command) error {
		return fn(c)
	}
	return cmd.Run(context.Background(), append([]string{"convert"}, args...))
}

// writeManifest writes content under dir and returns the file path.
func writeManifest(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
