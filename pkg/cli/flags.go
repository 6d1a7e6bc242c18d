/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import "github.com/urfave/cli/v3"

// stdoutTarget streams rendered manifests to standard output.
const stdoutTarget = "-"

// Flags shared across commands. Each command takes a fresh instance because
// cli/v3 flag values carry state between runs once applied.
func outputFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "Output target: directory path, '-' for stdout, or oci://registry/repository[:tag]",
		Value:   stdoutTarget,
		Sources: cli.EnvVars("MANIFOLD_OUTPUT"),
	}
}

func kubeconfigFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:    "kubeconfig",
		Usage:   "Path to the kubeconfig file (defaults to KUBECONFIG, then ~/.kube/config, then in-cluster)",
		Sources: cli.EnvVars("MANIFOLD_KUBECONFIG"),
	}
}
