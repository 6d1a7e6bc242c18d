/*
Copyright © 2025 Manifold Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/manifold-dev/manifold/pkg/cluster"
	"github.com/manifold-dev/manifold/pkg/converter/intake"
	"github.com/manifold-dev/manifold/pkg/converter/trustbundle"
	"github.com/manifold-dev/manifold/pkg/k8s/client"
	"github.com/manifold-dev/manifold/pkg/manifest"
	"github.com/manifold-dev/manifold/pkg/oci"
	"github.com/manifold-dev/manifold/pkg/pipeline"
	"github.com/manifold-dev/manifold/pkg/version"
)

// convertCmdOptions holds parsed options for the convert command.
type convertCmdOptions struct {
	inputs      []string
	target      *oci.Reference
	fromCluster bool
	namespace   string
	kubeconfig  string
	caPackage   string
	plainHTTP   bool
	insecureTLS bool
}

func convertCmd() *cli.Command {
	return &cli.Command{
		Name:                  "convert",
		EnableShellCompletion: true,
		Usage:                 "Convert manifests into plain portable resources",
		Description: `Reads custom-resource manifests and converts them into plain portable
resources. Input files and directories are parsed as multi-document YAML;
Bundle manifests become ConfigMaps carrying a concatenated PEM trust
bundle, plain Secrets and ConfigMaps feed that resolution, and every
other manifest passes through untouched.

# Bundle Sources

Each Bundle source resolves against the run state, in declaration order:
  - secret: value of a key in a Secret (stringData preferred over data)
  - configMap: value of a key in a ConfigMap
  - inLine: literal PEM text
  - useDefaultCAs: the system CA bundle (or the package given via --ca-package)

A source that cannot be resolved degrades to a warning. A Bundle with no
resolvable sources is skipped entirely.

# Usage Examples

Convert a directory of manifests to stdout:
  manifold convert --input ./manifests

Write converted manifests to a directory:
  manifold convert --input ./manifests --output ./out

Resolve Bundle sources against a live cluster namespace:
  manifold convert --input bundle.yaml --from-cluster --namespace trust

Push converted manifests to an OCI registry:
  manifold convert --input ./manifests --output oci://ghcr.io/acme/manifests:v1`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "input",
				Aliases: []string{"i"},
				Usage:   "Input manifest file or directory (repeatable)",
				Sources: cli.EnvVars("MANIFOLD_INPUT"),
			},
			outputFlag(),
			&cli.BoolFlag{
				Name:    "from-cluster",
				Usage:   "Seed the run with Secrets and ConfigMaps from a live cluster",
				Sources: cli.EnvVars("MANIFOLD_FROM_CLUSTER"),
			},
			&cli.StringFlag{
				Name:    "namespace",
				Aliases: []string{"n"},
				Usage:   "Namespace to read cluster records from",
				Value:   cluster.DefaultNamespace,
				Sources: cli.EnvVars("MANIFOLD_NAMESPACE"),
			},
			kubeconfigFlag(),
			&cli.StringFlag{
				Name:    "ca-package",
				Usage:   "Path to a packaged CA bundle (JSON) used for useDefaultCAs sources",
				Sources: cli.EnvVars("MANIFOLD_CA_PACKAGE"),
			},
			&cli.BoolFlag{
				Name:    "plain-http",
				Usage:   "Use HTTP instead of HTTPS for the OCI registry (for local development)",
				Sources: cli.EnvVars("MANIFOLD_PLAIN_HTTP"),
			},
			&cli.BoolFlag{
				Name:    "insecure",
				Usage:   "Skip TLS certificate verification for the OCI registry",
				Sources: cli.EnvVars("MANIFOLD_INSECURE"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			opts, err := parseConvertCmdOptions(cmd)
			if err != nil {
				return err
			}

			slog.Info("converting manifests",
				"inputs", len(opts.inputs),
				"output", opts.target.String(),
				"from_cluster", opts.fromCluster,
			)

			return runConvert(ctx, opts)
		},
	}
}

// parseConvertCmdOptions parses and validates command options.
func parseConvertCmdOptions(cmd *cli.Command) (*convertCmdOptions, error) {
	opts := &convertCmdOptions{
		inputs:      cmd.StringSlice("input"),
		fromCluster: cmd.Bool("from-cluster"),
		namespace:   cmd.String("namespace"),
		kubeconfig:  cmd.String("kubeconfig"),
		caPackage:   cmd.String("ca-package"),
		plainHTTP:   cmd.Bool("plain-http"),
		insecureTLS: cmd.Bool("insecure"),
	}

	if len(opts.inputs) == 0 {
		return nil, fmt.Errorf("at least one --input is required")
	}

	target, err := oci.ParseOutputTarget(cmd.String("output"))
	if err != nil {
		return nil, fmt.Errorf("invalid --output target: %w", err)
	}
	opts.target = target

	if !target.IsOCI && (opts.plainHTTP || opts.insecureTLS) {
		return nil, fmt.Errorf("--plain-http and --insecure require an oci:// output target")
	}

	return opts, nil
}

func runConvert(ctx context.Context, opts *convertCmdOptions) error {
	objects, err := manifest.Load(opts.inputs...)
	if err != nil {
		slog.Error("failed to load input manifests", "error", err)
		return err
	}

	var trustOpts []trustbundle.Option
	if opts.caPackage != "" {
		trustOpts = append(trustOpts, trustbundle.WithPackageLocation(opts.caPackage))
	}

	engineOpts := []pipeline.Option{
		pipeline.WithConverter(intake.New()),
		pipeline.WithConverter(trustbundle.New(trustOpts...)),
	}

	if opts.fromCluster {
		clientset, err := clusterClient(opts.kubeconfig)
		if err != nil {
			slog.Error("failed to build kubernetes client", "error", err)
			return err
		}
		engineOpts = append(engineOpts, pipeline.WithSeed(cluster.Seed(clientset, opts.namespace)))
	}

	out, err := pipeline.New(engineOpts...).Run(ctx, objects)
	if err != nil {
		slog.Error("conversion failed", "error", err)
		return err
	}

	if err := writeOutput(ctx, opts, out); err != nil {
		return err
	}

	// Warnings surface after the output is written. They never change the
	// exit code.
	for _, w := range out.Warnings {
		slog.Warn("conversion warning", "warning", w)
	}

	return nil
}

// clusterClient builds a kubernetes client from an explicit kubeconfig path,
// falling back to the standard discovery chain when none is given.
func clusterClient(kubeconfig string) (client.Interface, error) {
	if kubeconfig != "" {
		clientset, _, err := client.BuildKubeClient(kubeconfig)
		return clientset, err
	}
	clientset, _, err := client.GetKubeClient()
	return clientset, err
}

func writeOutput(ctx context.Context, opts *convertCmdOptions, out *pipeline.Output) error {
	switch {
	case opts.target.IsOCI:
		return pushOutput(ctx, opts, out)
	case opts.target.LocalPath == stdoutTarget:
		return manifest.Write(os.Stdout, out.Objects)
	default:
		files, err := manifest.WriteDir(opts.target.LocalPath, out.Objects)
		if err != nil {
			slog.Error("failed to write manifests", "error", err, "dir", opts.target.LocalPath)
			return err
		}
		fmt.Printf("\nManifests written successfully!\n")
		fmt.Printf("Output directory: %s\n", opts.target.LocalPath)
		fmt.Printf("Files written: %d\n", len(files))
		return nil
	}
}

// pushOutput renders the manifests into a staging directory and publishes
// them as an OCI artifact. Untagged references default to the build version.
func pushOutput(ctx context.Context, opts *convertCmdOptions, out *pipeline.Output) error {
	ref := opts.target
	if ref.Tag == "" {
		ref = ref.WithTag(version.Get().Version)
	}

	stageDir, err := os.MkdirTemp("", "manifold-push-*")
	if err != nil {
		return fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer func() { _ = os.RemoveAll(stageDir) }()

	if _, err := manifest.WriteDir(stageDir, out.Objects); err != nil {
		return err
	}

	res, err := oci.Publish(ctx, stageDir, ref, version.Get().Version, opts.plainHTTP, opts.insecureTLS)
	if err != nil {
		slog.Error("failed to push manifests", "error", err, "reference", ref.String())
		return err
	}

	fmt.Printf("\nManifests pushed successfully!\n")
	fmt.Printf("Reference: %s\n", res.Reference)
	fmt.Printf("Digest: %s\n", res.Digest)
	return nil
}
