// Command solvent runs the compiler front end over a single source file:
// lex, normalise layout, parse, lower to CST, and solve types, optionally
// emitting a Graphviz dump or a content-addressed CST artifact alongside.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/solventlang/solvent/internal/compiler"
	"github.com/solventlang/solvent/internal/config"
	"github.com/solventlang/solvent/internal/diagnostics"
)

// compilerVersion is the language pragma new projects are scaffolded
// against; overridden per-project by solvent.yaml's language field.
const compilerVersion = "v0.1.0"

func main() {
	var (
		dotPath      string
		artifactPath string
		configPath   string
		debug        bool
	)

	rootCmd := &cobra.Command{
		Use:           "solvent <file>",
		Short:         "Compile a solvent source file through to a typed CST",
		Args:          cobra.ExactArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], dotPath, artifactPath, configPath, debug)
		},
	}

	rootCmd.Flags().StringVar(&dotPath, "dot", "", "write a Graphviz .dot dump of the solved CST to this path")
	rootCmd.Flags().StringVar(&artifactPath, "dump-cst", "", "write a CBOR-encoded, content-addressed CST snapshot to this path")
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to solvent.yaml (defaults to none)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "enable structured debug tracing on stderr")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(file, dotPath, artifactPath, configPath string, debug bool) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("reading %s: %w", file, err)
	}

	cfg := config.Default(compilerVersion)
	if configPath != "" {
		raw, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", configPath, err)
		}
		cfg, err = config.Parse(configPath, raw)
		if err != nil {
			return err
		}
	}

	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	result, err := compiler.Compile(string(src), compiler.Options{
		Config:       cfg,
		Logger:       log,
		EmitDot:      dotPath != "",
		EmitArtifact: artifactPath != "",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Render(string(src), err))
		return fmt.Errorf("compilation failed")
	}

	if dotPath != "" {
		if err := os.WriteFile(dotPath, []byte(result.Dot), 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", dotPath, err)
		}
	}
	if artifactPath != "" {
		if err := os.WriteFile(artifactPath, result.ArtifactData, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", artifactPath, err)
		}
		fmt.Fprintf(os.Stdout, "%s\n", result.ArtifactAddr)
	}

	return nil
}
