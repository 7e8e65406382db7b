package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/corvid-labs/skillwalk/pkg/boundary"
	"github.com/corvid-labs/skillwalk/pkg/clock"
	"github.com/corvid-labs/skillwalk/pkg/config"
	"github.com/corvid-labs/skillwalk/pkg/transport"
)

const version = "v0.1.0"

// cliConfig holds the flags read once at startup (AMBIENT STACK: "global
// mutable flags" converted to one-time initialization).
type cliConfig struct {
	Debug      bool
	ConfigPath string
	OutputDir  string
}

func main() {
	var cfg cliConfig

	rootCmd := &cobra.Command{
		Use:   "skillwalkd",
		Short: "Mobile/desktop UI exploration and skill-synthesis daemon",
		Long: `skillwalkd drives a breadth-first exploration of a mirrored application's
UI and synthesizes reusable skill scripts from the screens it visits.

It speaks MCP (Model Context Protocol) over stdio: start_exploration, step,
status, and finalize.`,
	}
	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.ConfigPath, "config", "", "Path to skillwalk.toml (defaults to an upward search from cwd)")

	rootCmd.AddCommand(serveCmd(&cfg))
	rootCmd.AddCommand(versionCmd())

	ctx := context.Background()
	if err := fang.Execute(ctx, rootCmd,
		fang.WithVersion(version),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	); err != nil {
		os.Exit(1)
	}
}

func serveCmd(cfg *cliConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server over stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), *cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.OutputDir, "output-dir", "skills", "Directory skill bundles are written to")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the skillwalkd version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(version)
			return nil
		},
	}
}

func runServe(ctx context.Context, cfg cliConfig) error {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	var conf *config.Config
	if cfg.ConfigPath != "" {
		c, err := config.Load(cfg.ConfigPath)
		if err != nil {
			return fmt.Errorf("loading %s: %w", cfg.ConfigPath, err)
		}
		conf = c
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		path, c, err := config.Find(cwd)
		if err != nil {
			return fmt.Errorf("searching for skillwalk.toml: %w", err)
		}
		if path != "" {
			logger.InfoContext(ctx, "loaded config", "path", path)
		}
		conf = c
	}

	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "skills"
	}

	controller := transport.NewController(unwiredBoundaryFactory, clock.System{}, outputDir)
	_ = conf // loaded and validated only: its budget and strategy settings are not passed to the controller, so start_exploration sessions run on model.DefaultBudget()

	srv := transport.NewServer(controller)
	logger.InfoContext(ctx, "serving MCP over stdio")
	return server.ServeStdio(srv)
}

// unwiredBoundaryFactory is the default BoundaryFactory: skillwalkd itself
// ships no window bridge, screen capture, OCR, or input synthesis backend
// (spec's external-collaborators boundary). A real deployment replaces this
// with a factory that dials whatever device-mirroring backend it targets;
// until one is wired in, start_exploration fails loudly instead of silently
// exploring against a fake screen.
func unwiredBoundaryFactory(appName string) (boundary.ScreenDescriber, boundary.InputProvider, error) {
	return nil, nil, fmt.Errorf("no boundary backend configured for app %q: skillwalkd ships the MCP transport only, a device-mirroring backend must be wired into cmd/skillwalkd before start_exploration will work", appName)
}
