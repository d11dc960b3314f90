package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/hexfoundry/planroom/internal/config"
	"github.com/hexfoundry/planroom/internal/server"
)

func main() {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "planroom",
		Short: "Floor plan layout optimization engine",
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(solveCmd())
	rootCmd.AddCommand(validateCmd())
	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func solveCmd() *cobra.Command {
	var opts solveOptions

	cmd := &cobra.Command{
		Use:   "solve [project-path]",
		Short: "Generate an optimized layout for a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "placement strategy: genetic, greedy, or random (default from project)")
	cmd.Flags().Int64VarP(&opts.seed, "seed", "s", 0, "random seed (0 seeds from the clock)")
	cmd.Flags().StringVarP(&opts.outJSON, "out", "o", "", "write the result JSON to a file instead of stdout")
	cmd.Flags().StringVar(&opts.outPDF, "pdf", "", "also write a PDF plan sheet")
	cmd.Flags().StringVar(&opts.outXLSX, "xlsx", "", "also write an XLSX unit schedule")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [project-path]",
		Short: "Validate a project without generating a layout",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runValidate(args[0])
		},
	}
}

func importCmd() *cobra.Command {
	var outProject string

	cmd := &cobra.Command{
		Use:   "import [drawing.dxf]",
		Short: "Extract floor bounds and wall zones from a DXF drawing",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runImport(args[0], outProject)
		},
	}

	cmd.Flags().StringVarP(&outProject, "out", "o", "", "write a plan.yaml project file for the imported drawing")
	return cmd
}

func exportCmd() *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export [result.json]",
		Short: "Render a saved result as a PDF plan sheet or XLSX schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runExport(args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.projectPath, "project", "p", "", "project directory providing floor and zones (required)")
	cmd.Flags().StringVar(&opts.outPDF, "pdf", "", "PDF output path")
	cmd.Flags().StringVar(&opts.outXLSX, "xlsx", "", "XLSX output path")
	_ = cmd.MarkFlagRequired("project")
	return cmd
}

func serveCmd() *cobra.Command {
	var configPath string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if port != 0 {
				cfg.Server.Port = port
			}

			logger := log.Default()
			if level, err := log.ParseLevel(cfg.Server.LogLevel); err == nil {
				logger.SetLevel(level)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return server.New(cfg, logger).Start(ctx)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "TOML config file")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP server port (overrides config)")
	return cmd
}
