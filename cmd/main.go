package main

import (
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/brettbedarf/memfs/config"
	"github.com/brettbedarf/memfs/internal/util"
	"github.com/brettbedarf/memfs/requests"
	"github.com/brettbedarf/memfs/server"
	"github.com/brettbedarf/memfs/shell"
)

type options struct {
	configPath string
	seedPath   string
	mountPoint string
	verbose    int
	umount     bool
}

func main() {
	var opts options
	var rootCmd = &cobra.Command{
		Use:   "memfs",
		Short: "Interactive in-memory file system shell",
		Long: "Interactive in-memory file system shell\n\n" +
			"The namespace can be pre-populated from a YAML or JSON node definition file\n" +
			"and exported read-only over FUSE while the shell is running.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}
	rootCmd.Flags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file (.yaml, .yml, .json, .toml)")
	rootCmd.Flags().StringVarP(&opts.seedPath, "seed", "s", "", "Path to node definition file (.yaml, .yml, .json)")
	rootCmd.Flags().StringVarP(&opts.mountPoint, "mount", "m", "", "Export the namespace read-only at this mount point")
	rootCmd.Flags().IntVarP(&opts.verbose, "verbose", "v", config.WarnVerbose,
		"Log verbosity level between 1 (error) and 5 (trace)")
	rootCmd.Flags().BoolVarP(&opts.umount, "umount", "u", false,
		"Unmount the mount point first if needed. Useful for debuggers that don't exit properly.")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, opts options) error {
	override := &config.ConfigOverride{}
	if opts.configPath != "" {
		var err error
		if override, err = config.LoadConfigOverrideFile(opts.configPath); err != nil {
			return err
		}
	}
	if cmd.Flags().Changed("verbose") || override.LogLvl == nil {
		override.LogLvl = &opts.verbose
	}
	if opts.seedPath != "" {
		override.Seed = &opts.seedPath
	}
	cfg := config.NewConfig(override)

	util.InitializeLogger(cfg.LogLvl, os.Stderr)
	logger := util.GetLogger("main")
	logger.Info().Str("config", opts.configPath).Str("seed", cfg.Seed).Str("mnt", opts.mountPoint).Msg("memfs initializing")

	if !cfg.Color {
		color.NoColor = true
	}

	fs := server.New(cfg)
	if cfg.Seed != "" {
		reqs, err := requests.LoadFile(cfg.Seed)
		if err != nil {
			return fmt.Errorf("failed to load seed file %s: %w", cfg.Seed, err)
		}
		logger.Debug().
			Int("files", len(reqs.Files)).
			Int("directories", len(reqs.Dirs)).
			Msg("Successfully loaded seed requests")
		fs.Seed(reqs.Dirs, reqs.Files)
	} else {
		logger.Debug().Msg("No seed file provided")
	}

	if opts.mountPoint != "" {
		if opts.umount {
			// we ignore error here if not already mounted
			exec.Command("fusermount", "-u", opts.mountPoint).Run() // nolint:errcheck
		}
		if err := fs.Serve(opts.mountPoint); err != nil {
			return fmt.Errorf("failed to mount namespace: %w", err)
		}
		defer func() {
			if err := fs.Unmount(); err != nil {
				logger.Error().Err(err).Msg("Failed to unmount namespace")
			}
		}()
	}

	// Setup signal handling so the mount is released on interrupt
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer signal.Stop(signalChan)

	done := make(chan error, 1)
	go func() {
		done <- shell.New(fs, os.Stdin, os.Stdout, cfg.Color).Run()
	}()

	select {
	case err := <-done:
		return err
	case sig := <-signalChan:
		logger.Info().Str("signal", sig.String()).Msg("Received signal, shutting down")
		return nil
	}
}
