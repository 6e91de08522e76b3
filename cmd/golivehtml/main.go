package main

import (
	"context"
	"os"
	"runtime/debug"

	"github.com/rs/xid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	get_diagnostics "github.com/walteh/golivehtml/cmd/golivehtml/get-diagnostics"
	"github.com/walteh/golivehtml/cmd/golivehtml/instrument"
	"github.com/walteh/golivehtml/cmd/golivehtml/scan"
	pkgdebug "github.com/walteh/golivehtml/pkg/debug"
	"gitlab.com/tozd/go/errors"
)

func main() {
	if err := run(); err != nil {
		println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	var debugLogging bool

	rootCmd := &cobra.Command{
		Use:   "golivehtml",
		Short: "A tool for instrumenting HTML documents with stable tag identities",
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		rootCmd.Version = "unknown"
	} else {
		rootCmd.Version = info.Main.Version
	}

	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "enable debug logging")

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		level := zerolog.InfoLevel
		if debugLogging {
			level = zerolog.DebugLevel
		}
		logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(level).
			With().
			Str("id", xid.New().String()).
			Logger().
			Hook(pkgdebug.CustomTimeHook{WithColor: true}).
			Hook(pkgdebug.CustomCallerHook{WithColor: true})
		cmd.SetContext(logger.WithContext(cmd.Context()))
	}

	cmdVersion := &cobra.Command{
		Use: "raw-version",
		Run: func(cmdz *cobra.Command, args []string) {
			cmdz.Println(rootCmd.Version)
		},
		Hidden: true,
	}

	rootCmd.AddCommand(cmdVersion)

	rootCmd.AddCommand(instrument.NewInstrumentCommand())
	rootCmd.AddCommand(scan.NewScanCommand())
	rootCmd.AddCommand(get_diagnostics.NewGetDiagnosticsCommand())

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		return errors.Errorf("failed to execute command: %w", err)
	}

	return nil
}
