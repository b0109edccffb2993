package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"midi2key"
	"midi2key/keysim"
	"midi2key/source"
)

// Arguments are the command line options.
type Arguments struct {
	ConfigFilename string
	Display        string
}

func main() {
	args := Arguments{}
	cmd := &cobra.Command{
		Use:           "midi2key",
		Short:         "Turn MIDI notes into key presses",
		Long:          `Reads MIDI note messages and presses the keys bound to them in the config file.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Start(cmd.Context(), args)
		},
	}
	cmd.Flags().StringVarP(&args.ConfigFilename, "config", "c", midi2key.DefaultConfigFilename, "the config file with the keybinds")
	cmd.Flags().StringVar(&args.Display, "display", "", "the X display to send keys to (default $DISPLAY)")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error starting:", err)
		stop()
		os.Exit(1)
	}
}

// Start sets everything up, runs until enter is pressed, stdin is closed or
// ctx is cancelled, and tears down in reverse order.
func Start(ctx context.Context, args Arguments) error {
	config, err := midi2key.LoadConfig(args.ConfigFilename)
	if err != nil {
		return err
	}

	logger, err := midi2key.NewLogger(os.Stderr, config.Log.Level)
	if err != nil {
		return err
	}

	if config.Meta != nil && config.Meta.Game != "" {
		fmt.Printf("Using keybinds for game %q\n", config.Meta.Game)
	}
	if config.Mapped() == 0 {
		logger.Warn("no keybinds configured, every note is unmapped")
	}

	keys, err := keysim.Open(args.Display, logger)
	if err != nil {
		return err
	}
	defer keys.Close()

	router := midi2key.NewRouter(config, keys, logger)

	in, err := startSource(config.Input, router, logger)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stderr, "Press enter to quit")
	waitErr := midi2key.WaitForExit(ctx, os.Stdin)

	if err := in.Close(); err != nil {
		logger.Error("could not stop midi input", "err", err.Error())
	}
	s := router.Stats()
	logger.Info("stopped",
		"handled", s.Handled,
		"key_downs", s.KeyDowns,
		"key_ups", s.KeyUps,
		"unmapped", s.Unmapped,
		"malformed", s.Malformed,
		"failed", s.Failed,
	)
	return waitErr
}

func startSource(input midi2key.Input, sink source.Sink, logger *slog.Logger) (source.Source, error) {
	switch input.Backend {
	case midi2key.BackendJACK:
		return source.StartJACK(input.Client, input.Port, sink, logger)
	case midi2key.BackendPortMIDI:
		return source.StartPortMIDI(input.Device, sink, logger)
	case midi2key.BackendOSC:
		return source.StartOSC(input.Listen, sink, logger)
	default:
		return nil, errors.Errorf("unknown backend %q", input.Backend)
	}
}
