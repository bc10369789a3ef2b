package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"runtime/debug"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	pflag "github.com/spf13/pflag"

	"github.com/bft-labs/transmit/internal/app"
	"github.com/bft-labs/transmit/internal/cliconfig"
	"github.com/bft-labs/transmit/pkg/datagram"
	logAdapter "github.com/bft-labs/transmit/pkg/log"
	"github.com/bft-labs/transmit/pkg/message"
)

const helpDescription = `
Ask a myceli node to transmit one of its files to another node.

A single TransmitFile request is encoded and sent to <node_address> as one
UDP datagram. Nothing is retried and no reply is awaited: exit status 0 means
the datagram left this host, not that the node acted on it.

Exit status:
  0    request sent
  1    bad flags or configuration
  2    invalid node address
  3    request could not be encoded
  4    socket could not be created
  5    datagram could not be sent
  130  interrupted before the datagram was sent
  255  wrong number of arguments
`

var exampleUsage = strings.TrimSpace(`
  transmit 127.0.0.1:8001 /data/image.jpg 10.0.0.2:8001
  transmit --network udp6 ground-station:8001 /data/image.jpg 10.0.0.2:8001
  transmit --dry-run 127.0.0.1:8001 /data/image.jpg 10.0.0.2:8001
`)

func getVersion() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return "dev"
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(argv []string) int {
	cfg := cliconfig.DefaultConfig()
	var cfgPath string

	log := cliconfig.Logger(os.Stderr, cfg)

	root := &cobra.Command{
		Use:           "transmit [flags] <node_address> <path_to_transmit> <destination_address>",
		Short:         "Ask a myceli node to transmit a file to another node",
		Long:          strings.TrimSpace(helpDescription),
		Example:       exampleUsage,
		Version:       fmt.Sprintf("%s %s/%s", getVersion(), runtime.GOOS, runtime.GOARCH),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) != 3 {
				fmt.Fprintln(cmd.OutOrStdout(), app.UsageText)
				return app.ErrUsage
			}

			// Config file first (default $HOME/.transmit/config.toml), then env, then flags.
			cfgFile := cfgPath
			if cfgFile == "" {
				cfgFile = cliconfig.DefaultConfigPath()
			}

			changed := map[string]bool{}
			cmd.Flags().Visit(func(f *pflag.Flag) { changed[f.Name] = true })

			if cfgFile != "" && cliconfig.FileExists(cfgFile) {
				fc, err := cliconfig.LoadFileConfig(cfgFile)
				if err != nil {
					return fmt.Errorf("load config: %w", err)
				}
				cliconfig.ApplyFileConfig(&cfg, fc, changed)
			} else if cfgPath != "" {
				return fmt.Errorf("load config: %s does not exist", cfgPath)
			}

			if err := cliconfig.ApplyEnvConfig(&cfg, changed); err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log = cliconfig.Logger(os.Stderr, cfg)
			log.Debug().Interface("config", cfg).Msg("configuration")
			logger := logAdapter.NewZerologAdapterWithLogger(log)

			tx := datagram.NewTransmitter(
				datagram.WithNetwork(cfg.Network),
				datagram.WithLogger(logger),
			)
			enc := message.NewEncoder(message.WithLimit(cfg.MaxMessageSize))
			driver := app.NewDriver(enc, tx, cmd.OutOrStdout(),
				app.WithLogger(logger),
				app.WithDryRun(cfg.DryRun),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return driver.Run(ctx, args)
		},
	}

	// Flags must precede the operands, which may themselves start with '-'.
	root.Flags().SetInterspersed(false)

	root.Flags().StringVar(&cfgPath, "config", "", "path to config file (default: $HOME/.transmit/config.toml)")
	root.Flags().StringVar(&cfg.Network, "network", cfg.Network, "UDP network: udp4, udp6 or udp")
	root.Flags().IntVar(&cfg.MaxMessageSize, "max-message-size", cfg.MaxMessageSize, fmt.Sprintf("largest request to send, at most %d bytes", message.MaxSize))
	root.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	root.Flags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (console, json)")
	root.Flags().BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "print the encoded request as hex instead of sending it")

	root.SetArgs(argv)
	err := root.ExecuteContext(context.Background())
	if err != nil && !errors.Is(err, app.ErrUsage) {
		log.Error().Err(err).Msg("transmit")
	}
	return app.ExitCode(err)
}
