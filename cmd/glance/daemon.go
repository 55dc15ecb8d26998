package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	sddaemon "github.com/coreos/go-systemd/v22/daemon"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/glance/internal/config"
	"github.com/jmylchreest/glance/internal/daemon"
	"github.com/jmylchreest/glance/internal/dbus"
)

var daemonOpts struct {
	readFormat   string
	unreadFormat string
	barFormat    string
	noWatch      bool
}

var daemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "Run the notification daemon",
	Long: `Run the notification daemon and write Waybar JSON lines to stdout.

Use it as the exec of a Waybar custom module:

  "custom/glance": {
    "exec": "glance daemon",
    "return-type": "json",
    "on-click": "pkill -RTMIN+0 glance",
    "on-scroll-up": "pkill -RTMIN+2 glance",
    "on-scroll-down": "pkill -RTMIN+3 glance"
  }

Format flags override the config file for this run only. Placeholders:
{app} {summary} {body} {id} {age}.`,
	Args: cobra.NoArgs,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(daemonCmd)
	addDaemonFlags(daemonCmd)
}

func addDaemonFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&daemonOpts.readFormat, "read-format", "",
		"Tooltip line template for read notifications")
	cmd.Flags().StringVar(&daemonOpts.unreadFormat, "unread-format", "",
		"Tooltip line template for unread notifications")
	cmd.Flags().StringVar(&daemonOpts.barFormat, "bar-format", "",
		"Bar text template for the shown notification")
	cmd.Flags().BoolVar(&daemonOpts.noWatch, "no-watch", false,
		"Do not reload the config file when it changes")
}

// applyFormatOverrides copies non-empty format flags over the config.
func applyFormatOverrides(cfg *config.Config) {
	if daemonOpts.readFormat != "" {
		cfg.Format.Read = daemonOpts.readFormat
	}
	if daemonOpts.unreadFormat != "" {
		cfg.Format.Unread = daemonOpts.unreadFormat
	}
	if daemonOpts.barFormat != "" {
		cfg.Format.Bar = daemonOpts.barFormat
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	configPath := globalOpts.configPath
	if configPath == "" {
		configPath = config.ConfigPath()
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyFormatOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid format flags: %w", err)
	}

	logger.Info("starting glance", "config", configPath)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	info := dbus.DefaultServerInfo()
	info.Version = version

	service := daemon.NewService(daemon.ServiceOptions{
		Templates:  cfg.Templates(),
		History:    cfg.HistoryOptions(),
		ServerInfo: info,
		Output:     os.Stdout,
		Logger:     logger,
	})

	loop := daemon.NewLoop(logger)
	bridge := daemon.NewBridge(ctx, loop, service)

	triggers := daemon.SignalTriggers(cfg.Signals)
	sigCh, stopSignals := daemon.NotifySignals(triggers)
	defer stopSignals()
	loop.SetSignalHandler(sigCh, service.SignalHandler(triggers))

	loopErr := make(chan error, 1)
	go func() { loopErr <- loop.Run(ctx) }()

	if err := loop.Do(ctx, service.RenderInitial); err != nil {
		return err
	}

	server := dbus.NewNotificationServer(logger)
	server.SetServerInfo(info)
	server.SetNotifyHandler(bridge.Notify)
	server.SetCloseHandler(bridge.Close)
	server.SetControlHandler(bridge)

	if err := server.Start(); err != nil {
		if errors.Is(err, dbus.ErrNameTaken) {
			return fmt.Errorf("another notification daemon is running: %w", err)
		}
		return fmt.Errorf("failed to start D-Bus server: %w", err)
	}
	defer func() {
		if err := server.Stop(); err != nil {
			logger.Warn("error stopping D-Bus server", "error", err)
		}
	}()

	notifier := daemon.NewInternalNotifier(logger)
	notifier.SetNotifyHandler(bridge.Notify)
	notifier.SetEnabled(cfg.Notify.Internal)
	notifier.SetMinInterval(cfg.Notify.MinInterval.Duration())

	if !daemonOpts.noWatch {
		watcher, err := startConfigWatcher(configPath, cfg, bridge, notifier)
		if err != nil {
			logger.Warn("config hot reload disabled", "error", err)
		} else {
			defer func() {
				if err := watcher.Stop(); err != nil {
					logger.Warn("error stopping config watcher", "error", err)
				}
			}()
		}
	}

	if ok, err := sddaemon.SdNotify(false, sddaemon.SdNotifyReady); err != nil {
		logger.Debug("sd_notify failed", "error", err)
	} else if ok {
		logger.Debug("notified systemd of readiness")
	}

	logger.Info("glance ready",
		"mark_read", config.SigRTMin+cfg.Signals.MarkRead,
		"previous", config.SigRTMin+cfg.Signals.Previous,
		"next", config.SigRTMin+cfg.Signals.Next,
	)

	err = <-loopErr
	_, _ = sddaemon.SdNotify(false, sddaemon.SdNotifyStopping)
	logger.Info("glance stopped")

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// startConfigWatcher reloads templates and history options when the config
// file changes. Signal offsets only apply on restart.
func startConfigWatcher(path string, current *config.Config, bridge *daemon.Bridge, notifier *daemon.InternalNotifier) (*daemon.ConfigWatcher, error) {
	watcher, err := daemon.NewConfigWatcher(path, logger)
	if err != nil {
		return nil, err
	}

	signals := current.Signals
	watcher.SetReloadCallback(func(cfg *config.Config) {
		applyFormatOverrides(cfg)

		if err := bridge.SetTemplates(cfg.Templates()); err != nil {
			logger.Warn("rejected reloaded templates", "error", err)
			notifier.NotifyTemplateError(err)
			return
		}
		if err := bridge.SetHistoryOptions(cfg.HistoryOptions()); err != nil {
			logger.Warn("failed to apply history options", "error", err)
		}

		notifier.SetEnabled(cfg.Notify.Internal)
		notifier.SetMinInterval(cfg.Notify.MinInterval.Duration())

		if cfg.Signals != signals {
			logger.Warn("signal offsets changed; restart glance to apply them")
		}
	})
	watcher.SetErrorCallback(func(err error) {
		notifier.NotifyConfigError(err)
	})

	if err := watcher.Start(); err != nil {
		_ = watcher.Stop()
		return nil, err
	}
	return watcher, nil
}
