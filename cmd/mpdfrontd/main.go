// Command mpdfrontd serves the MPD wire protocol against an in-process,
// filesystem-backed reference playback core.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/cmars/mpdfrontd/internal/config"
	"github.com/cmars/mpdfrontd/internal/logging"
	"github.com/cmars/mpdfrontd/internal/mpd"
	"github.com/cmars/mpdfrontd/internal/mpdcore"
)

func main() {
	app := &cli.App{
		Name:  "mpdfrontd",
		Usage: "an MPD-protocol frontend for a filesystem-scanned music library",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Value:   defaultConfigPath(),
				Usage:   "path to the YAML configuration file",
			},
			&cli.StringFlag{
				Name:  "music-dir",
				Usage: "override the configured music_directory",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "override the configured port",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defaultConfigPath() string {
	for _, candidate := range []string{"./mpdfrontd.yaml", "/etc/mpdfrontd/config.yaml"} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return "./mpdfrontd.yaml"
}

func run(cliCtx *cli.Context) error {
	cfg, err := config.LoadConfig(cliCtx.String("config"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if dir := cliCtx.String("music-dir"); dir != "" {
		cfg.MusicDirectory = dir
	}
	if port := cliCtx.Int("port"); port != 0 {
		cfg.Port = port
	}

	log := logging.New(cfg.LogLevel)

	passwordHash, err := resolvePasswordHash(cfg)
	if err != nil {
		return fmt.Errorf("resolve password: %w", err)
	}

	core := mpdcore.NewLocalCore(cfg.MusicDirectory, log.WithField("component", "core"))

	registry := mpd.RegisterAll()
	dispatcher := mpd.NewDispatcher(registry)
	idleRegistry := mpd.NewIdleRegistry()
	go idleRegistry.Run(core.Events())

	uriMap := mpd.NewURIMap()

	listener, err := mpd.NewListener(cfg, core, uriMap, dispatcher, idleRegistry, passwordHash, log.WithField("component", "listener"))
	if err != nil {
		return fmt.Errorf("bind listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.WithField("signal", sig.String()).Info("shutting down")
		cancel()
	}()

	log.WithFields(logrus.Fields{
		"hostname": cfg.Hostname,
		"port":     cfg.Port,
	}).Info("mpdfrontd starting")
	listener.Serve(ctx)
	return nil
}

// resolvePasswordHash turns the config's password fields into the bcrypt
// digest Context.CheckPassword compares against. PasswordHash, if set, is
// already a bcrypt digest; otherwise Password is hashed once at startup.
func resolvePasswordHash(cfg *config.Config) ([]byte, error) {
	if cfg.PasswordHash != "" {
		return []byte(cfg.PasswordHash), nil
	}
	if cfg.Password != "" {
		return mpd.HashPassword(cfg.Password)
	}
	return nil, nil
}
