// Command askbot is a Discord bot that answers questions with Gemini,
// streaming each answer into the channel as it is generated.
//
// Usage:
//
//	DISCORD_BOT_TOKEN=... GEMINI_API_KEY=... askbot [flags]
//	GEMINI_API_KEY=... askbot -console
//
// Secrets are read from the environment and from a .env file in the
// working directory, if present.
//
// Flags:
//
//	-config string     Path to a TOML config file
//	-console           Chat with the bot in the terminal instead of Discord
//	-log-level string  Log level: debug, info, warn, error (overrides config)
//	-log-file string   Append logs to this file instead of stderr
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fwojciec/askbot"
	bt "github.com/fwojciec/askbot/bubbletea"
	"github.com/fwojciec/askbot/discord"
	"github.com/fwojciec/askbot/gemini"
	"github.com/fwojciec/askbot/inmem"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "askbot: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath = flag.String("config", "", "Path to a TOML config file")
		console    = flag.Bool("console", false, "Chat with the bot in the terminal instead of Discord")
		logLevel   = flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
		logFile    = flag.String("log-file", "", "Append logs to this file instead of stderr")
	)
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// A missing .env is normal in deployments that set the environment
	// directly.
	envErr := godotenv.Load()

	cfg, err := loadConfig(*configPath, os.Getenv)
	if err != nil {
		return err
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if err := cfg.validate(*console); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.LogLevel, *logFile, *console)
	if err != nil {
		return err
	}
	defer closeLog()
	if envErr != nil {
		logger.Debug("no .env file loaded", slog.Any("error", envErr))
	}

	client, err := gemini.New(ctx, cfg.GeminiAPIKey, cfg.geminiOptions()...)
	if err != nil {
		return err
	}
	fast, deep := cfg.tiers()
	commands := []askbot.Command{
		{Tier: fast, Store: inmem.NewStore(client.SessionFactory(fast.Model))},
		{Tier: deep, Store: inmem.NewStore(client.SessionFactory(deep.Model))},
	}

	if *console {
		return runConsole(ctx, cfg, logger, commands)
	}
	return runDiscord(ctx, cfg, logger, commands)
}

func runDiscord(ctx context.Context, cfg config, logger *slog.Logger, commands []askbot.Command) error {
	bot, err := discord.New(cfg.DiscordToken, discord.WithLogger(logger))
	if err != nil {
		return err
	}
	messenger := bot.Messenger()
	router := newRouter(cfg, logger, messenger, commands)

	logger.Info("starting", slog.String("prefix", router.Prefix()))
	return bot.Run(ctx, router)
}

func runConsole(ctx context.Context, cfg config, logger *slog.Logger, commands []askbot.Command) error {
	ch := bt.NewChannel("")
	router := newRouter(cfg, logger, ch, commands)
	m := bt.New(router, ch, askbot.DefaultTheme(), bt.WithPrefix(router.Prefix()))
	if err := bt.Run(ctx, m, ch); err != nil {
		return fmt.Errorf("TUI: %w", err)
	}
	return nil
}

func newRouter(cfg config, logger *slog.Logger, m askbot.Messenger, commands []askbot.Command) *askbot.Router {
	coordinator := askbot.NewCoordinator(m,
		askbot.WithLogger(logger),
		askbot.WithEditInterval(cfg.EditInterval),
	)
	return askbot.NewRouter(cfg.Prefix, coordinator, m, commands...)
}

// newLogger builds a text logger at level. Logs go to file when set. The
// console owns the terminal, so without a file its logs are discarded.
func newLogger(level, file string, console bool) (*slog.Logger, func(), error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, nil, err
	}
	var (
		w       io.Writer = os.Stderr
		closeFn           = func() {}
	)
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case console:
		w = io.Discard
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
	return logger, closeFn, nil
}
