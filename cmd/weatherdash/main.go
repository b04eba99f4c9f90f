package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"weatherdash.app/internal/adapters/infrastructure"
	"weatherdash.app/internal/app"
	"weatherdash.app/internal/config"
	"weatherdash.app/internal/core/city"
	"weatherdash.app/internal/schema"
	applog "weatherdash.app/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

func main() {
	// Load environment variables from .env file if present
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found or error loading it")
	}

	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		slog.Error("Command failed", "command", os.Args[1], "error", err)
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, command string, args []string, out io.Writer) error {
	switch command {
	case "schema":
		return schema.Write(out, args...)
	case "mock-backend":
		return runMockBackend(ctx)
	case "config":
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		return printJSON(out, infrastructure.NewConfigDisplayAdapter(cfg).Entries())
	case "dashboard", "search", "favorites", "chat", "health":
		return withApplication(ctx, func(application *app.Application) error {
			return runClientCommand(ctx, application, command, args, out)
		})
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Weather dashboard client")
	fmt.Fprintln(w, "Usage: weatherdash <command> [arguments]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  dashboard                               - Load preferences, favorites and weather of the default city")
	fmt.Fprintln(w, "  search <keyword>                        - Search cities")
	fmt.Fprintln(w, "  favorites                               - List favorite cities")
	fmt.Fprintln(w, "  favorites add <name> <country> <lat> <lon>")
	fmt.Fprintln(w, "  favorites remove <name> <country> <lat> <lon>")
	fmt.Fprintln(w, "  chat <question>                         - Ask the assistant about the default city")
	fmt.Fprintln(w, "  health                                  - Check the backend and notifier")
	fmt.Fprintln(w, "  schema [name...]                        - Print the JSON Schema of the DTOs")
	fmt.Fprintln(w, "  config                                  - Print the effective configuration")
	fmt.Fprintln(w, "  mock-backend                            - Serve the backend API from a local database")
}

func withApplication(ctx context.Context, fn func(*app.Application) error) error {
	application, err := app.NewApplication()
	if err != nil {
		return fmt.Errorf("initialize application: %w", err)
	}
	application.Start()

	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()
		if err := application.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during graceful shutdown", "error", err)
		}
	}()

	return fn(application)
}

func runClientCommand(ctx context.Context, application *app.Application, command string, args []string, out io.Writer) error {
	switch command {
	case "dashboard":
		dashboard, err := application.LoadDashboard(ctx)
		if printErr := printJSON(out, dashboard); printErr != nil {
			return printErr
		}
		return err
	case "search":
		if len(args) == 0 {
			return fmt.Errorf("search requires a keyword")
		}
		cities, err := application.SearchCities(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(out, cities)
	case "favorites":
		return runFavorites(ctx, application, args, out)
	case "chat":
		if len(args) == 0 {
			return fmt.Errorf("chat requires a question")
		}
		resp, err := application.Ask(ctx, strings.Join(args, " "))
		if err != nil {
			return err
		}
		return printJSON(out, resp)
	case "health":
		return printJSON(out, application.Health(ctx))
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func runFavorites(ctx context.Context, application *app.Application, args []string, out io.Writer) error {
	if len(args) == 0 || args[0] == "list" {
		list, err := application.Favorites(ctx)
		if err != nil {
			return err
		}
		return printJSON(out, list)
	}

	c, err := parseCity(args[1:])
	if err != nil {
		return err
	}

	switch args[0] {
	case "add":
		added, err := application.AddFavorite(ctx, c)
		if err != nil {
			return err
		}
		return printJSON(out, added)
	case "remove":
		if err := application.RemoveFavorite(ctx, c.Key()); err != nil {
			return err
		}
		return printJSON(out, application.FavoriteStore().Favorites())
	default:
		return fmt.Errorf("unknown favorites command: %s", args[0])
	}
}

func parseCity(args []string) (city.City, error) {
	if len(args) != 4 {
		return city.City{}, fmt.Errorf("expected <name> <country> <lat> <lon>")
	}
	lat, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return city.City{}, fmt.Errorf("invalid latitude %q: %w", args[2], err)
	}
	lon, err := strconv.ParseFloat(args[3], 64)
	if err != nil {
		return city.City{}, fmt.Errorf("invalid longitude %q: %w", args[3], err)
	}
	return city.City{Name: args[0], Country: args[1], Lat: lat, Lon: lon}, nil
}

func runMockBackend(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	base := applog.New(applog.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}).
		WithField("service", "mock-backend")
	backend, err := app.NewMockBackend(cfg.MockBackend, infrastructure.NewSlogLoggerAdapter(base.Logger))
	if err != nil {
		return err
	}

	go func() {
		<-ctx.Done()
		slog.Info("Received shutdown signal...")

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer shutdownCancel()

		if err := backend.Shutdown(shutdownCtx); err != nil {
			slog.Error("Error during graceful shutdown", "error", err)
		}
	}()

	return backend.Start(ctx)
}

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
