package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"WorkBoard/internal/board"
	"WorkBoard/internal/config"
	"WorkBoard/internal/export"
	"WorkBoard/internal/logging"
	"WorkBoard/internal/net"
	"WorkBoard/internal/ui"
)

const discoverTimeout = 3 * time.Second

func main() {
	configPath := flag.String("config", config.Path(), "path to config.toml or config.yaml")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "workboard:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		if err := config.Save(config.DefaultConfig(), configPath); err != nil {
			slog.Warn("[CONFIG] could not write defaults", slog.String("path", configPath), slog.Any("err", err))
		}
	}

	loader := config.NewLoader(configPath)
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	if _, err := logging.Setup(logging.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format}); err != nil {
		return err
	}

	opts, err := cfg.BoardOptions()
	if err != nil {
		return err
	}
	engine, err := board.New(opts, nil)
	if err != nil {
		return err
	}

	app := ui.NewApp(engine, cfg.Board.InitialHeight)

	checker, err := connectChecker(cfg)
	if err != nil {
		slog.Warn("[CHECK] grading unavailable", slog.Any("err", err))
	} else {
		defer checker.Close()
		engine.SetSubmitter(submitter(loader, checker, app))
	}

	loader.OnChange(func(c *config.Config) {
		opts, err := c.BoardOptions()
		if err != nil {
			slog.Warn("[CONFIG] board options rejected", slog.Any("err", err))
			return
		}
		app.Reconfigure(opts)
	})
	if err := loader.Watch(); err != nil {
		slog.Warn("[CONFIG] hot reload disabled", slog.Any("err", err))
	} else {
		go func() {
			for err := range loader.Errors() {
				app.SetStatus("Settings not applied: " + err.Error())
			}
		}()
	}
	defer loader.Close()

	slog.Info("[UI] starting", slog.String("config", configPath))
	app.Run()
	return nil
}

// connectChecker uses the configured endpoint, or browses the LAN for one.
func connectChecker(cfg *config.Config) (net.Checker, error) {
	endpoint := cfg.Checker.Endpoint
	if endpoint == "" {
		if !cfg.Checker.Discover {
			return nil, errors.New("no checker endpoint configured")
		}
		ctx, cancel := context.WithTimeout(context.Background(), discoverTimeout+time.Second)
		defer cancel()
		found, err := net.Discover(ctx, discoverTimeout)
		if err != nil {
			return nil, err
		}
		endpoint = found
	}
	return net.NewChecker(endpoint, cfg.Timeout())
}

// submitter grades an exported image and puts the verdict on the board. The
// question is read at submit time so a config reload can change it.
func submitter(loader *config.Loader, checker net.Checker, app *ui.App) board.Submitter {
	return func(ctx context.Context, img export.Image) error {
		cc := loader.Config().Checker
		ctx, cancel := context.WithTimeout(ctx, time.Duration(cc.TimeoutSec)*time.Second)
		defer cancel()

		res, err := checker.Check(ctx, net.CheckRequest{
			ImageData:     img.DataURI,
			Question:      cc.Question,
			CorrectAnswer: cc.CorrectAnswer,
			ProblemType:   cc.ProblemType,
		})
		if err != nil {
			return err
		}
		app.ShowVerdict(ui.Verdict{
			Correct: res.OverallCorrect,
			Summary: res.GeneralFeedback,
			Items:   res.FeedbackItems,
		})
		return nil
	}
}
