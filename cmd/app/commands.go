package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/nancruz/blogindex/internal"
	"github.com/nancruz/blogindex/internal/mcpserver"
	"github.com/nancruz/blogindex/internal/postindex"
	"github.com/nancruz/blogindex/internal/postservice"
	pkgconfig "github.com/nancruz/blogindex/pkg/config"
)

// loadConfig reads the config file when present and applies flag overrides.
// Read-only commands work without a config file.
func loadConfig(cmd *cli.Command) (*internal.Config, error) {
	configPath := cmd.String("config")

	cfg := internal.NewDefaultConfig()
	if _, err := pkgconfig.LoadOptional(configPath, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	// A flag beats the file.
	if content := cmd.String("content"); content != "" {
		cfg.Content.Path = content
	}
	return cfg, nil
}

// openService builds a post service with logs on stderr, keeping stdout
// for command output.
func openService(cmd *cli.Command, withSearch bool) (*postservice.Service, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	if !withSearch {
		cfg.SQLite.Path = ""
	}
	logger := internal.NewLogger(os.Stderr, cfg.App.LogLevel)
	slog.SetDefault(logger)
	return internal.OpenService(cfg, logger)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	opts := []internal.Option{
		internal.WithConfig(cfg),
	}

	if err := internal.Run(ctx, opts...); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}

	return nil
}

func list(ctx context.Context, cmd *cli.Command) error {
	svc, closeSvc, err := openService(cmd, false)
	if err != nil {
		return err
	}
	defer closeSvc()

	posts, err := svc.ListPosts(ctx, cmd.String("tag"))
	if err != nil {
		return err
	}
	return printJSON(posts)
}

func get(ctx context.Context, cmd *cli.Command) error {
	slug := cmd.Args().First()
	if slug == "" {
		return errors.New("get: slug argument is required")
	}

	svc, closeSvc, err := openService(cmd, false)
	if err != nil {
		return err
	}
	defer closeSvc()

	post, err := svc.GetPost(ctx, slug, cmd.Bool("html"))
	if err != nil {
		return err
	}
	return printJSON(post)
}

func tags(ctx context.Context, cmd *cli.Command) error {
	svc, closeSvc, err := openService(cmd, false)
	if err != nil {
		return err
	}
	defer closeSvc()

	all, err := svc.Tags(ctx)
	if err != nil {
		return err
	}
	return printJSON(all)
}

func check(ctx context.Context, cmd *cli.Command) error {
	svc, closeSvc, err := openService(cmd, false)
	if err != nil {
		return err
	}
	defer closeSvc()

	issues, err := svc.Check(ctx)
	if err != nil {
		return err
	}
	if issues == nil {
		issues = []postindex.Issue{}
	}
	if err := printJSON(issues); err != nil {
		return err
	}
	if postindex.HasErrors(issues) {
		return fmt.Errorf("check: %d issue(s), at least one post failed to parse", len(issues))
	}
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	svc, closeSvc, err := openService(cmd, true)
	if err != nil {
		return err
	}
	defer closeSvc()

	if svc.SearchDB() != nil {
		if err := svc.Reindex(ctx); err != nil {
			slog.Warn("initial sync failed", slog.String("error", err.Error()))
		}
	}
	return mcpserver.New(svc, version).ServeStdio()
}
