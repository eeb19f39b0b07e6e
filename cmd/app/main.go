package main

import (
	"context"
	"log/slog"
	"os"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"
)

var version = "dev"

func main() {
	cmd := &cli.Command{
		Name:    "blogindex",
		Usage:   "Index a directory of Markdown posts with front-matter and serve it as JSON",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "Path to config file",
				DefaultText: "config/config.yaml",
				Value:       "config/config.yaml",
				Sources:     cli.EnvVars("APP_CONFIG_FILE"),
			},
			&cli.StringFlag{
				Name:    "content",
				Usage:   "Content directory (overrides content.path)",
				Sources: cli.EnvVars("BLOGINDEX_CONTENT"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the JSON API, search and live change events",
				Action: serve,
			},
			{
				Name:  "list",
				Usage: "Print all posts, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "tag", Aliases: []string{"t"}, Usage: "Only posts carrying this tag"},
				},
				Action: list,
			},
			{
				Name:      "get",
				Usage:     "Print one post by slug",
				ArgsUsage: "<slug>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "html", Usage: "Include the body rendered to HTML"},
				},
				Action: get,
			},
			{
				Name:   "tags",
				Usage:  "Print every tag in first-appearance order",
				Action: tags,
			},
			{
				Name:   "check",
				Usage:  "Report content problems; exits 1 when any post fails to parse",
				Action: check,
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: mcp,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
