// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/poiesic/overlap/config"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "overlap",
		Usage: "Score how much every pair of documents in a collection overlaps",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "analyze",
				Usage:  "Compare every pair of documents in a directory",
				Action: analyzeCommand,
				Flags: append(reportFlags(),
					&cli.StringFlag{
						Name:     "dir",
						Aliases:  []string{"d"},
						Usage:    "Directory of .pdf, .txt and .md documents",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "embedding-host",
						Usage: "OpenAI-compatible embedding service URL",
					},
					&cli.StringFlag{
						Name:  "cache-dir",
						Usage: "Directory of the vector cache",
					},
					&cli.BoolFlag{
						Name:  "no-cache",
						Usage: "Disable the vector cache",
					},
					&cli.StringFlag{
						Name:  "scores",
						Usage: "Also write the per-strategy scores as JSON to this file",
					},
					&cli.BoolFlag{
						Name:    "quiet",
						Aliases: []string{"q"},
						Usage:   "Do not print embedding progress",
					},
				),
			},
			{
				Name:   "fuse",
				Usage:  "Fuse and rank per-strategy scores written by analyze --scores",
				Action: fuseCommand,
				Flags: append(reportFlags(),
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "JSON file holding a list of score maps",
						Required: true,
					},
				),
			},
			{
				Name:  "cache",
				Usage: "Manage the vector cache",
				Subcommands: []*cli.Command{
					{
						Name:   "purge",
						Usage:  "Delete cached vectors",
						Action: purgeCommand,
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:     "cache-dir",
								Usage:    "Directory of the vector cache",
								Required: true,
							},
							&cli.StringFlag{
								Name:  "model",
								Usage: "Only delete the vectors of this embedding model",
							},
						},
					},
				},
			},
		},
	}
}

// reportFlags are shared by the commands that produce a report.
func reportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "YAML settings file (default $OVERLAP_CONFIG)",
		},
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Report format (text, json, pdf)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the report to this file instead of stdout",
		},
		&cli.IntFlag{
			Name:  "top-k",
			Usage: "Number of pairs in the top list",
		},
		&cli.Float64Flag{
			Name:  "threshold",
			Usage: "Composite score at which a pair is flagged",
		},
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))
	level, err := config.ParseLogLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}
	configureLogger(c, level)
	return nil
}

func configureLogger(c *cli.Context, level slog.Level) {
	logger := slog.New(slog.NewTextHandler(c.App.ErrWriter, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}
