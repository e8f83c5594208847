package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"gigcal/internal/formatter"
	"gigcal/internal/shared"
	"gigcal/internal/ui"
)

// Search performs a keyword lookup against the discovery service and prints
// the results without entering the calendar flow.
func (r *Runner) Search(ctx context.Context, cmd *cli.Command) error {
	keyword := cmd.StringArg("keyword")
	format := cmd.String("format")
	useJSON := cmd.Bool("json")

	if keyword == "" {
		return fmt.Errorf("%w: keyword", shared.ErrMissingArgument)
	}

	r.logger.Info("searching events", "keyword", keyword)

	events, err := r.events.Search(ctx, keyword)
	if errors.Is(err, shared.ErrNoEvents) {
		r.writePlain("%s\n", ui.Warn(fmt.Sprintf("No events found for %q", keyword)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstream, err)
	}

	if useJSON {
		return r.writeJSON(events, true)
	}

	switch format {
	case "csv":
		data, err := formatter.ExportToCSV(events)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case "md", "markdown":
		return r.writePlain("%s", formatter.ExportToMarkdown(keyword, events))
	default:
		return r.writePlain("%s", formatter.ExportToText(keyword, events))
	}
}

// searchCommand looks up events from the command line
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the event discovery service by keyword",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "keyword",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, csv, md",
				Value:   "text",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Search,
	}
}
