package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"gigcal/internal/repositories"
	"gigcal/internal/shared"
	"gigcal/internal/ui"
)

// History lists recorded calendar insertions, newest first.
func (r *Runner) History(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd.String("config"))
	useJSON := cmd.Bool("json")

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	repo := repositories.NewInsertionRepository(db)
	insertions, err := repo.List(nil)
	if err != nil {
		return fmt.Errorf("failed to list insertions: %w", err)
	}

	if useJSON {
		type row struct {
			ID              string `json:"id"`
			EventName       string `json:"event_name"`
			StartDate       string `json:"start_date"`
			EndDate         string `json:"end_date"`
			CalendarEventID string `json:"calendar_event_id"`
			CreatedAt       string `json:"created_at"`
		}
		rows := make([]row, 0, len(insertions))
		for _, ins := range insertions {
			rows = append(rows, row{
				ID:              ins.ID(),
				EventName:       ins.EventName,
				StartDate:       ins.StartDate,
				EndDate:         ins.EndDate,
				CalendarEventID: ins.CalendarEventID,
				CreatedAt:       ins.CreatedAt().Format("2006-01-02 15:04:05"),
			})
		}
		return r.writeJSON(rows, true)
	}

	if len(insertions) == 0 {
		r.writePlain("%s\n", ui.Help("No calendar insertions recorded yet."))
		return nil
	}

	r.writePlain("%s\n", ui.Title(fmt.Sprintf("%d calendar insertions", len(insertions))))
	for i, ins := range insertions {
		r.writePlain("%d. %s\n", i+1, ins.EventName)
		r.writePlain("   Dates: %s - %s\n", ins.StartDate, ins.EndDate)
		if ins.CalendarEventID != "" {
			r.writePlain("   Calendar entry: %s\n", ins.CalendarEventID)
		}
		r.writePlain("   Added: %s\n", ins.CreatedAt().Format("2006-01-02 15:04"))
	}

	return nil
}

// historyCommand inspects the insertion audit trail
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "List events added to the calendar",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.History,
	}
}
