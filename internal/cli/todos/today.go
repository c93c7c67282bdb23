package todos

import (
	"fmt"
	"time"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/daytime"
)

type TodayCmd struct {
	ShowIDs bool `help:"Show entry IDs." name:"show-ids"`
}

func (c *TodayCmd) Run(ctx *cli.Context) error {
	hour, err := ctx.RolloverHour()
	if err != nil {
		return err
	}

	entries, err := ctx.Todos.Today(ctx.Ctx, ctx.UserID, hour)
	if err != nil {
		return fmt.Errorf("failed to load today's list: %w", err)
	}
	day := daytime.Resolve(hour, time.Now())
	cli.RenderTodos(cli.Out, day.Date, entries, c.ShowIDs)

	other, err := ctx.Todos.OtherDayTemplates(ctx.Ctx, ctx.UserID, hour)
	if err != nil {
		return err
	}
	if len(other) > 0 {
		fmt.Fprintf(cli.Out, "\n%s\n", cli.Muted(fmt.Sprintf("%s templates (not today):", day.Type.Opposite())))
		for _, t := range other {
			fmt.Fprintf(cli.Out, "  %s\n", cli.Muted(t.Title))
		}
	}
	return nil
}

type ToggleCmd struct {
	Entry string `arg:"" help:"Position in today's list (1-based) or entry ID."`
}

func (c *ToggleCmd) Run(ctx *cli.Context) error {
	hour, err := ctx.RolloverHour()
	if err != nil {
		return err
	}

	entries, err := ctx.Todos.Today(ctx.Ctx, ctx.UserID, hour)
	if err != nil {
		return err
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	id, err := cli.ResolveEntry(ids, c.Entry)
	if err != nil {
		return err
	}

	entry, err := ctx.Todos.ToggleTodo(ctx.Ctx, ctx.UserID, id, hour)
	if err != nil {
		return err
	}
	state := "not done"
	if entry.IsDone {
		state = "done"
	}
	fmt.Fprintf(cli.Out, "✓ %s marked %s\n", entry.Title, state)
	return nil
}

type RolloverCmd struct{}

func (c *RolloverCmd) Run(ctx *cli.Context) error {
	hour, err := ctx.RolloverHour()
	if err != nil {
		return err
	}

	res, err := ctx.Todos.RolloverProgress(ctx.Ctx, ctx.UserID, hour)
	if err != nil {
		return fmt.Errorf("rollover failed: %w", err)
	}
	if res.Removed == 0 {
		fmt.Fprintf(cli.Out, "Nothing to roll over (today is %s)\n", res.Today)
		return nil
	}
	fmt.Fprintf(cli.Out, "✓ Rolled over %d entries (%d unfinished archived)\n", res.Removed, res.Archived)
	ctx.PerformAutomaticBackup()
	return nil
}
