package todos

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
)

type TemplateAddCmd struct {
	Title  string `arg:"" help:"To-do title."`
	Repeat string `short:"r" help:"Day type the to-do repeats on (weekday|weekend)." default:"weekday" enum:"weekday,weekend"`
}

func (c *TemplateAddCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Todos.CreateTemplate(ctx.Ctx, ctx.UserID, c.Title, models.DayType(c.Repeat))
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Added %s to-do: %s (ID: %s)\n", t.RepeatType, t.Title, t.ID)
	return nil
}

type TemplateListCmd struct {
	Repeat   string `short:"r" help:"Only list one day type (weekday|weekend)."`
	Inactive bool   `help:"Include deactivated to-dos."`
	ShowIDs  bool   `help:"Show template IDs." name:"show-ids"`
}

func (c *TemplateListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Todos.ListTemplates(ctx.Ctx, ctx.UserID, models.DayType(c.Repeat), c.Inactive)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}
	if len(list) == 0 {
		fmt.Fprintln(cli.Out, "No to-dos found")
		return nil
	}
	fmt.Fprintln(cli.Out, cli.Header("To-dos:"))
	cli.RenderTemplates(cli.Out, list, c.ShowIDs)
	return nil
}

type TemplateRenameCmd struct {
	ID    string `arg:"" help:"Template ID."`
	Title string `arg:"" help:"New title."`
}

func (c *TemplateRenameCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Todos.RenameTemplate(ctx.Ctx, ctx.UserID, c.ID, c.Title)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Renamed to: %s\n", t.Title)
	return nil
}

type TemplateDeleteCmd struct {
	ID  string `arg:"" help:"Template ID."`
	Yes bool   `short:"y" help:"Skip confirmation."`
}

func (c *TemplateDeleteCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Store.GetTemplate(ctx.Ctx, ctx.UserID, c.ID)
	if err != nil {
		return fmt.Errorf("template %s: %w", c.ID, err)
	}

	ok, err := cli.Confirm(fmt.Sprintf("Stop repeating %q? History is kept.", t.Title), c.Yes)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cli.Out, "Cancelled.")
		return nil
	}

	hour, err := ctx.RolloverHour()
	if err != nil {
		return err
	}
	if _, err := ctx.Todos.DeactivateTemplate(ctx.Ctx, ctx.UserID, c.ID, hour); err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Deactivated: %s\n", t.Title)
	return nil
}
