package plans

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/cli/sessions"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/study"
)

type PlanAddCmd struct {
	Title string `arg:"" help:"Plan title."`
	Start string `short:"s" help:"Start date (YYYY-MM-DD)." required:""`
	End   string `short:"e" help:"End date (YYYY-MM-DD), inclusive. Defaults to the start date."`
	Color string `short:"c" help:"Calendar color." default:"purple"`
}

func (c *PlanAddCmd) Run(ctx *cli.Context) error {
	end := c.End
	if end == "" {
		end = c.Start
	}

	p, err := ctx.Study.CreatePlan(ctx.Ctx, ctx.UserID, study.PlanInput{
		Title:     c.Title,
		StartDate: c.Start,
		EndDate:   end,
		Color:     models.PlanColor(c.Color),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Added plan %s (%s → %s, ID: %s)\n", p.Title, p.StartDate, p.EndDate, p.ID)
	return nil
}

type PlanEditCmd struct {
	ID    string `arg:"" help:"Plan ID."`
	Title string `help:"New title."`
	Start string `short:"s" help:"New start date (YYYY-MM-DD)."`
	End   string `short:"e" help:"New end date (YYYY-MM-DD)."`
	Color string `short:"c" help:"New calendar color."`
}

func (c *PlanEditCmd) Run(ctx *cli.Context) error {
	cur, err := ctx.Store.GetPlan(ctx.Ctx, ctx.UserID, c.ID)
	if err != nil {
		return fmt.Errorf("plan %s: %w", c.ID, err)
	}

	in := study.PlanInput{Title: cur.Title, StartDate: cur.StartDate, EndDate: cur.EndDate, Color: cur.Color}
	if c.Title != "" {
		in.Title = c.Title
	}
	if c.Start != "" {
		in.StartDate = c.Start
	}
	if c.End != "" {
		in.EndDate = c.End
	}
	if c.Color != "" {
		in.Color = models.PlanColor(c.Color)
	}

	p, err := ctx.Study.UpdatePlan(ctx.Ctx, ctx.UserID, c.ID, in)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Updated plan %s (%s → %s)\n", p.Title, p.StartDate, p.EndDate)
	return nil
}

type PlanDeleteCmd struct {
	ID string `arg:"" help:"Plan ID."`
}

func (c *PlanDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Study.DeletePlan(ctx.Ctx, ctx.UserID, c.ID); err != nil {
		return err
	}
	fmt.Fprintln(cli.Out, "✓ Plan deleted")
	return nil
}

type PlanListCmd struct {
	Range sessions.Range `embed:""`
}

func (c *PlanListCmd) Run(ctx *cli.Context) error {
	from, to, err := c.Range.Resolve(ctx)
	if err != nil {
		return err
	}

	list, err := ctx.Study.ListPlans(ctx.Ctx, ctx.UserID, from, to)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cli.Out, "No plans found")
		return nil
	}
	for _, p := range list {
		fmt.Fprintf(cli.Out, "  %s → %s  %s %s %s\n", p.StartDate, p.EndDate, p.Title,
			cli.Muted("["+string(p.Color)+"]"), cli.Muted("("+p.ID+")"))
	}
	return nil
}
