package todos

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/study"
)

// HistoryRange defaults to the last seven effective days.
type HistoryRange struct {
	From string `help:"First date (YYYY-MM-DD). Defaults to six days before today."`
	To   string `help:"Last date (YYYY-MM-DD). Defaults to today."`
}

func (r HistoryRange) load(ctx *cli.Context) ([]models.HistoryRecord, string, string, error) {
	hour, err := ctx.RolloverHour()
	if err != nil {
		return nil, "", "", err
	}
	to := r.To
	if to == "" {
		to = daytime.Resolve(hour, time.Now()).Date
	}
	from := r.From
	if from == "" {
		if from, err = daytime.AddDays(to, -6); err != nil {
			return nil, "", "", err
		}
	}
	if err := study.CheckRange(from, to); err != nil {
		return nil, "", "", err
	}

	records, err := ctx.Todos.History(ctx.Ctx, ctx.UserID, from, to)
	if err != nil {
		return nil, "", "", err
	}
	return records, from, to, nil
}

type HistoryListCmd struct {
	Range HistoryRange `embed:""`
}

func (c *HistoryListCmd) Run(ctx *cli.Context) error {
	records, from, to, err := c.Range.load(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.Out, cli.Header(fmt.Sprintf("History %s → %s", from, to)))
	if len(records) == 0 {
		fmt.Fprintln(cli.Out, cli.Muted("  no records"))
		return nil
	}

	date := ""
	for _, r := range records {
		if r.Date != date {
			date = r.Date
			fmt.Fprintf(cli.Out, "%s\n", date)
		}
		box := "[ ]"
		if r.IsDone {
			box = "[x]"
		}
		fmt.Fprintf(cli.Out, "  %s %s\n", box, r.Title)
	}
	return nil
}

type HistoryExportCmd struct {
	Range  HistoryRange `embed:""`
	Format string       `short:"f" help:"Output format (yaml|json)." default:"yaml" enum:"yaml,json"`
}

func (c *HistoryExportCmd) Run(ctx *cli.Context) error {
	records, _, _, err := c.Range.load(ctx)
	if err != nil {
		return err
	}
	if records == nil {
		records = []models.HistoryRecord{}
	}

	if c.Format == "json" {
		enc := json.NewEncoder(cli.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}
	enc := yaml.NewEncoder(cli.Out)
	defer enc.Close()
	return enc.Encode(records)
}
