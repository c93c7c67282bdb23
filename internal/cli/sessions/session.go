package sessions

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/study"
)

type SessionLogCmd struct {
	Minutes int `arg:"" help:"Minutes studied."`
}

func (c *SessionLogCmd) Run(ctx *cli.Context) error {
	hour, err := ctx.RolloverHour()
	if err != nil {
		return err
	}

	sess, err := ctx.Study.LogSession(ctx.Ctx, ctx.UserID, c.Minutes, hour)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Logged %d minutes on %s\n", sess.Minutes, sess.StudyDate)
	return nil
}

// Range is a from/to pair defaulting to the current week.
type Range struct {
	From string `help:"First date (YYYY-MM-DD). Defaults to this week's Monday."`
	To   string `help:"Last date (YYYY-MM-DD). Defaults to today."`
}

func (r Range) Resolve(ctx *cli.Context) (string, string, error) {
	hour, err := ctx.RolloverHour()
	if err != nil {
		return "", "", err
	}
	to := r.To
	if to == "" {
		to = daytime.Resolve(hour, time.Now()).Date
	}
	from := r.From
	if from == "" {
		if from, err = daytime.WeekStart(to); err != nil {
			return "", "", err
		}
	}
	if err := study.CheckRange(from, to); err != nil {
		return "", "", err
	}
	return from, to, nil
}

type SessionListCmd struct {
	Range Range `embed:""`
}

func (c *SessionListCmd) Run(ctx *cli.Context) error {
	from, to, err := c.Range.Resolve(ctx)
	if err != nil {
		return err
	}

	list, err := ctx.Study.ListSessions(ctx.Ctx, ctx.UserID, from, to)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cli.Out, "No study sessions found")
		return nil
	}
	for _, s := range list {
		fmt.Fprintf(cli.Out, "  %s  %3dm  %s\n", s.StudyDate, s.Minutes, cli.Muted("("+s.ID+")"))
	}
	return nil
}

type SessionTotalsCmd struct {
	Range Range `embed:""`
}

func (c *SessionTotalsCmd) Run(ctx *cli.Context) error {
	from, to, err := c.Range.Resolve(ctx)
	if err != nil {
		return err
	}

	totals, err := ctx.Study.DailyTotals(ctx.Ctx, ctx.UserID, from, to)
	if err != nil {
		return err
	}
	dates := make([]string, 0, len(totals))
	sum := 0
	for d, m := range totals {
		dates = append(dates, d)
		sum += m
	}
	sort.Strings(dates)

	fmt.Fprintln(cli.Out, cli.Header(fmt.Sprintf("Study time %s → %s", from, to)))
	for _, d := range dates {
		fmt.Fprintf(cli.Out, "  %s  %s\n", d, formatMinutes(totals[d]))
	}
	fmt.Fprintf(cli.Out, "  total       %s\n", formatMinutes(sum))
	return nil
}

type SessionDeleteCmd struct {
	ID string `arg:"" help:"Session ID."`
}

func (c *SessionDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Study.DeleteSession(ctx.Ctx, ctx.UserID, c.ID); err != nil {
		return err
	}
	fmt.Fprintln(cli.Out, "✓ Session deleted")
	return nil
}

func formatMinutes(m int) string {
	if m < 60 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%02dm", m/60, m%60)
}
