package sessions

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/profile"
)

type StatsCmd struct{}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profiles.Get(ctx.Ctx, ctx.UserID)
	if err != nil {
		return err
	}

	sum, err := ctx.Study.Summary(ctx.Ctx, ctx.UserID, profile.EffectiveRolloverHour(p), p.ExamDate)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.Out, cli.Header("Summary for "+sum.Today))
	fmt.Fprintf(cli.Out, "  This week:        %s (weekdays %s, weekend %s)\n",
		formatMinutes(sum.WeekMinutes), formatMinutes(sum.WeekdayMinutes), formatMinutes(sum.WeekendMinutes))
	fmt.Fprintf(cli.Out, "  Streak:           %d days\n", sum.StreakDays)
	fmt.Fprintf(cli.Out, "  To-dos completed: %d\n", sum.TotalCompleted)
	if sum.ExamCountdownDays != nil {
		fmt.Fprintf(cli.Out, "  Exam in:          %d days (%s)\n", *sum.ExamCountdownDays, p.ExamDate)
	}
	return nil
}
