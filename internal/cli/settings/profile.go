package settings

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/constants"
	"github.com/julianstephens/studylit/internal/profile"
)

type ProfileShowCmd struct{}

func (c *ProfileShowCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profiles.Get(ctx.Ctx, ctx.UserID)
	if err != nil {
		return err
	}

	fmt.Fprintln(cli.Out, cli.Header("Profile"))
	fmt.Fprintf(cli.Out, "  User ID:       %s\n", ctx.UserID)
	fmt.Fprintf(cli.Out, "  Username:      %s\n", orNone(p.Username))
	fmt.Fprintf(cli.Out, "  Exam date:     %s\n", orNone(p.ExamDate))
	if p.RolloverHour == nil {
		fmt.Fprintf(cli.Out, "  Rollover hour: %d %s\n", constants.DefaultRolloverHour, cli.Muted("(default)"))
	} else {
		fmt.Fprintf(cli.Out, "  Rollover hour: %d\n", profile.EffectiveRolloverHour(p))
	}
	fmt.Fprintf(cli.Out, "  Avatar:        %s\n", orNone(p.AvatarPath))
	return nil
}

type ProfileSetCmd struct {
	Username          *string `help:"Display name."`
	ExamDate          *string `help:"Exam date (YYYY-MM-DD); empty clears it." name:"exam-date"`
	RolloverHour      *int    `help:"Hour (0-23, JST) at which the study day starts." name:"rollover-hour"`
	ResetRolloverHour bool    `help:"Return to the default rollover hour." name:"reset-rollover-hour"`
	Avatar            *string `help:"Stored avatar image path."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	p, err := ctx.Profiles.Save(ctx.Ctx, ctx.UserID, profile.Update{
		Username:          c.Username,
		ExamDate:          c.ExamDate,
		RolloverHour:      c.RolloverHour,
		ClearRolloverHour: c.ResetRolloverHour,
		AvatarPath:        c.Avatar,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Profile updated (rollover hour %d)\n", profile.EffectiveRolloverHour(p))
	return nil
}

func orNone(s string) string {
	if s == "" {
		return cli.Muted("(none)")
	}
	return s
}
