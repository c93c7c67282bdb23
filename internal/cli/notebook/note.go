package notebook

import (
	"fmt"

	"github.com/julianstephens/studylit/internal/cli"
	"github.com/julianstephens/studylit/internal/models"
	"github.com/julianstephens/studylit/internal/notes"
)

type NoteAddCmd struct {
	Title   string `arg:"" help:"Note title."`
	Kind    string `short:"k" help:"Note kind (note|link|image|book)." default:"note" enum:"note,link,image,book"`
	Content string `short:"c" help:"Body text."`
	URL     string `help:"URL for link notes."`
	Image   string `help:"Stored image path for image notes."`
	Author  string `help:"Author for book notes."`
	Pin     bool   `help:"Pin the note."`
}

func (c *NoteAddCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Notes.Add(ctx.Ctx, ctx.UserID, notes.Input{
		Kind:      models.NoteKind(c.Kind),
		Title:     c.Title,
		Content:   c.Content,
		URL:       c.URL,
		ImagePath: c.Image,
		Author:    c.Author,
		Pinned:    c.Pin,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Added %s: %s (ID: %s)\n", n.Kind, n.Title, n.ID)
	return nil
}

type NoteListCmd struct {
	Kind   string `short:"k" help:"Only list one kind (note|link|image|book)."`
	Search string `short:"q" help:"Case-insensitive text to match."`
	Sort   string `help:"Sort key (created_at|title)." default:"created_at" enum:"created_at,title"`
	Order  string `help:"Sort order (asc|desc)." default:"desc" enum:"asc,desc"`
}

func (c *NoteListCmd) Run(ctx *cli.Context) error {
	list, err := ctx.Notes.List(ctx.Ctx, ctx.UserID, models.NoteKind(c.Kind), notes.Query{
		Search: c.Search,
		Sort:   notes.SortKey(c.Sort),
		Order:  notes.SortOrder(c.Order),
	})
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(cli.Out, "No notes found")
		return nil
	}
	for _, n := range list {
		cli.RenderNote(cli.Out, n)
	}
	return nil
}

type NotePinCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NotePinCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Notes.SetPinned(ctx.Ctx, ctx.UserID, c.ID, true)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Pinned: %s\n", n.Title)
	return nil
}

type NoteUnpinCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteUnpinCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Notes.SetPinned(ctx.Ctx, ctx.UserID, c.ID, false)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.Out, "✓ Unpinned: %s\n", n.Title)
	return nil
}

type NoteDeleteCmd struct {
	ID string `arg:"" help:"Note ID."`
}

func (c *NoteDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Notes.Delete(ctx.Ctx, ctx.UserID, c.ID); err != nil {
		return err
	}
	fmt.Fprintln(cli.Out, "✓ Note deleted")
	return nil
}
