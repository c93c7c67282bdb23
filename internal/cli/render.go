package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/studylit/internal/models"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Strikethrough(true)

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	pinnedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)
)

// Header renders a section title.
func Header(s string) string {
	return headerStyle.Render(s)
}

// Muted renders secondary text.
func Muted(s string) string {
	return mutedStyle.Render(s)
}

// RenderTodos writes today's list, numbered from 1 in display order.
func RenderTodos(w io.Writer, date string, entries []models.ProgressEntry, showIDs bool) {
	done := 0
	for _, e := range entries {
		if e.IsDone {
			done++
		}
	}
	fmt.Fprintf(w, "%s %s\n", Header("Today "+date), Muted(fmt.Sprintf("(%d/%d done)", done, len(entries))))
	if len(entries) == 0 {
		fmt.Fprintln(w, Muted("  nothing scheduled"))
		return
	}

	for i, e := range entries {
		box, title := "[ ]", e.Title
		if e.IsDone {
			box, title = "[x]", doneStyle.Render(e.Title)
		}
		id := ""
		if showIDs {
			id = " " + Muted("("+e.ID+")")
		}
		fmt.Fprintf(w, "  %2d. %s %s%s\n", i+1, box, title, id)
	}
}

// RenderTemplates writes one line per template.
func RenderTemplates(w io.Writer, templates []models.Template, showIDs bool) {
	for _, t := range templates {
		status := string(t.RepeatType)
		if !t.IsActive {
			status += ", inactive since " + t.DeactivatedAt
		}
		id := ""
		if showIDs {
			id = " " + Muted("("+t.ID+")")
		}
		fmt.Fprintf(w, "  %s %s%s\n", t.Title, Muted("["+status+"]"), id)
	}
}

// RenderNote writes a note with its kind-specific fields.
func RenderNote(w io.Writer, n models.Note) {
	title := n.Title
	if n.Pinned {
		title = pinnedStyle.Render("📌 " + n.Title)
	}
	fmt.Fprintf(w, "  %s %s %s\n", title, Muted("["+string(n.Kind)+"]"), Muted("("+n.ID+")"))
	var details []string
	switch n.Kind {
	case models.NoteKindLink:
		details = append(details, n.URL)
	case models.NoteKindImage:
		details = append(details, n.ImagePath)
	case models.NoteKindBook:
		if n.Author != "" {
			details = append(details, "by "+n.Author)
		}
	}
	if n.Content != "" {
		details = append(details, n.Content)
	}
	for _, d := range details {
		fmt.Fprintf(w, "      %s\n", strings.TrimSpace(d))
	}
}
