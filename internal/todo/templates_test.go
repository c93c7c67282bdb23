package todo

import (
	"context"
	"errors"
	"testing"

	"github.com/julianstephens/studylit/internal/models"
)

func TestCreateTemplateValidation(t *testing.T) {
	svc, _, _ := setupService(t, jst(2025, 6, 2, 10, 0))

	tests := []struct {
		name  string
		title string
		rt    models.DayType
		want  error
	}{
		{name: "empty title", title: "  ", rt: models.DayTypeWeekday, want: ErrEmptyTitle},
		{name: "bad repeat type", title: "Read", rt: "daily", want: ErrRepeatType},
		{name: "ok", title: " Read ", rt: models.DayTypeWeekend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CreateTemplate(context.Background(), user, tt.title, tt.rt)
			if !errors.Is(err, tt.want) {
				t.Fatalf("CreateTemplate() error = %v, want %v", err, tt.want)
			}
			if tt.want == nil && (got.Title != "Read" || !got.IsActive) {
				t.Errorf("CreateTemplate() = %+v", got)
			}
		})
	}
}

func TestRenameAndDeactivate(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t, jst(2025, 6, 3, 1, 0))
	tmpl := mustTemplate(t, svc, "Read", models.DayTypeWeekday)

	renamed, err := svc.RenameTemplate(ctx, user, tmpl.ID, "Read 20 pages")
	if err != nil {
		t.Fatal(err)
	}
	if renamed.Title != "Read 20 pages" {
		t.Errorf("RenameTemplate() title = %q", renamed.Title)
	}

	off, err := svc.DeactivateTemplate(ctx, user, tmpl.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	// 01:00 on the 3rd is still the 2nd with rollover 3.
	if off.IsActive || off.DeactivatedAt != "2025-06-02" {
		t.Errorf("DeactivateTemplate() = %+v", off)
	}

	active, err := svc.ListTemplates(ctx, user, "", false)
	if err != nil {
		t.Fatal(err)
	}
	if len(active) != 0 {
		t.Errorf("active templates = %d, want 0", len(active))
	}
	all, err := svc.ListTemplates(ctx, user, models.DayTypeWeekday, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 {
		t.Errorf("all weekday templates = %d, want 1", len(all))
	}
}

func TestOtherDayTemplates(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := setupService(t, jst(2025, 6, 2, 10, 0))
	mustTemplate(t, svc, "weekday", models.DayTypeWeekday)
	we := mustTemplate(t, svc, "weekend", models.DayTypeWeekend)

	other, err := svc.OtherDayTemplates(ctx, user, 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 1 || other[0].ID != we.ID {
		t.Errorf("OtherDayTemplates() = %+v, want weekend template", other)
	}
}
