package validation

import (
	"strings"
	"testing"

	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/models"
)

var monday = daytime.Day{Date: "2025-06-02", Type: models.DayTypeWeekday}

func countType(result ValidationResult, ct ConflictType) int {
	n := 0
	for _, c := range result.Conflicts {
		if c.Type == ct {
			n++
		}
	}
	return n
}

func TestValidateTemplates_Duplicates(t *testing.T) {
	validator := New()

	templates := []models.Template{
		{ID: "1", Title: "Read", RepeatType: models.DayTypeWeekday, IsActive: true},
		{ID: "2", Title: "read ", RepeatType: models.DayTypeWeekday, IsActive: true},
		{ID: "3", Title: "Read", RepeatType: models.DayTypeWeekend, IsActive: true},
		{ID: "4", Title: "Read", RepeatType: models.DayTypeWeekday, IsActive: false},
	}

	result := validator.ValidateTemplates(templates)

	if countType(result, ConflictDuplicateTemplate) != 1 {
		t.Fatalf("Expected one duplicate conflict, got: %s", result.FormatReport())
	}
	if ids := result.Conflicts[0].IDs; len(ids) != 2 {
		t.Errorf("Expected 2 IDs in conflict, got %v", ids)
	}
}

func TestValidate_Progress(t *testing.T) {
	validator := New()

	snap := Snapshot{
		Today: monday,
		Templates: []models.Template{
			{ID: "wk", Title: "Weekday", RepeatType: models.DayTypeWeekday, IsActive: true},
			{ID: "we", Title: "Weekend", RepeatType: models.DayTypeWeekend, IsActive: true},
			{ID: "off", Title: "Old", RepeatType: models.DayTypeWeekday, IsActive: false},
		},
		Progress: []models.ProgressEntry{
			{ID: "p1", TemplateID: "wk", EffectiveDate: "2025-06-02"},
			{ID: "p2", TemplateID: "we", EffectiveDate: "2025-06-02"},
			{ID: "p3", TemplateID: "off", EffectiveDate: "2025-06-02"},
			{ID: "p4", TemplateID: "gone", EffectiveDate: "2025-06-02"},
			{ID: "p5", TemplateID: "wk", EffectiveDate: "2025-05-30"},
			{ID: "p6", TemplateID: "we", EffectiveDate: "2025-05-31"},
			{ID: "p7", TemplateID: "we", EffectiveDate: "2025-05-31"},
		},
	}

	result := validator.Validate(snap)

	if got := countType(result, ConflictOutdatedProgress); got != 2 {
		t.Errorf("outdated = %d, want 2\n%s", got, result.FormatReport())
	}
	if got := countType(result, ConflictOrphanProgress); got != 1 {
		t.Errorf("orphan = %d, want 1", got)
	}
	if got := countType(result, ConflictPendingRollover); got != 2 {
		t.Errorf("pending rollover = %d, want 2 (one per date)", got)
	}
}

func TestValidate_PlansNotesProfile(t *testing.T) {
	validator := New()
	hour := 30

	snap := Snapshot{
		Today: monday,
		Plans: []models.Plan{
			{ID: "ok", Title: "ok", StartDate: "2025-06-01", EndDate: "2025-06-02", Color: models.PlanColorBlue},
			{ID: "rev", Title: "reversed", StartDate: "2025-06-05", EndDate: "2025-06-02", Color: models.PlanColorBlue},
			{ID: "col", Title: "color", StartDate: "2025-06-01", EndDate: "2025-06-02", Color: "teal"},
			{ID: "bad", Title: "bad", StartDate: "June 1", EndDate: "2025-06-02", Color: models.PlanColorRed},
		},
		Notes: []models.Note{
			{ID: "n1", Title: "fine", Kind: models.NoteKindNote},
			{ID: "n2", Title: "link", Kind: models.NoteKindLink},
			{ID: "n3", Title: "book", Kind: models.NoteKindBook},
			{ID: "n4", Title: "clip", Kind: "video"},
		},
		Profile: models.Profile{RolloverHour: &hour, ExamDate: "someday"},
	}

	result := validator.Validate(snap)

	if got := countType(result, ConflictInvalidPlan); got != 2 {
		t.Errorf("invalid plans = %d, want 2\n%s", got, result.FormatReport())
	}
	if got := countType(result, ConflictInvalidNote); got != 2 {
		t.Errorf("invalid notes = %d, want 2", got)
	}
	if got := countType(result, ConflictInvalidProfile); got != 1 {
		t.Errorf("invalid profile = %d, want 1", got)
	}
	// Bad plan date + bad exam date.
	if got := countType(result, ConflictInvalidDateTime); got != 2 {
		t.Errorf("invalid datetime = %d, want 2", got)
	}
}

func TestFormatReport(t *testing.T) {
	empty := ValidationResult{}
	if empty.FormatReport() != "No conflicts detected." {
		t.Errorf("unexpected empty report: %q", empty.FormatReport())
	}

	result := ValidationResult{Conflicts: []Conflict{{Description: "first"}, {Description: "second"}}}
	report := result.FormatReport()
	if !strings.Contains(report, "- first\n") || !strings.Contains(report, "- second\n") {
		t.Errorf("report missing entries: %q", report)
	}
}
