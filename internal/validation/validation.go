package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/studylit/internal/daytime"
	"github.com/julianstephens/studylit/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateTemplate ConflictType = "duplicate_template"
	ConflictOrphanProgress    ConflictType = "orphan_progress"
	ConflictOutdatedProgress  ConflictType = "outdated_progress"
	ConflictPendingRollover   ConflictType = "pending_rollover"
	ConflictInvalidDateTime   ConflictType = "invalid_datetime"
	ConflictInvalidPlan       ConflictType = "invalid_plan"
	ConflictInvalidNote       ConflictType = "invalid_note"
	ConflictInvalidProfile    ConflictType = "invalid_profile"
)

// Conflict represents one integrity problem found in a user's data
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string   // YYYY-MM-DD format (if applicable)
	Items       []string // Titles involved
	IDs         []string // Row IDs involved
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(c Conflict) {
	vr.Conflicts = append(vr.Conflicts, c)
}

// Snapshot is the data checked for one user.
type Snapshot struct {
	Today     daytime.Day
	Templates []models.Template
	// Progress holds today's rows and any rows left from earlier days.
	Progress []models.ProgressEntry
	Plans    []models.Plan
	Notes    []models.Note
	Profile  models.Profile
}

// Validator checks a user's data for states the services never produce on
// their own, such as rows left behind by an interrupted rollover.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

func (v *Validator) Validate(s Snapshot) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	v.checkTemplates(&result, s.Templates)
	v.checkProgress(&result, s)
	v.checkPlans(&result, s.Plans)
	v.checkNotes(&result, s.Notes)
	v.checkProfile(&result, s.Profile)
	return result
}

// ValidateTemplates reports active templates sharing a title and day type.
func (v *Validator) ValidateTemplates(templates []models.Template) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	v.checkTemplates(&result, templates)
	return result
}

func (v *Validator) checkTemplates(result *ValidationResult, templates []models.Template) {
	type key struct {
		title string
		rt    models.DayType
	}
	seen := make(map[key][]string)
	var order []key
	for _, t := range templates {
		if !t.IsActive {
			continue
		}
		if !t.RepeatType.Valid() {
			result.add(Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Template \"%s\" has unknown repeat type: %s", t.Title, t.RepeatType),
				Items:       []string{t.Title},
				IDs:         []string{t.ID},
			})
			continue
		}
		k := key{strings.ToLower(strings.TrimSpace(t.Title)), t.RepeatType}
		if _, ok := seen[k]; !ok {
			order = append(order, k)
		}
		seen[k] = append(seen[k], t.ID)
	}

	for _, k := range order {
		ids := seen[k]
		if len(ids) > 1 {
			result.add(Conflict{
				Type:        ConflictDuplicateTemplate,
				Description: fmt.Sprintf("Duplicate %s template: \"%s\" (IDs: %v)", k.rt, k.title, ids),
				Items:       []string{k.title},
				IDs:         ids,
			})
		}
	}
}

func (v *Validator) checkProgress(result *ValidationResult, s Snapshot) {
	templates := make(map[string]models.Template, len(s.Templates))
	for _, t := range s.Templates {
		templates[t.ID] = t
	}

	staleDates := make(map[string]int)
	for _, e := range s.Progress {
		t, ok := templates[e.TemplateID]
		switch {
		case !ok:
			result.add(Conflict{
				Type:        ConflictOrphanProgress,
				Description: fmt.Sprintf("Progress entry %s on %s references missing template %s", e.ID, e.EffectiveDate, e.TemplateID),
				Date:        e.EffectiveDate,
				IDs:         []string{e.ID},
			})
		case e.EffectiveDate == s.Today.Date && (!t.IsActive || t.RepeatType != s.Today.Type):
			result.add(Conflict{
				Type:        ConflictOutdatedProgress,
				Description: fmt.Sprintf("Today's entry for \"%s\" no longer matches an active %s template", t.Title, s.Today.Type),
				Date:        e.EffectiveDate,
				Items:       []string{t.Title},
				IDs:         []string{e.ID},
			})
		}
		if e.EffectiveDate < s.Today.Date {
			staleDates[e.EffectiveDate]++
		}
	}

	dates := make([]string, 0, len(staleDates))
	for d := range staleDates {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	for _, d := range dates {
		result.add(Conflict{
			Type:        ConflictPendingRollover,
			Description: fmt.Sprintf("%d progress entries from %s waiting for rollover", staleDates[d], d),
			Date:        d,
		})
	}
}

func (v *Validator) checkPlans(result *ValidationResult, plans []models.Plan) {
	for _, p := range plans {
		switch {
		case !daytime.ValidateDate(p.StartDate) || !daytime.ValidateDate(p.EndDate):
			result.add(Conflict{
				Type:        ConflictInvalidDateTime,
				Description: fmt.Sprintf("Plan \"%s\" has an invalid date range: %s to %s", p.Title, p.StartDate, p.EndDate),
				Items:       []string{p.Title},
				IDs:         []string{p.ID},
			})
		case p.EndDate < p.StartDate:
			result.add(Conflict{
				Type:        ConflictInvalidPlan,
				Description: fmt.Sprintf("Plan \"%s\" ends (%s) before it starts (%s)", p.Title, p.EndDate, p.StartDate),
				Items:       []string{p.Title},
				IDs:         []string{p.ID},
			})
		}
		if !validColor(p.Color) {
			result.add(Conflict{
				Type:        ConflictInvalidPlan,
				Description: fmt.Sprintf("Plan \"%s\" has unknown color: %s", p.Title, p.Color),
				Items:       []string{p.Title},
				IDs:         []string{p.ID},
			})
		}
	}
}

func validColor(c models.PlanColor) bool {
	for _, known := range models.PlanColors {
		if c == known {
			return true
		}
	}
	return false
}

func (v *Validator) checkNotes(result *ValidationResult, notes []models.Note) {
	for _, n := range notes {
		var problem string
		switch {
		case !n.Kind.Valid():
			problem = fmt.Sprintf("unknown kind %q", n.Kind)
		case n.Kind == models.NoteKindLink && n.URL == "":
			problem = "link without url"
		case n.Kind == models.NoteKindImage && n.ImagePath == "":
			problem = "image without path"
		}
		if problem != "" {
			result.add(Conflict{
				Type:        ConflictInvalidNote,
				Description: fmt.Sprintf("Note \"%s\": %s", n.Title, problem),
				Items:       []string{n.Title},
				IDs:         []string{n.ID},
			})
		}
	}
}

func (v *Validator) checkProfile(result *ValidationResult, p models.Profile) {
	if p.RolloverHour != nil && !daytime.ValidRolloverHour(*p.RolloverHour) {
		result.add(Conflict{
			Type:        ConflictInvalidProfile,
			Description: fmt.Sprintf("Rollover hour %d is outside 0-23; the default is used instead", *p.RolloverHour),
		})
	}
	if p.ExamDate != "" && !daytime.ValidateDate(p.ExamDate) {
		result.add(Conflict{
			Type:        ConflictInvalidDateTime,
			Description: fmt.Sprintf("Exam date is not a valid date: %s", p.ExamDate),
		})
	}
}
