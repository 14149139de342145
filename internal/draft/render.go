package draft

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/docorator/internal/types"
)

// Item is the display form of a list entry. Index is its current position
// and is only meaningful until the next mutation; ID is stable.
type Item struct {
	ID      uuid.UUID
	Index   int
	Summary string
}

// Render returns the display items of the named list in order.
func (d *Draft) Render(list ListName) ([]Item, error) {
	switch list {
	case ListSkills:
		return renderEntries(d.Skills.Entries(), func(s string) string { return s }), nil
	case ListAchievements:
		return renderEntries(d.Achievements.Entries(), func(s string) string { return s }), nil
	case ListExperience:
		return renderEntries(d.Experience.Entries(), ExperienceSummary), nil
	case ListProjects:
		return renderEntries(d.Projects.Entries(), ProjectSummary), nil
	case ListEducation:
		return renderEntries(d.Education.Entries(), EducationSummary), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownList, list)
}

func renderEntries[T any](entries []Entry[T], summary func(T) string) []Item {
	items := make([]Item, 0, len(entries))
	for i, e := range entries {
		items = append(items, Item{ID: e.ID, Index: i, Summary: summary(e.Value)})
	}
	return items
}

// ExperienceSummary renders an experience entry as "<title> at <company>".
func ExperienceSummary(e types.Experience) string {
	return fmt.Sprintf("%s at %s", e.Title, e.Company)
}

// ProjectSummary renders a project entry as "<name> (<tech stack>)".
func ProjectSummary(p types.Project) string {
	return fmt.Sprintf("%s (%s)", p.Name, p.TechStack)
}

// EducationSummary renders an education entry, appending the grade when set.
func EducationSummary(e types.Education) string {
	s := fmt.Sprintf("%s, %s", e.Degree, e.Institute)
	if e.Grade != "" {
		s += fmt.Sprintf(" (Grade: %s)", e.Grade)
	}
	return s
}
