// Package draft holds the in-memory model of a document under construction:
// the active document type, its scalar fields and the resume list collections.
package draft

import (
	"fmt"

	"github.com/jonathan/docorator/internal/types"
)

// ListName identifies one of the draft's list collections.
type ListName string

// List collections held by a draft.
const (
	ListSkills       ListName = "skills"
	ListAchievements ListName = "achievements"
	ListExperience   ListName = "experience"
	ListProjects     ListName = "projects"
	ListEducation    ListName = "education"
)

// AllLists returns every list name in display order.
func AllLists() []ListName {
	return []ListName{ListSkills, ListExperience, ListProjects, ListEducation, ListAchievements}
}

// ParseListName converts user input into a ListName.
func ParseListName(s string) (ListName, error) {
	for _, n := range AllLists() {
		if string(n) == s {
			return n, nil
		}
	}
	switch s {
	case "skill":
		return ListSkills, nil
	case "achievement", "ach":
		return ListAchievements, nil
	case "exp", "experience_list":
		return ListExperience, nil
	case "project", "proj":
		return ListProjects, nil
	case "edu":
		return ListEducation, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownList, s)
}

// Draft is the working document. The zero value is not usable; call New.
//
// Scalar fields are kept per document type. Switching type hides the other
// types' fields without clearing them, and only the active type's fields are
// reachable through Field and serialized by Fields.
type Draft struct {
	kind     types.DocType
	base     map[string]string
	sections map[types.DocType]map[string]string

	Skills       List[string]
	Achievements List[string]
	Experience   List[types.Experience]
	Projects     List[types.Project]
	Education    List[types.Education]
}

// New returns an empty resume draft.
func New() *Draft {
	d := &Draft{
		kind:     types.DocTypeResume,
		base:     make(map[string]string),
		sections: make(map[types.DocType]map[string]string),
	}
	for _, dt := range types.AllDocTypes() {
		d.sections[dt] = make(map[string]string)
	}
	return d
}

// Kind returns the active document type.
func (d *Draft) Kind() types.DocType {
	return d.kind
}

// SetKind changes the active document type. List collections and the
// fields of other types are left as they are.
func (d *Draft) SetKind(kind types.DocType) error {
	if _, ok := d.sections[kind]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	d.kind = kind
	return nil
}

// SetField sets a base field or a field of the active document type.
func (d *Draft) SetField(name, value string) error {
	if types.IsBaseField(name) {
		d.base[name] = value
		return nil
	}
	if !d.kind.HasField(name) {
		return fmt.Errorf("%w: %q is not a %s field", ErrUnknownField, name, d.kind)
	}
	d.sections[d.kind][name] = value
	return nil
}

// Field returns a base field or a field of the active document type.
// The second result is false when name is neither.
func (d *Draft) Field(name string) (string, bool) {
	if types.IsBaseField(name) {
		return d.base[name], true
	}
	if !d.kind.HasField(name) {
		return "", false
	}
	return d.sections[d.kind][name], true
}

// Section returns a copy of the active document type's fields, every field
// name present.
func (d *Draft) Section() map[string]string {
	out := make(map[string]string)
	for _, f := range d.kind.Fields() {
		out[f] = d.sections[d.kind][f]
	}
	return out
}

// Base returns a copy of the base contact fields, every field name present.
func (d *Draft) Base() map[string]string {
	out := make(map[string]string, len(types.BaseFields))
	for _, f := range types.BaseFields {
		out[f] = d.base[f]
	}
	return out
}

// Fields assembles the request fields for the active document type:
// base fields, the type's own fields and, for resumes, every list
// collection (empty lists included).
func (d *Draft) Fields() map[string]any {
	fields := make(map[string]any)
	for k, v := range d.Base() {
		fields[k] = v
	}
	for k, v := range d.Section() {
		fields[k] = v
	}

	switch d.kind {
	case types.DocTypeResume:
		fields[types.FieldSkills] = d.Skills.Values()
		fields[types.FieldExperienceList] = d.Experience.Values()
		fields[types.FieldEducation] = d.Education.Values()
		fields[types.FieldProjects] = d.Projects.Values()
		fields[types.FieldAchievements] = d.Achievements.Values()
	case types.DocTypeSOP:
		fields["applicant_name"] = d.base["name"]
	}
	return fields
}

// Len returns the number of entries in the named list.
func (d *Draft) Len(list ListName) (int, error) {
	switch list {
	case ListSkills:
		return d.Skills.Len(), nil
	case ListAchievements:
		return d.Achievements.Len(), nil
	case ListExperience:
		return d.Experience.Len(), nil
	case ListProjects:
		return d.Projects.Len(), nil
	case ListEducation:
		return d.Education.Len(), nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownList, list)
}
