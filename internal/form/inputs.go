package form

import (
	"fmt"
	"strings"

	"github.com/jonathan/docorator/internal/draft"
	"github.com/jonathan/docorator/internal/types"
)

// ExperienceInput is the experience input group. Bullets is free text with
// one bullet per line.
type ExperienceInput struct {
	Title   string
	Company string
	Period  string
	Bullets string
}

func (in ExperienceInput) entry() types.Experience {
	bullets := make([]string, 0)
	for _, line := range strings.Split(in.Bullets, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			bullets = append(bullets, line)
		}
	}
	return types.Experience{
		Title:   strings.TrimSpace(in.Title),
		Company: strings.TrimSpace(in.Company),
		Period:  strings.TrimSpace(in.Period),
		Bullets: bullets,
	}
}

func experienceInput(e types.Experience) ExperienceInput {
	return ExperienceInput{
		Title:   e.Title,
		Company: e.Company,
		Period:  e.Period,
		Bullets: strings.Join(e.Bullets, "\n"),
	}
}

// Inputs holds the pending, not yet committed value of each list's input group.
type Inputs struct {
	Skill       string
	Achievement string
	Experience  ExperienceInput
	Project     types.Project
	Education   types.Education
}

func trimProject(p types.Project) types.Project {
	return types.Project{
		Name:        strings.TrimSpace(p.Name),
		TechStack:   strings.TrimSpace(p.TechStack),
		Description: strings.TrimSpace(p.Description),
	}
}

func trimEducation(e types.Education) types.Education {
	return types.Education{
		Degree:    strings.TrimSpace(e.Degree),
		Institute: strings.TrimSpace(e.Institute),
		Year:      strings.TrimSpace(e.Year),
		Grade:     strings.TrimSpace(e.Grade),
	}
}

// set replaces one input group with entry. The accepted entry types are
// string for skills and achievements, types.Experience or ExperienceInput
// for experience, types.Project and types.Education.
func (in *Inputs) set(list draft.ListName, entry any) error {
	switch list {
	case draft.ListSkills, draft.ListAchievements:
		s, ok := entry.(string)
		if !ok {
			return entryTypeError(list, entry)
		}
		if list == draft.ListSkills {
			in.Skill = s
		} else {
			in.Achievement = s
		}
	case draft.ListExperience:
		switch e := entry.(type) {
		case types.Experience:
			in.Experience = experienceInput(e)
		case ExperienceInput:
			in.Experience = e
		default:
			return entryTypeError(list, entry)
		}
	case draft.ListProjects:
		p, ok := entry.(types.Project)
		if !ok {
			return entryTypeError(list, entry)
		}
		in.Project = p
	case draft.ListEducation:
		e, ok := entry.(types.Education)
		if !ok {
			return entryTypeError(list, entry)
		}
		in.Education = e
	default:
		return fmt.Errorf("%w: %q", draft.ErrUnknownList, list)
	}
	return nil
}

func (in *Inputs) clear(list draft.ListName) {
	switch list {
	case draft.ListSkills:
		in.Skill = ""
	case draft.ListAchievements:
		in.Achievement = ""
	case draft.ListExperience:
		in.Experience = ExperienceInput{}
	case draft.ListProjects:
		in.Project = types.Project{}
	case draft.ListEducation:
		in.Education = types.Education{}
	}
}

func entryTypeError(list draft.ListName, entry any) error {
	return fmt.Errorf("%s entry has unsupported type %T", list, entry)
}
