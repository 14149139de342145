//nolint:revive // types is a standard Go package name pattern
package types

// Experience represents a single work history entry on a resume.
type Experience struct {
	Title   string   `json:"title" validate:"required"`
	Company string   `json:"company" validate:"required"`
	Period  string   `json:"period"`
	Bullets []string `json:"bullets"`
}

// Project represents a single project entry on a resume.
type Project struct {
	Name        string `json:"name" validate:"required"`
	TechStack   string `json:"tech_stack"`
	Description string `json:"description"`
}

// Education represents a single education entry on a resume.
type Education struct {
	Degree    string `json:"degree" validate:"required"`
	Institute string `json:"institute"`
	Year      string `json:"year"`
	Grade     string `json:"grade,omitempty"`
}
