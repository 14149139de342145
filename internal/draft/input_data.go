package draft

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/docorator/internal/types"
)

// FromInputData builds a new draft from the input data stored with a
// previously generated document. Either the whole draft is built or an
// error is returned; nothing is partially applied.
//
// Stored data may have been written by the guided rewriter, so decoding is
// lenient. Scalar values that are not strings are converted to text when
// they are numbers or booleans and skipped otherwise. The same applies to
// every member of a list entry; unknown members are ignored. A list value
// that is not an array, or a structured entry that is not an object, is a
// DecodeError.
func FromInputData(docType string, data map[string]json.RawMessage) (*Draft, error) {
	kind, err := types.ParseDocType(docType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownKind, err)
	}

	d := New()
	_ = d.SetKind(kind)

	for _, name := range append(append([]string(nil), types.BaseFields...), kind.Fields()...) {
		raw, ok := data[name]
		if !ok {
			continue
		}
		value, ok, err := scalarText(raw)
		if err != nil {
			return nil, &DecodeError{Field: name, Cause: err}
		}
		if ok {
			_ = d.SetField(name, value)
		}
	}

	if !kind.HasLists() {
		return d, nil
	}

	if err := decodeList(data, types.FieldSkills, &d.Skills, textEntry); err != nil {
		return nil, err
	}
	if err := decodeList(data, types.FieldExperienceList, &d.Experience, experienceEntry); err != nil {
		return nil, err
	}
	if err := decodeList(data, types.FieldProjects, &d.Projects, projectEntry); err != nil {
		return nil, err
	}
	if err := decodeList(data, types.FieldEducation, &d.Education, educationEntry); err != nil {
		return nil, err
	}
	if err := decodeList(data, types.FieldAchievements, &d.Achievements, textEntry); err != nil {
		return nil, err
	}
	return d, nil
}

// entryDecoder turns one raw list element into an entry. ok=false skips it.
type entryDecoder[T any] func(raw json.RawMessage) (entry T, ok bool, err error)

func decodeList[T any](data map[string]json.RawMessage, key string, list *List[T], decode entryDecoder[T]) error {
	raw, ok := data[key]
	if !ok || string(raw) == "null" {
		return nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return &DecodeError{Field: key, Cause: err}
	}
	vals := make([]T, 0, len(elems))
	for i, elem := range elems {
		v, ok, err := decode(elem)
		if err != nil {
			return &DecodeError{Field: fmt.Sprintf("%s[%d]", key, i), Cause: err}
		}
		if ok {
			vals = append(vals, v)
		}
	}
	list.Replace(vals)
	return nil
}

func textEntry(raw json.RawMessage) (string, bool, error) {
	return scalarText(raw)
}

// entryObject decodes a structured entry. A null element is skipped.
func entryObject(raw json.RawMessage) (map[string]json.RawMessage, bool, error) {
	if string(raw) == "null" {
		return nil, false, nil
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, false, err
	}
	return obj, true, nil
}

// member returns the text of obj[key]; missing or non-scalar members are "".
func member(obj map[string]json.RawMessage, key string) (string, error) {
	raw, ok := obj[key]
	if !ok {
		return "", nil
	}
	v, _, err := scalarText(raw)
	return v, err
}

// textLines reads bullets given as an array of scalars or as a single
// newline-separated string.
func textLines(raw json.RawMessage) ([]string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil
	}
	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		s, ok, serr := scalarText(raw)
		if serr != nil || !ok {
			return []string{}, serr
		}
		out := make([]string, 0)
		for _, line := range strings.Split(s, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				out = append(out, line)
			}
		}
		return out, nil
	}
	out := make([]string, 0, len(elems))
	for _, elem := range elems {
		s, ok, err := scalarText(elem)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, s)
		}
	}
	return out, nil
}

func experienceEntry(raw json.RawMessage) (types.Experience, bool, error) {
	var e types.Experience
	obj, ok, err := entryObject(raw)
	if !ok || err != nil {
		return e, false, err
	}
	if e.Title, err = member(obj, "title"); err != nil {
		return e, false, err
	}
	if e.Company, err = member(obj, "company"); err != nil {
		return e, false, err
	}
	if e.Period, err = member(obj, "period"); err != nil {
		return e, false, err
	}
	if e.Bullets, err = textLines(obj["bullets"]); err != nil {
		return e, false, err
	}
	return e, true, nil
}

func projectEntry(raw json.RawMessage) (types.Project, bool, error) {
	var p types.Project
	obj, ok, err := entryObject(raw)
	if !ok || err != nil {
		return p, false, err
	}
	if p.Name, err = member(obj, "name"); err != nil {
		return p, false, err
	}
	if p.TechStack, err = member(obj, "tech_stack"); err != nil {
		return p, false, err
	}
	if p.Description, err = member(obj, "description"); err != nil {
		return p, false, err
	}
	return p, true, nil
}

func educationEntry(raw json.RawMessage) (types.Education, bool, error) {
	var e types.Education
	obj, ok, err := entryObject(raw)
	if !ok || err != nil {
		return e, false, err
	}
	if e.Degree, err = member(obj, "degree"); err != nil {
		return e, false, err
	}
	if e.Institute, err = member(obj, "institute"); err != nil {
		return e, false, err
	}
	if e.Year, err = member(obj, "year"); err != nil {
		return e, false, err
	}
	if e.Grade, err = member(obj, "grade"); err != nil {
		return e, false, err
	}
	return e, true, nil
}

func scalarText(raw json.RawMessage) (string, bool, error) {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return "", false, err
	}
	switch val := v.(type) {
	case string:
		return val, true, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true, nil
	case bool:
		return strconv.FormatBool(val), true, nil
	default:
		return "", false, nil
	}
}

// InputData returns the draft's fields in the stored input data shape,
// suitable for FromInputData.
func (d *Draft) InputData() map[string]any {
	fields := d.Fields()
	delete(fields, "applicant_name")
	return fields
}
