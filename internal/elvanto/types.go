package elvanto

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// The Elvanto API plays loose with JSON shapes: a one-element
// collection arrives as an object instead of an array, empty
// collections arrive as "" instead of {}, and numeric fields arrive as
// strings. The types below absorb all of that so the rest of the code
// sees plain slices and ints.

// list decodes a value that may be an array, a single object, null or
// an empty string.
type list[T any] []T

func (l *list[T]) UnmarshalJSON(data []byte) error {
	trim := bytes.TrimSpace(data)
	if len(trim) == 0 || bytes.Equal(trim, []byte("null")) {
		*l = nil
		return nil
	}
	switch trim[0] {
	case '[':
		var items []T
		if err := json.Unmarshal(trim, &items); err != nil {
			return err
		}
		*l = items
	case '{':
		var one T
		if err := json.Unmarshal(trim, &one); err != nil {
			return err
		}
		*l = []T{one}
	default:
		// "" or some other scalar stand-in for "empty"
		*l = nil
	}
	return nil
}

// flexInt decodes an int that may arrive as a number, a string, or be
// missing entirely.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	trim := bytes.TrimSpace(data)
	if len(trim) == 0 || bytes.Equal(trim, []byte("null")) {
		*n = 0
		return nil
	}
	s := strings.Trim(string(trim), `"`)
	if s == "" {
		*n = 0
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		*n = 0
		return nil
	}
	*n = flexInt(v)
	return nil
}

// Flag decodes the API's boolean spellings: 0/1, "0"/"1", true/false
// and "true"/"false".
type Flag bool

func (b *Flag) UnmarshalJSON(data []byte) error {
	s := strings.ToLower(strings.Trim(string(bytes.TrimSpace(data)), `"`))
	*b = Flag(s == "1" || s == "true")
	return nil
}

// decodeContainer unmarshals a wrapper object, treating "" / null /
// anything non-object as an empty container.
func decodeContainer(data []byte, dst any) error {
	trim := bytes.TrimSpace(data)
	if len(trim) == 0 || trim[0] != '{' {
		return nil
	}
	return json.Unmarshal(trim, dst)
}

type apiError struct {
	Code    flexInt `json:"code"`
	Message string  `json:"message"`
}

// envelope is the common wrapper on every Elvanto response.
type envelope struct {
	Status string    `json:"status"`
	Error  *apiError `json:"error"`
}

// apiErr translates a non-ok envelope into the error taxonomy.
func (e *envelope) apiErr(httpStatus int) error {
	if e.Status == "" || e.Status == "ok" {
		return nil
	}
	msg := "unknown Elvanto API error"
	code := 0
	if e.Error != nil {
		code = int(e.Error.Code)
		if e.Error.Message != "" {
			msg = e.Error.Message
		}
	}
	if code == codeInvalidKey {
		return &CredentialError{Message: msg}
	}
	return &UpstreamError{StatusCode: httpStatus, Code: code, Message: msg}
}

type apiResponse interface {
	apiErr(httpStatus int) error
}

// pageInfo carries the pagination envelope on collection responses.
type pageInfo struct {
	Total      flexInt `json:"total"`
	Page       flexInt `json:"page"`
	PerPage    flexInt `json:"per_page"`
	OnThisPage flexInt `json:"on_this_page"`
}

// Category is a person category or group category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CategorySet wraps the {"category": ...} container.
type CategorySet struct {
	Category []Category
}

func (s *CategorySet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Category list[Category] `json:"category"`
	}
	if err := decodeContainer(data, &raw); err != nil {
		return err
	}
	s.Category = raw.Category
	return nil
}

type categoriesResponse struct {
	envelope
	Categories CategorySet `json:"categories"`
}

// GroupMember is one entry in a group's people field.
type GroupMember struct {
	ID            string `json:"id"`
	Firstname     string `json:"firstname"`
	PreferredName string `json:"preferred_name"`
	Lastname      string `json:"lastname"`
	Email         string `json:"email"`
	Position      string `json:"position"`
	CategoryID    string `json:"category_id"`
}

// MemberSet wraps a group's {"person": ...} container.
type MemberSet struct {
	Person []GroupMember
}

func (s *MemberSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Person list[GroupMember] `json:"person"`
	}
	if err := decodeContainer(data, &raw); err != nil {
		return err
	}
	s.Person = raw.Person
	return nil
}

// Group as returned by groups/getAll. People is populated when the
// "people" field was requested, Categories when "categories" was.
type Group struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	People     MemberSet   `json:"people"`
	Categories CategorySet `json:"categories"`
}

// Leaders returns the members whose position within the group is
// Leader. Everyone else in the group is ignored.
func (g *Group) Leaders() []GroupMember {
	var leaders []GroupMember
	for _, m := range g.People.Person {
		if strings.EqualFold(m.Position, "leader") {
			leaders = append(leaders, m)
		}
	}
	return leaders
}

// CategoryIDs returns the group's category IDs.
func (g *Group) CategoryIDs() []string {
	var ids []string
	for _, c := range g.Categories.Category {
		if c.ID != "" {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

type groupsResponse struct {
	envelope
	Groups struct {
		pageInfo
		Group list[Group] `json:"group"`
	} `json:"groups"`
}

// Demographic tags a person as Adults, Children, Youth, ...
type Demographic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DemographicSet wraps the {"demographic": ...} container.
type DemographicSet struct {
	Demographic []Demographic
}

func (s *DemographicSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Demographic list[Demographic] `json:"demographic"`
	}
	if err := decodeContainer(data, &raw); err != nil {
		return err
	}
	s.Demographic = raw.Demographic
	return nil
}

// DepartmentPosition is a concrete roster position inside a
// sub-department ("Musicians - Bass").
type DepartmentPosition struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PositionSet wraps the {"position": ...} container.
type PositionSet struct {
	Position []DepartmentPosition
}

func (s *PositionSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Position list[DepartmentPosition] `json:"position"`
	}
	if err := decodeContainer(data, &raw); err != nil {
		return err
	}
	s.Position = raw.Position
	return nil
}

// SubDepartment groups positions under one roster heading.
type SubDepartment struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Positions PositionSet `json:"positions"`
}

// SubDepartmentSet wraps the {"sub_department": ...} container.
type SubDepartmentSet struct {
	SubDepartment []SubDepartment
}

func (s *SubDepartmentSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		SubDepartment list[SubDepartment] `json:"sub_department"`
	}
	if err := decodeContainer(data, &raw); err != nil {
		return err
	}
	s.SubDepartment = raw.SubDepartment
	return nil
}

// Department is a top-level roster department.
type Department struct {
	ID             string           `json:"id"`
	Name           string           `json:"name"`
	SubDepartments SubDepartmentSet `json:"sub_departments"`
}

// DepartmentSet wraps the {"department": ...} container.
type DepartmentSet struct {
	Department []Department
}

func (s *DepartmentSet) UnmarshalJSON(data []byte) error {
	var raw struct {
		Department list[Department] `json:"department"`
	}
	if err := decodeContainer(data, &raw); err != nil {
		return err
	}
	s.Department = raw.Department
	return nil
}

// VolunteerPosition is a person's rostered position collapsed to its
// sub-department: "Preacher - Children's Talk" and "Preacher - Sermon"
// both become "Preacher". The sub-department name doubles as the ID.
type VolunteerPosition struct {
	ID         string
	Name       string
	Department string
}

// PersonRecord as returned by people/getAll with the departments and
// demographics fields.
type PersonRecord struct {
	ID            string         `json:"id"`
	Firstname     string         `json:"firstname"`
	PreferredName string         `json:"preferred_name"`
	Lastname      string         `json:"lastname"`
	Email         string         `json:"email"`
	CategoryID    string         `json:"category_id"`
	Archived      Flag           `json:"archived"`
	Demographics  DemographicSet `json:"demographics"`
	Departments   DepartmentSet  `json:"departments"`
}

// IsArchived reports whether the person is archived upstream.
func (p *PersonRecord) IsArchived() bool {
	return bool(p.Archived)
}

// IsAdult applies the demographics rule: include when tagged Adults or
// not tagged at all, exclude only when tagged Children without also
// being tagged Adults.
func (p *PersonRecord) IsAdult() bool {
	demos := p.Demographics.Demographic
	if len(demos) == 0 {
		return true
	}
	child := false
	for _, d := range demos {
		switch strings.ToLower(d.Name) {
		case "adults":
			return true
		case "children":
			child = true
		}
	}
	return !child
}

// VolunteerPositions walks the person's departments and returns their
// rostered positions collapsed to unique sub-department names.
func (p *PersonRecord) VolunteerPositions() []VolunteerPosition {
	var out []VolunteerPosition
	seen := make(map[string]bool)
	for _, dept := range p.Departments.Department {
		for _, sub := range dept.SubDepartments.SubDepartment {
			if sub.Name == "" || len(sub.Positions.Position) == 0 {
				continue
			}
			if seen[sub.Name] {
				continue
			}
			seen[sub.Name] = true
			out = append(out, VolunteerPosition{
				ID:         sub.Name,
				Name:       sub.Name,
				Department: dept.Name,
			})
		}
	}
	return out
}

type peopleResponse struct {
	envelope
	People struct {
		pageInfo
		Person list[PersonRecord] `json:"person"`
	} `json:"people"`
}
