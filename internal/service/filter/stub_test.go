package filter

import (
	"context"

	"github.com/isaaclee0/elvantoexport/internal/elvanto"
)

// stubClient feeds canned catalog data into the engine.
type stubClient struct {
	groupsWithPeople     []elvanto.Group
	groupsWithCategories []elvanto.Group
	people               []elvanto.PersonRecord

	err   error
	calls []string
}

func (s *stubClient) GroupsWithPeople(ctx context.Context, apiKey string) ([]elvanto.Group, error) {
	s.calls = append(s.calls, "GroupsWithPeople")
	if s.err != nil {
		return nil, s.err
	}
	return s.groupsWithPeople, nil
}

func (s *stubClient) GroupsWithCategories(ctx context.Context, apiKey string) ([]elvanto.Group, error) {
	s.calls = append(s.calls, "GroupsWithCategories")
	if s.err != nil {
		return nil, s.err
	}
	return s.groupsWithCategories, nil
}

func (s *stubClient) PeopleWithDepartments(ctx context.Context, apiKey string) ([]elvanto.PersonRecord, error) {
	s.calls = append(s.calls, "PeopleWithDepartments")
	if s.err != nil {
		return nil, s.err
	}
	return s.people, nil
}

// group builds a group fixture with the given leaders.
func group(id, name string, leaders ...elvanto.GroupMember) elvanto.Group {
	for i := range leaders {
		if leaders[i].Position == "" {
			leaders[i].Position = "Leader"
		}
	}
	return elvanto.Group{
		ID:     id,
		Name:   name,
		People: elvanto.MemberSet{Person: leaders},
	}
}

// groupWithCategories builds the categories-only view of a group.
func groupWithCategories(id string, categoryIDs ...string) elvanto.Group {
	cats := make([]elvanto.Category, len(categoryIDs))
	for i, cid := range categoryIDs {
		cats[i] = elvanto.Category{ID: cid, Name: "Category " + cid}
	}
	return elvanto.Group{
		ID:         id,
		Categories: elvanto.CategorySet{Category: cats},
	}
}

// rostered builds a person fixture rostered for the given positions.
func rostered(id, firstname string, positions ...string) elvanto.PersonRecord {
	subs := make([]elvanto.SubDepartment, len(positions))
	for i, name := range positions {
		subs[i] = elvanto.SubDepartment{
			Name: name,
			Positions: elvanto.PositionSet{Position: []elvanto.DepartmentPosition{
				{ID: "pos-" + name, Name: name},
			}},
		}
	}
	return elvanto.PersonRecord{
		ID:        id,
		Firstname: firstname,
		Departments: elvanto.DepartmentSet{Department: []elvanto.Department{
			{Name: "Service", SubDepartments: elvanto.SubDepartmentSet{SubDepartment: subs}},
		}},
	}
}
