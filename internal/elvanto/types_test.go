package elvanto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupDecoding_SingleMemberAsObject(t *testing.T) {
	// One-element collections arrive as an object, not a one-element
	// array.
	raw := `{
		"id": "g1",
		"name": "Choir",
		"people": {"person": {"id": "p1", "firstname": "Amy", "lastname": "Lee", "position": "Leader"}}
	}`

	var g Group
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	require.Len(t, g.People.Person, 1)
	assert.Equal(t, "p1", g.People.Person[0].ID)
}

func TestGroupDecoding_EmptyPeopleAsString(t *testing.T) {
	raw := `{"id": "g1", "name": "Choir", "people": ""}`

	var g Group
	require.NoError(t, json.Unmarshal([]byte(raw), &g))
	assert.Empty(t, g.People.Person)
	assert.Empty(t, g.Leaders())
}

func TestGroupLeaders_FiltersByPosition(t *testing.T) {
	g := Group{
		ID:   "g1",
		Name: "Choir",
		People: MemberSet{Person: []GroupMember{
			{ID: "p1", Position: "Leader"},
			{ID: "p2", Position: "Member"},
			{ID: "p3", Position: "leader"},
		}},
	}

	leaders := g.Leaders()
	require.Len(t, leaders, 2)
	assert.Equal(t, "p1", leaders[0].ID)
	assert.Equal(t, "p3", leaders[1].ID)
}

func TestPageInfoDecoding_StringNumbers(t *testing.T) {
	raw := `{
		"status": "ok",
		"groups": {"total": "150", "per_page": "100", "on_this_page": "100", "group": []}
	}`

	var resp groupsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))
	assert.Equal(t, 150, int(resp.Groups.Total))
	assert.Equal(t, 100, int(resp.Groups.PerPage))
	assert.Equal(t, 100, int(resp.Groups.OnThisPage))
}

func TestFlagDecoding(t *testing.T) {
	cases := map[string]bool{
		`0`:      false,
		`1`:      true,
		`"0"`:    false,
		`"1"`:    true,
		`"true"`: true,
		`false`:  false,
		`""`:     false,
	}
	for raw, want := range cases {
		var f Flag
		require.NoError(t, json.Unmarshal([]byte(raw), &f), raw)
		assert.Equal(t, want, bool(f), raw)
	}
}

func TestIsAdult(t *testing.T) {
	adult := func(names ...string) bool {
		demos := make([]Demographic, len(names))
		for i, n := range names {
			demos[i] = Demographic{Name: n}
		}
		p := PersonRecord{Demographics: DemographicSet{Demographic: demos}}
		return p.IsAdult()
	}

	assert.True(t, adult(), "no demographics means adult")
	assert.True(t, adult("Adults"))
	assert.True(t, adult("Children", "Adults"), "Adults wins over Children")
	assert.False(t, adult("Children"))
	assert.True(t, adult("Youth"), "other demographics are included")
}

func TestVolunteerPositions_CollapsesToSubDepartment(t *testing.T) {
	p := PersonRecord{
		ID: "p1",
		Departments: DepartmentSet{Department: []Department{
			{
				Name: "Sunday Service",
				SubDepartments: SubDepartmentSet{SubDepartment: []SubDepartment{
					{
						Name: "Musicians",
						Positions: PositionSet{Position: []DepartmentPosition{
							{ID: "pos1", Name: "Musicians - Bass"},
							{ID: "pos2", Name: "Musicians - Vocals"},
						}},
					},
					{
						// No positions: not a rostered assignment.
						Name:      "Setup",
						Positions: PositionSet{},
					},
					{
						// Unnamed sub-departments are skipped.
						Name: "",
						Positions: PositionSet{Position: []DepartmentPosition{
							{ID: "pos3", Name: "Orphan"},
						}},
					},
				}},
			},
		}},
	}

	positions := p.VolunteerPositions()
	require.Len(t, positions, 1)
	assert.Equal(t, "Musicians", positions[0].ID)
	assert.Equal(t, "Musicians", positions[0].Name)
	assert.Equal(t, "Sunday Service", positions[0].Department)
}

func TestEnvelopeAPIError(t *testing.T) {
	raw := `{"status": "fail", "error": {"code": 250, "message": "Invalid group ID"}}`
	var resp groupsResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	err := resp.apiErr(200)
	var upstreamErr *UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, 250, upstreamErr.Code)
	assert.Equal(t, "Invalid group ID", upstreamErr.Message)
}

func TestEnvelopeAPIError_InvalidKey(t *testing.T) {
	raw := `{"status": "fail", "error": {"code": "102", "message": "Invalid or missing API key"}}`
	var resp categoriesResponse
	require.NoError(t, json.Unmarshal([]byte(raw), &resp))

	err := resp.apiErr(200)
	var credentialErr *CredentialError
	require.ErrorAs(t, err, &credentialErr)
	assert.Equal(t, "Invalid or missing API key", credentialErr.Message)
}
