package filter

import "github.com/isaaclee0/elvantoexport/internal/model"

// accumulator is the upsert-by-person-ID merge map. It remembers
// first-seen order so the final list is deterministic, and it keeps
// the category a person was last reported with so the post-merge
// exclusion can drop them regardless of which source found them first.
type accumulator struct {
	order      []string
	people     map[string]*model.Person
	categories map[string]string
}

func newAccumulator() *accumulator {
	return &accumulator{
		people:     map[string]*model.Person{},
		categories: map[string]string{},
	}
}

// upsert returns the record for the person, creating it on first
// sighting. Identity fields are filled in from the first record that
// carries them; the category is updated whenever a source reports one.
func (a *accumulator) upsert(id, firstname, preferredName, lastname, email, categoryID string) *model.Person {
	p, ok := a.people[id]
	if !ok {
		p = &model.Person{
			ID:            id,
			Firstname:     firstname,
			PreferredName: preferredName,
			Lastname:      lastname,
			Email:         email,
			Groups:        []model.GroupMembership{},
			Positions:     []model.PositionMembership{},
		}
		a.people[id] = p
		a.order = append(a.order, id)
	} else {
		if p.Firstname == "" {
			p.Firstname = firstname
		}
		if p.PreferredName == "" {
			p.PreferredName = preferredName
		}
		if p.Lastname == "" {
			p.Lastname = lastname
		}
		if p.Email == "" {
			p.Email = email
		}
	}
	if categoryID != "" {
		a.categories[id] = categoryID
	}
	return p
}

// finish returns the merged people in first-seen order, dropping
// anyone whose category is excluded.
func (a *accumulator) finish(excludedCategories map[string]bool) []model.Person {
	out := make([]model.Person, 0, len(a.order))
	for _, id := range a.order {
		if excludedCategories[a.categories[id]] {
			continue
		}
		out = append(out, *a.people[id])
	}
	return out
}
