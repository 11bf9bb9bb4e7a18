// Package filter implements the aggregation engine: given selected
// group and volunteer-position IDs plus category exclusions, it pulls
// the matching people from Elvanto and merges them into one record per
// unique person.
package filter

import (
	"context"
	"log"

	"github.com/isaaclee0/elvantoexport/internal/elvanto"
	"github.com/isaaclee0/elvantoexport/internal/metrics"
	"github.com/isaaclee0/elvantoexport/internal/model"
)

// ValidationError rejects a request before any upstream call is made.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + e.Message
}

// UpstreamClient is the slice of the Elvanto client the engine needs.
type UpstreamClient interface {
	GroupsWithPeople(ctx context.Context, apiKey string) ([]elvanto.Group, error)
	GroupsWithCategories(ctx context.Context, apiKey string) ([]elvanto.Group, error)
	PeopleWithDepartments(ctx context.Context, apiKey string) ([]elvanto.PersonRecord, error)
}

// Engine drives the upstream client and merges the results. Stateless;
// every call carries its own API key.
type Engine struct {
	client  UpstreamClient
	metrics *metrics.Metrics
}

// NewEngine creates the aggregation engine.
func NewEngine(client UpstreamClient, m *metrics.Metrics) *Engine {
	return &Engine{client: client, metrics: m}
}

// Aggregate computes the deduplicated people list for the request.
// Either it fully succeeds or it fails as a whole; there is no partial
// result. The returned order is first-seen, so a given input always
// produces the same sequence.
func (e *Engine) Aggregate(ctx context.Context, apiKey string, req model.FilterRequest) ([]model.Person, error) {
	if req.Empty() {
		return nil, &ValidationError{Message: "select at least one group or service position"}
	}

	acc := newAccumulator()

	if len(req.GroupIDs) > 0 {
		if err := e.mergeGroups(ctx, apiKey, req, acc); err != nil {
			return nil, err
		}
	}
	if len(req.ServicePositionIDs) > 0 {
		if err := e.mergePositions(ctx, apiKey, req, acc); err != nil {
			return nil, err
		}
	}

	// The person-category exclusion runs after the merge so it drops a
	// person no matter which source found them first.
	people := acc.finish(toSet(req.ExcludedCategoryIDs))
	log.Printf("filter: %d groups + %d positions selected -> %d people", len(req.GroupIDs), len(req.ServicePositionIDs), len(people))
	e.metrics.ObserveFilterRun()
	return people, nil
}

// mergeGroups upserts the leaders of every selected group. A selected
// group that carries an excluded group category is skipped entirely,
// guarding against stale client selections; the picker normally hides
// such groups before they can be selected.
func (e *Engine) mergeGroups(ctx context.Context, apiKey string, req model.FilterRequest, acc *accumulator) error {
	groups, err := e.client.GroupsWithPeople(ctx, apiKey)
	if err != nil {
		return err
	}
	withCategories, err := e.client.GroupsWithCategories(ctx, apiKey)
	if err != nil {
		return err
	}
	categoriesByGroup := map[string][]string{}
	for _, g := range withCategories {
		if g.ID != "" {
			categoriesByGroup[g.ID] = g.CategoryIDs()
		}
	}

	selected := toSet(req.GroupIDs)
	excludedGroupCategories := toSet(req.ExcludedGroupCategoryIDs)

	for _, g := range groups {
		if g.ID == "" || !selected[g.ID] {
			continue
		}
		if groupExcluded(categoriesByGroup[g.ID], excludedGroupCategories) {
			continue
		}
		name := g.Name
		if name == "" {
			name = "Unknown Group"
		}
		for _, m := range g.Leaders() {
			if m.ID == "" {
				continue
			}
			p := acc.upsert(m.ID, m.Firstname, m.PreferredName, m.Lastname, m.Email, m.CategoryID)
			if !p.HasGroup(g.ID) {
				p.Groups = append(p.Groups, model.GroupMembership{ID: g.ID, Name: name, Role: "Leader"})
			}
		}
	}
	return nil
}

// mergePositions upserts every non-archived adult whose rostered
// positions intersect the selection.
func (e *Engine) mergePositions(ctx context.Context, apiKey string, req model.FilterRequest, acc *accumulator) error {
	people, err := e.client.PeopleWithDepartments(ctx, apiKey)
	if err != nil {
		return err
	}

	selected := toSet(req.ServicePositionIDs)
	for _, person := range people {
		if person.ID == "" || person.IsArchived() || !person.IsAdult() {
			continue
		}
		for _, pos := range person.VolunteerPositions() {
			if !selected[pos.ID] {
				continue
			}
			p := acc.upsert(person.ID, person.Firstname, person.PreferredName, person.Lastname, person.Email, person.CategoryID)
			if !p.HasPosition(pos.ID) {
				p.Positions = append(p.Positions, model.PositionMembership{ID: pos.ID, Name: pos.Name, Department: pos.Department})
			}
		}
	}
	return nil
}

// groupExcluded reports whether a group's categories intersect the
// excluded set. The no-category sentinel excludes groups that carry no
// category at all.
func groupExcluded(categoryIDs []string, excluded map[string]bool) bool {
	if len(excluded) == 0 {
		return false
	}
	if len(categoryIDs) == 0 {
		return excluded[model.NoCategoryID]
	}
	for _, id := range categoryIDs {
		if excluded[id] {
			return true
		}
	}
	return false
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}
