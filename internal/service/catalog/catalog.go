// Package catalog builds the browsable lists a caller picks from: the
// combined group / volunteer-position items and the two category
// taxonomies used for exclusions.
package catalog

import (
	"context"
	"log"
	"sort"

	"github.com/isaaclee0/elvantoexport/internal/elvanto"
	"github.com/isaaclee0/elvantoexport/internal/model"
)

// UpstreamClient is the slice of the Elvanto client this service needs.
type UpstreamClient interface {
	PeopleCategories(ctx context.Context, apiKey string) ([]elvanto.Category, error)
	GroupCategories(ctx context.Context, apiKey string) ([]elvanto.Category, error)
	GroupsWithPeople(ctx context.Context, apiKey string) ([]elvanto.Group, error)
	GroupsWithCategories(ctx context.Context, apiKey string) ([]elvanto.Group, error)
	PeopleWithDepartments(ctx context.Context, apiKey string) ([]elvanto.PersonRecord, error)
}

// ItemList is the combined picker payload.
type ItemList struct {
	Items          []model.SelectableItem `json:"items"`
	Count          int                    `json:"count"`
	GroupsCount    int                    `json:"groups_count"`
	PositionsCount int                    `json:"positions_count"`
}

// Service exposes the catalog reads. It holds no state; every call
// carries its own API key.
type Service struct {
	client UpstreamClient
}

// NewService creates the catalog service.
func NewService(client UpstreamClient) *Service {
	return &Service{client: client}
}

// PeopleCategories lists the person categories offered for exclusion.
func (s *Service) PeopleCategories(ctx context.Context, apiKey string) ([]model.Category, error) {
	cats, err := s.client.PeopleCategories(ctx, apiKey)
	if err != nil {
		return nil, err
	}
	out := make([]model.Category, 0, len(cats))
	for _, c := range cats {
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		out = append(out, model.Category{ID: c.ID, Name: name})
	}
	return out, nil
}

// GroupCategories lists the group categories actually in use, sorted by
// name, with names resolved against the group-category taxonomy. A
// "No Category" entry is prepended when any group carries no category.
func (s *Service) GroupCategories(ctx context.Context, apiKey string) ([]model.Category, error) {
	taxonomy := map[string]string{}
	if cats, err := s.client.GroupCategories(ctx, apiKey); err == nil {
		for _, c := range cats {
			taxonomy[c.ID] = c.Name
		}
	} else {
		// The derived list below still works from the names embedded in
		// the group records.
		log.Printf("group category taxonomy unavailable: %v", err)
	}

	groups, err := s.client.GroupsWithCategories(ctx, apiKey)
	if err != nil {
		return nil, err
	}

	inUse := map[string]string{}
	uncategorized := 0
	for _, g := range groups {
		cats := g.Categories.Category
		if len(cats) == 0 {
			uncategorized++
			continue
		}
		for _, c := range cats {
			if c.ID == "" {
				continue
			}
			name := taxonomy[c.ID]
			if name == "" {
				name = c.Name
			}
			if name != "" {
				inUse[c.ID] = name
			}
		}
	}

	out := make([]model.Category, 0, len(inUse)+1)
	for id, name := range inUse {
		out = append(out, model.Category{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	if uncategorized > 0 {
		out = append([]model.Category{{ID: model.NoCategoryID, Name: "No Category"}}, out...)
	}
	return out, nil
}

// SelectableItems builds the combined picker: every group (leader count
// as the member count, category IDs attached for client-side
// filtering) followed by every volunteer position derived from
// people's departments. Category exclusion is not applied here; the
// client hides items using the attached IDs.
func (s *Service) SelectableItems(ctx context.Context, apiKey string) (ItemList, error) {
	groups, err := s.client.GroupsWithPeople(ctx, apiKey)
	if err != nil {
		return ItemList{}, err
	}
	withCategories, err := s.client.GroupsWithCategories(ctx, apiKey)
	if err != nil {
		return ItemList{}, err
	}

	// The people and categories fields come from separate listings;
	// stitch the categories onto the groups that carry people.
	categoriesByGroup := map[string][]string{}
	for _, g := range withCategories {
		if g.ID != "" {
			categoriesByGroup[g.ID] = g.CategoryIDs()
		}
	}

	items := make([]model.SelectableItem, 0, len(groups))
	for _, g := range groups {
		if g.ID == "" {
			continue
		}
		name := g.Name
		if name == "" {
			name = "Unnamed Group"
		}
		categoryIDs := categoriesByGroup[g.ID]
		if len(categoryIDs) == 0 {
			categoryIDs = []string{model.NoCategoryID}
		}
		items = append(items, model.SelectableItem{
			ID:          g.ID,
			Name:        name,
			Type:        model.ItemTypeGroup,
			MemberCount: len(g.Leaders()),
			CategoryIDs: categoryIDs,
		})
	}
	groupsCount := len(items)

	people, err := s.client.PeopleWithDepartments(ctx, apiKey)
	if err != nil {
		return ItemList{}, err
	}
	positions := collectPositions(people)
	log.Printf("catalog: %d groups, %d people, %d volunteer positions", groupsCount, len(people), len(positions))

	items = append(items, positions...)

	return ItemList{
		Items:          items,
		Count:          len(items),
		GroupsCount:    groupsCount,
		PositionsCount: len(positions),
	}, nil
}

// collectPositions folds every person's rostered positions into unique
// selectable items, counting distinct rostered people per position.
// Order is first-seen, which keeps the list stable for a given account.
func collectPositions(people []elvanto.PersonRecord) []model.SelectableItem {
	var order []string
	byID := map[string]*model.SelectableItem{}
	volunteers := map[string]map[string]bool{}

	for _, p := range people {
		if p.ID == "" {
			continue
		}
		for _, pos := range p.VolunteerPositions() {
			item, ok := byID[pos.ID]
			if !ok {
				item = &model.SelectableItem{
					ID:         pos.ID,
					Name:       pos.Name,
					Type:       model.ItemTypeService,
					Department: pos.Department,
				}
				byID[pos.ID] = item
				volunteers[pos.ID] = map[string]bool{}
				order = append(order, pos.ID)
			}
			volunteers[pos.ID][p.ID] = true
		}
	}

	out := make([]model.SelectableItem, 0, len(order))
	for _, id := range order {
		item := byID[id]
		item.MemberCount = len(volunteers[id])
		out = append(out, *item)
	}
	return out
}
