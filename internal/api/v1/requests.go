package v1

import "github.com/isaaclee0/elvantoexport/internal/model"

// Every request carries the caller's Elvanto API key; it is used for
// the duration of the request and never persisted.
type baseRequest struct {
	APIKey string `json:"api_key" binding:"required"`
}

type categoriesRequest struct {
	baseRequest
}

type groupsAndServicesRequest struct {
	baseRequest
	// Accepted for compatibility; exclusion is applied client-side
	// using the category IDs attached to each item.
	ExcludedGroupCategoryIDs []string `json:"excluded_group_category_ids"`
}

type filterRequest struct {
	baseRequest
	GroupIDs                 []string `json:"group_ids"`
	ServicePositionIDs       []string `json:"service_position_ids"`
	ExcludedCategoryIDs      []string `json:"excluded_category_ids"`
	ExcludedGroupCategoryIDs []string `json:"excluded_group_category_ids"`
}

func (r filterRequest) toModel() model.FilterRequest {
	return model.FilterRequest{
		GroupIDs:                 r.GroupIDs,
		ServicePositionIDs:       r.ServicePositionIDs,
		ExcludedCategoryIDs:      r.ExcludedCategoryIDs,
		ExcludedGroupCategoryIDs: r.ExcludedGroupCategoryIDs,
	}
}

type exportRequest struct {
	People []model.Person `json:"people"`
}

type categoriesResponse struct {
	Categories []model.Category `json:"categories"`
}

type filterResponse struct {
	People []model.Person `json:"people"`
	Count  int            `json:"count"`
}
