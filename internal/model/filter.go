package model

// FilterRequest is the sole input to the aggregation engine: which
// groups and volunteer positions to pull people from, and which
// categories to exclude.
type FilterRequest struct {
	GroupIDs                 []string `json:"group_ids"`
	ServicePositionIDs       []string `json:"service_position_ids"`
	ExcludedCategoryIDs      []string `json:"excluded_category_ids"`
	ExcludedGroupCategoryIDs []string `json:"excluded_group_category_ids"`
}

// Empty reports whether the request selects nothing at all.
func (r FilterRequest) Empty() bool {
	return len(r.GroupIDs) == 0 && len(r.ServicePositionIDs) == 0
}
