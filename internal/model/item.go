package model

// Selectable item discriminators.
const (
	ItemTypeGroup   = "group"
	ItemTypeService = "service"
)

// NoCategoryID marks groups that carry no group category, so the
// client can offer "No Category" as an exclusion choice.
const NoCategoryID = "__no_category__"

// SelectableItem is one entry in the combined group / volunteer
// position picker. CategoryIDs is populated for groups only,
// Department for positions only.
type SelectableItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	MemberCount int      `json:"member_count"`
	CategoryIDs []string `json:"category_ids,omitempty"`
	Department  string   `json:"department,omitempty"`
}

// Category is a person category or group category, used only as an
// exclusion filter.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
