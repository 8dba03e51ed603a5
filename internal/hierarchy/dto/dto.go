package dto

import "github.com/papermart/listing-service/internal/model"

type HierarchyData struct {
	Groups []model.Group `json:"groups"`
	Makes  []model.Make  `json:"makes"`
	Grades []model.Grade `json:"grades"`
	Brands []model.Brand `json:"brands"`
}

// Empty returns a HierarchyData with empty (non-nil) collections, the
// degraded payload served when the underlying fetch fails.
func Empty() *HierarchyData {
	return &HierarchyData{
		Groups: []model.Group{},
		Makes:  []model.Make{},
		Grades: []model.Grade{},
		Brands: []model.Brand{},
	}
}
