package model

// The attribute hierarchy is a four-level tree: Group → Make → Grade → Brand.
// Rows are maintained by admin data entry and soft-deactivated, never deleted.
// A listing must reference one connected path through all four levels.

type Group struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Make struct {
	ID       string `db:"id" json:"id"`
	GroupID  string `db:"group_id" json:"group_id"`
	Name     string `db:"name" json:"name"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Grade struct {
	ID       string `db:"id" json:"id"`
	MakeID   string `db:"make_id" json:"make_id"`
	Name     string `db:"name" json:"name"`
	IsActive bool   `db:"is_active" json:"is_active"`
}

type Brand struct {
	ID       string `db:"id" json:"id"`
	GradeID  string `db:"grade_id" json:"grade_id"`
	Name     string `db:"name" json:"name"`
	IsActive bool   `db:"is_active" json:"is_active"`
}
