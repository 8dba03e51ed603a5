package dto

type ListingFilters struct {
	MemberID  string
	GroupID   string
	MakeID    string
	Status    string
	SortBy    string // price, quantity, created_at
	SortOrder string // asc, desc
	Page      int
	PageSize  int
}
