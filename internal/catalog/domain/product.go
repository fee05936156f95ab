package domain

type Product struct {
	ID          string
	Name        string
	Description string
	Price       int64
	Stock       int
	Category    string
	Brand       string
	Status      string
	ImageRef    string
}

// ListFilter narrows a catalog listing. Zero values mean "not set"; the
// service fills paging defaults.
type ListFilter struct {
	Search     string
	Categories []string
	Brands     []string
	Condition  string
	MinPrice   int64
	MaxPrice   int64
	OrderBy    string
	Page       int
	PageSize   int
}

type StockInfo struct {
	ProductID   string
	Stock       int
	IsAvailable bool
}
