package repository

// Page represents a simple limit/offset window for listing operations.
// I keep it intentionally small; advanced filtering belongs to higher layers.
type Page struct {
	Limit  int
	Offset int
}

// PageResult carries a slice of items and the total count matching the query.
// Total is counted independently of the window so it stays correct past the last page.
type PageResult[T any] struct {
	Items []T
	Total int
}
