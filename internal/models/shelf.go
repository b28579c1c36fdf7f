package models

// CatalogTitle pairs a catalog row id with its display title, the minimum
// projection needed for the consolidation resolver's normalize-and-compare scan.
type CatalogTitle struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// ShelfItem is one game on a user's shelf: the shared catalog entry together
// with that user's personal tracking data.
type ShelfItem struct {
	Game  CatalogGame `json:"game"`
	Entry LibraryGame `json:"entry"`
}

// Shelf is a user's complete library view, used by the export formatters.
type Shelf struct {
	User  User        `json:"user"`
	Items []ShelfItem `json:"items"`
}
