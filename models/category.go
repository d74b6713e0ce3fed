package models

// Category is a board section posts are filed under. Categories are seeded at
// setup time and are not deletable.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
