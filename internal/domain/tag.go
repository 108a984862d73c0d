package domain

// Tag is a canonical label attachable to many tutorials. Labels are stored
// lowercase and are unique across the system.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}
