package models

import (
	"time"
)

// Folder is a node in an owner's folder tree. Folders are immutable after
// creation: no rename or move exists, so the materialized path never drifts
// from the parent chain.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path" db:"path"` // Materialized: parent path + "/" + name
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ChildPath returns the materialized path a child named name would have
// under f.
func (f *Folder) ChildPath(name string) string {
	return f.Path + "/" + name
}
