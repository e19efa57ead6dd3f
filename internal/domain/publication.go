package domain

import "time"

// Publication types. A publication is identified by (workspace, type, name).
const (
	TypeLayer = "layer"
	TypeMap   = "map"
)

// KnownType reports whether ptype is a recognized publication type.
func KnownType(ptype string) bool {
	return ptype == TypeLayer || ptype == TypeMap
}

// AccessRights is the full access-rights record of a publication. Both
// lists are always present once completed; write is not required to be a
// subset of read.
type AccessRights struct {
	Read  []string `json:"read"`
	Write []string `json:"write"`
}

// AccessRightsUpdate is a partially-specified access-rights change. A nil
// slice means the corresponding right is left untouched; a non-nil slice
// fully replaces it.
type AccessRightsUpdate struct {
	Read  []string `json:"read,omitempty"`
	Write []string `json:"write,omitempty"`
}

// Publication is a published layer or map within a workspace.
type Publication struct {
	UUID         string       `json:"uuid"`
	Workspace    string       `json:"workspace"`
	Type         string       `json:"publication_type"`
	Name         string       `json:"name"`
	Title        string       `json:"title,omitempty"`
	AccessRights AccessRights `json:"access_rights"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}
