package domain

import "time"

// Workspace is a named container for publications. A workspace is
// "personal" when a user entity of the same name exists, and "public"
// otherwise. Workspaces are created implicitly on first successful
// publish.
type Workspace struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// User is a registered user. Its name doubles as the name of the user's
// personal workspace.
type User struct {
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
