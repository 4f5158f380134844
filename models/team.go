package models

// Team represents a HackMD team the authenticated user belongs to.
type Team struct {
	// ID is the server-assigned team identifier.
	ID string `json:"id"`

	// Name is the human-readable team name.
	Name string `json:"name"`

	// Path is the team's URL path segment, also used to address
	// team-scoped note endpoints.
	Path string `json:"path"`

	// Description is the optional team description.
	Description string `json:"description,omitempty"`
}
