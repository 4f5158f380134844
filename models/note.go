package models

// Note represents a single HackMD note as returned by the remote API.
// List endpoints return notes without the Content field populated;
// single-note endpoints return the full document.
type Note struct {
	// ID is the server-assigned note identifier used in API paths.
	ID string `json:"id"`

	// Title is the note title. The server derives it from the first
	// heading when none is supplied explicitly.
	Title string `json:"title"`

	// Content is the full markdown body of the note.
	// Empty in list responses.
	Content string `json:"content,omitempty"`

	// Tags are the note's tags as parsed by the server from the
	// document front matter.
	Tags []string `json:"tags,omitempty"`

	// CreatedAt is the creation timestamp in milliseconds since the epoch,
	// as reported by the API.
	CreatedAt int64 `json:"createdAt"`

	// LastChangedAt is the last modification timestamp in milliseconds
	// since the epoch.
	LastChangedAt int64 `json:"lastChangedAt"`

	// PublishLink is the public URL of the note, when published.
	PublishLink string `json:"publishLink,omitempty"`

	// ReadPermission controls who may read the note
	// ("owner", "signed_in" or "guest").
	ReadPermission string `json:"readPermission,omitempty"`

	// WritePermission controls who may edit the note
	// ("owner", "signed_in" or "guest").
	WritePermission string `json:"writePermission,omitempty"`
}

// NoteDraft carries the client-supplied fields for note creation and update
// requests. Zero-valued fields are omitted from the request body so that
// partial updates do not clobber server-side values.
type NoteDraft struct {
	Title           string `json:"title,omitempty"`
	Content         string `json:"content,omitempty"`
	ReadPermission  string `json:"readPermission,omitempty"`
	WritePermission string `json:"writePermission,omitempty"`
}
