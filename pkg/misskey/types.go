package misskey

// User is the author of a note. Host is empty for local users.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Host     string `json:"host"`
}

// Note is the subset of a Misskey note the bot reads.
type Note struct {
	ID         string `json:"id"`
	UserID     string `json:"userId"`
	Text       string `json:"text"`
	User       User   `json:"user"`
	Visibility string `json:"visibility"`
}

// Relation describes the bot's relationship to another user.
type Relation struct {
	ID          string `json:"id"`
	IsFollowing bool   `json:"isFollowing"`
}

// Account is the authenticated bot account returned by the `i` endpoint.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// CreateNoteParams are the fields the bot sets when posting a reply.
type CreateNoteParams struct {
	Text       string `json:"text"`
	ReplyID    string `json:"replyId,omitempty"`
	Visibility string `json:"visibility,omitempty"`
}
