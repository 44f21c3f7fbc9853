package bot

import (
	"context"

	"logbobot/pkg/misskey"
)

// APIClient abstracts the Misskey HTTP client for testing.
type APIClient interface {
	Relation(ctx context.Context, userID string) (*misskey.Relation, error)
	Follow(ctx context.Context, userID string) error
	CreateNote(ctx context.Context, params misskey.CreateNoteParams) error
	CreateReaction(ctx context.Context, noteID, reaction string) error
}
