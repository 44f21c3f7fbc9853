// Package bot routes incoming notes to the follow, ranking and check-in
// flows.
package bot

import (
	"context"
	"errors"
	"log"

	"logbobot/pkg/dedup"
	"logbobot/pkg/ledger"
	"logbobot/pkg/misskey"
)

type Handler struct {
	api          APIClient
	ledger       *ledger.Ledger
	lock         *dedup.Lock
	botUserID    string
	botHost      string
	rankingLimit int
}

func NewHandler(api APIClient, l *ledger.Ledger, lock *dedup.Lock, botUserID, botHost string, rankingLimit int) *Handler {
	return &Handler{
		api:          api,
		ledger:       l,
		lock:         lock,
		botUserID:    botUserID,
		botHost:      botHost,
		rankingLimit: rankingLimit,
	}
}

// HandleNote processes one delivered note: drop the bot's own notes, drop
// duplicates, classify, dispatch. Nothing in here propagates an error; a
// failed external call ends the note's handling with a log line.
func (h *Handler) HandleNote(ctx context.Context, note *misskey.Note, channel string) {
	if note.UserID == h.botUserID {
		return
	}
	if h.lock.CheckAndLock(note.ID) {
		log.Printf("[SKIP-%s] Duplicate detected: %s", channel, note.ID)
		return
	}

	acct := h.fullAcct(note.User)
	log.Printf("[%s] Processing note from @%s: %s", channel, acct, note.Text)

	switch Classify(note.Text) {
	case IntentFollowRequest:
		h.handleFollowRequest(ctx, note, acct, channel)
	case IntentRanking:
		h.handleRanking(ctx, note, acct)
	case IntentCheckIn:
		h.handleCheckIn(ctx, note, acct)
	}
}

// fullAcct renders username@host, with the bot's instance host standing in
// for the empty host of local users.
func (h *Handler) fullAcct(user misskey.User) string {
	host := user.Host
	if host == "" {
		host = h.botHost
	}
	return user.Username + "@" + host
}

// isFollower reports whether the bot follows userID. Errors are logged and
// read as "not following".
func (h *Handler) isFollower(ctx context.Context, userID string) bool {
	relation, err := h.api.Relation(ctx, userID)
	if err != nil {
		log.Printf("Error checking follower %s: %v", userID, err)
		return false
	}
	return relation.IsFollowing
}

// reply posts a reply to note. Visibility mirrors the source note: specified
// stays specified, everything else goes public.
func (h *Handler) reply(ctx context.Context, note *misskey.Note, text string) {
	visibility := "public"
	if note.Visibility == "specified" {
		visibility = "specified"
	}
	err := h.api.CreateNote(ctx, misskey.CreateNoteParams{
		Text:       text,
		ReplyID:    note.ID,
		Visibility: visibility,
	})
	if err != nil {
		log.Printf("Error sending reply to %s: %v", note.ID, err)
	}
}

func (h *Handler) handleFollowRequest(ctx context.Context, note *misskey.Note, acct, channel string) {
	if h.isFollower(ctx, note.UserID) {
		log.Printf("[%s] Already following @%s. Skipping follow action.", channel, acct)
		return
	}

	if err := h.api.Follow(ctx, note.UserID); err != nil {
		log.Printf("Error following user %s: %v", note.UserID, err)
		return
	}
	log.Printf("Followed user: %s", note.UserID)
	h.reply(ctx, note, followedMessage(acct))
}

func (h *Handler) handleRanking(ctx context.Context, note *misskey.Note, acct string) {
	records, err := h.ledger.TopStreaks(ctx, h.rankingLimit)
	if err != nil {
		log.Printf("Error loading ranking: %v", err)
		return
	}
	h.reply(ctx, note, "@"+acct+"\n"+rankingMessage(records))
}

func (h *Handler) handleCheckIn(ctx context.Context, note *misskey.Note, acct string) {
	// The follow gate is checked on every check-in, never cached.
	if !h.isFollower(ctx, note.UserID) {
		h.reply(ctx, note, followNeededMessage(acct))
		return
	}

	result, err := h.ledger.RecordCheckIn(ctx, note.UserID, acct)
	if err != nil {
		log.Printf("Error recording check-in for @%s: %v", acct, err)
		return
	}

	reaction := reactionNew
	if result.AlreadyDoneToday {
		reaction = reactionAlreadyDone
	}
	if err := h.api.CreateReaction(ctx, note.ID, reaction); err != nil {
		// A reaction that already exists is an expected conflict.
		var apiErr *misskey.APIError
		if !errors.As(err, &apiErr) {
			log.Printf("Error adding reaction to %s: %v", note.ID, err)
		}
	}

	h.reply(ctx, note, checkInMessage(acct, result))
	log.Printf(">>> Logbo reply sent to %s", acct)
}
