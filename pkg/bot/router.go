package bot

import (
	"regexp"
	"strings"
)

// Intent is the recognized command of an incoming note.
type Intent int

const (
	IntentNone Intent = iota
	IntentFollowRequest
	IntentRanking
	IntentCheckIn
)

var followPhrases = []string{"follow me", "フォローして"}

var rankingPattern = regexp.MustCompile(`(?i)ランキング|らんきんぐ|ranking`)

var checkInPattern = regexp.MustCompile(`(?i)ログボ|ろぐぼ|ログインボーナス|ろぐいんぼーなす|loginbonus`)

// Classify maps note text to an intent. Matching is case-insensitive and the
// first match in priority order wins; exactly one intent fires per note.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, phrase := range followPhrases {
		if strings.Contains(lower, phrase) {
			return IntentFollowRequest
		}
	}
	if rankingPattern.MatchString(text) {
		return IntentRanking
	}
	if checkInPattern.MatchString(text) {
		return IntentCheckIn
	}
	return IntentNone
}
