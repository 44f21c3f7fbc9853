package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"logbobot/pkg/ledger"
)

func TestCheckInMessageVariants(t *testing.T) {
	first := checkInMessage("alice@example.social", ledger.CheckInResult{TotalDays: 1, ConsecutiveDays: 1})
	assert.Contains(t, first, "初回ログインボーナス")

	regular := checkInMessage("alice@example.social", ledger.CheckInResult{TotalDays: 10, ConsecutiveDays: 3})
	assert.Contains(t, regular, "連続ログイン: 3日目")
	assert.Contains(t, regular, "合計: 10日")

	repeat := checkInMessage("alice@example.social", ledger.CheckInResult{TotalDays: 10, ConsecutiveDays: 3, AlreadyDoneToday: true})
	assert.Contains(t, repeat, "既にログインボーナスを受取済み")
	assert.Contains(t, repeat, "連続: 3日 / 合計: 10日")
}

func TestRankingMessageEmpty(t *testing.T) {
	assert.Equal(t, rankingEmpty, rankingMessage(nil))
}

func TestRankingMessageMedalsAndOrder(t *testing.T) {
	records := []ledger.Record{
		{Acct: "first@a", ConsecutiveDays: 30, TotalDays: 40},
		{Acct: "second@b", ConsecutiveDays: 20, TotalDays: 50},
		{Acct: "third@c", ConsecutiveDays: 10, TotalDays: 10},
		{Acct: "fourth@d", ConsecutiveDays: 5, TotalDays: 9},
	}

	msg := rankingMessage(records)

	assert.Contains(t, msg, "🥇 `first@a`")
	assert.Contains(t, msg, "🥈 `second@b`")
	assert.Contains(t, msg, "🥉 `third@c`")
	assert.Contains(t, msg, "4.  `fourth@d`")
	assert.Contains(t, msg, "連続: 30日 / 合計: 40日")

	// Entries appear in store order.
	assert.Less(t, strings.Index(msg, "first@a"), strings.Index(msg, "second@b"))
	assert.Less(t, strings.Index(msg, "second@b"), strings.Index(msg, "third@c"))
}
