package bot

import (
	"fmt"
	"strings"

	"logbobot/pkg/ledger"
)

// Acknowledgement reactions for check-ins.
const (
	reactionNew         = "⭕"
	reactionAlreadyDone = "❌"
)

const rankingEmpty = "現在、データはありません。"

func followedMessage(acct string) string {
	return fmt.Sprintf("@%s フォローいたしました。「ログボ」と呟いてログインボーナスをお受け取りください。", acct)
}

func followNeededMessage(acct string) string {
	return fmt.Sprintf("@%s ログインボーナスを受け取るには、私をフォローしてください。「follow me」と送っていただければフォローいたします。", acct)
}

func checkInMessage(acct string, result ledger.CheckInResult) string {
	if result.AlreadyDoneToday {
		return fmt.Sprintf("@%s 本日は既にログインボーナスを受取済みです。\n連続: %d日 / 合計: %d日",
			acct, result.ConsecutiveDays, result.TotalDays)
	}
	if result.TotalDays == 1 && result.ConsecutiveDays == 1 {
		return fmt.Sprintf("@%s 🎉 初回ログインボーナスです！明日もまたお越しください。", acct)
	}
	return fmt.Sprintf("@%s 🎁 ログインボーナス！\n連続ログイン: %d日目\n合計: %d日",
		acct, result.ConsecutiveDays, result.TotalDays)
}

// rankingMessage renders the top streaks with medals for the first three
// places. An empty ledger gets its own message, never an empty listing.
func rankingMessage(records []ledger.Record) string {
	if len(records) == 0 {
		return rankingEmpty
	}

	var b strings.Builder
	b.WriteString("📊 **連続ログインボーナス ランキング TOP 10**\n\n")
	for i, record := range records {
		var medal string
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		default:
			medal = fmt.Sprintf("%d. ", i+1)
		}
		fmt.Fprintf(&b, "%s `%s`\n", medal, record.Acct)
		fmt.Fprintf(&b, "   連続: %d日 / 合計: %d日\n\n", record.ConsecutiveDays, record.TotalDays)
	}
	return b.String()
}
