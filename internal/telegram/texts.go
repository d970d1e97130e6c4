package telegram

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ykvlv/challenge-bot/internal/domain"
)

// UI texts in English
const (
	welcomeFmt = "Hi, %s! 🎯\n\n" +
		"I will help you and your friends get through the three-task challenge:\n" +
		"✅ Sport\n✅ Study\n✅ Work\n\n" +
		helpText + "\n\n" +
		"Let's begin! Use /new_challenge"
	helpText = "Commands:\n" +
		"/start - start\n" +
		"/new_challenge - create a new challenge\n" +
		"/today - today's tasks\n" +
		"/remind - get a reminder to send to a friend\n" +
		"/stats - statistics"
	chooseLengthText  = "Choose the challenge length:"
	notStartedText    = "Create a challenge first with /new_challenge"
	noStatsText       = "You have no statistics yet. Start a challenge!"
	genericErrorText  = "Something went wrong. Please try again later."
	allCompleteText   = "🎉 All tasks done! Keep it up!"
	challengeStartFmt = "🎉 Great! A %d-day challenge has started!\n\n" +
		"Daily tasks:\n🏃 Sport\n📚 Study\n💼 Work\n\n" +
		"Use /today to mark tasks as done!"
	reminderFmt = "📨 Reminder for a friend:\n\n\"%s\"\n\nCopy it and send it to a friend!"
	statsFmt    = "📊 Your statistics:\n\n" +
		"Total days: %d\n" +
		"Perfect days: %d\n" +
		"Tasks completed: %d\n" +
		"Average per day: %.1f\n" +
		"Success rate: %.1f%%"
)

var taskLabels = map[domain.Task]struct{ icon, title string }{
	domain.TaskSport: {"🏃", "Sport"},
	domain.TaskStudy: {"📚", "Study"},
	domain.TaskWork:  {"💼", "Work"},
}

func welcomeText(name string) string {
	if name == "" {
		name = "there"
	}
	return fmt.Sprintf(welcomeFmt, name)
}

func challengeStartedText(s domain.ChallengeSummary) string {
	return fmt.Sprintf(challengeStartFmt, s.Days)
}

func todayText(v domain.TodayView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Day %d of %d\n\n", v.CurrentDay, v.ChallengeDays)
	for _, t := range domain.Tasks {
		mark := "❌"
		if v.Day.Flag(t) {
			mark = "✅"
		}
		l := taskLabels[t]
		fmt.Fprintf(&b, "%s %s: %s\n", l.icon, l.title, mark)
	}
	if v.AllComplete() {
		b.WriteString("\n" + allCompleteText)
	}
	return b.String()
}

func statsText(s domain.Stats) string {
	return fmt.Sprintf(statsFmt,
		s.TotalDays, s.PerfectDays, s.TotalTasks,
		s.AverageTasksPerDay(), s.SuccessRate(),
	)
}

func reminderText(r domain.Reminder) string {
	return fmt.Sprintf(reminderFmt, r.Phrase)
}

// mainMenuKeyboard builds the reply keyboard with the everyday commands.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	return tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/today"),
			tgbotapi.NewKeyboardButton("/stats"),
		),
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton("/remind"),
			tgbotapi.NewKeyboardButton("/new_challenge"),
		),
	)
}

// Inline keyboards
func challengeLengthKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(domain.ChallengeLengths))
	for _, days := range domain.ChallengeLengths {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("%d days", days),
				fmt.Sprintf("%s%d", domain.ChallengePrefix, days),
			),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func taskButton(d domain.DayRecord, t domain.Task) tgbotapi.InlineKeyboardButton {
	l := taskLabels[t]
	icon := l.icon
	if d.Flag(t) {
		icon = "✅"
	}
	return tgbotapi.NewInlineKeyboardButtonData(icon+" "+l.title, domain.TogglePrefix+t.String())
}

func todayKeyboard(d domain.DayRecord) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			taskButton(d, domain.TaskSport),
			taskButton(d, domain.TaskStudy),
		),
		tgbotapi.NewInlineKeyboardRow(
			taskButton(d, domain.TaskWork),
		),
	)
}
