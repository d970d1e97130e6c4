package telegram

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ykvlv/challenge-bot/internal/challenge"
	"github.com/ykvlv/challenge-bot/internal/domain"
	"github.com/ykvlv/challenge-bot/internal/store"
)

type fakeBot struct {
	sent     []tgbotapi.Chattable
	requests []tgbotapi.Chattable
}

func (b *fakeBot) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	b.sent = append(b.sent, c)
	return tgbotapi.Message{}, nil
}

func (b *fakeBot) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	b.requests = append(b.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (b *fakeBot) lastText(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, b.sent)
	switch m := b.sent[len(b.sent)-1].(type) {
	case tgbotapi.MessageConfig:
		return m.Text
	case tgbotapi.EditMessageTextConfig:
		return m.Text
	default:
		t.Fatalf("unexpected chattable %T", m)
		return ""
	}
}

const (
	testChat = int64(100)
	testUser = int64(42)
)

func newTestRouter(t *testing.T) (*Router, *fakeBot) {
	t.Helper()
	repo, err := store.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "bot.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	clock := domain.FixedClock{At: time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)}
	svc := challenge.New(repo, zap.NewNop(), challenge.WithClock(clock))
	bot := &fakeBot{}
	return NewRouter(bot, zap.NewNop(), svc, nil), bot
}

func command(text string) tgbotapi.Update {
	cmd := strings.Fields(text)[0]
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: testUser, FirstName: "Ann", UserName: "ann"},
		Chat:      &tgbotapi.Chat{ID: testChat},
		Text:      text,
		Entities:  []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
	}}
}

func callback(data string) tgbotapi.Update {
	return tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{
		ID:      "cb",
		From:    &tgbotapi.User{ID: testUser},
		Message: &tgbotapi.Message{MessageID: 7, Chat: &tgbotapi.Chat{ID: testChat}},
		Data:    data,
	}}
}

func TestStartGreetsUser(t *testing.T) {
	r, bot := newTestRouter(t)
	r.HandleUpdate(context.Background(), command("/start"))

	msg, ok := bot.sent[0].(tgbotapi.MessageConfig)
	require.True(t, ok)
	assert.Equal(t, testChat, msg.ChatID)
	assert.Contains(t, msg.Text, "Hi, Ann!")
	assert.IsType(t, tgbotapi.ReplyKeyboardMarkup{}, msg.ReplyMarkup)
}

func TestTodayBeforeStart(t *testing.T) {
	r, bot := newTestRouter(t)
	r.HandleUpdate(context.Background(), command("/today"))
	assert.Equal(t, notStartedText, bot.lastText(t))
}

func TestStatsEmpty(t *testing.T) {
	r, bot := newTestRouter(t)
	r.HandleUpdate(context.Background(), command("/stats"))
	assert.Equal(t, noStatsText, bot.lastText(t))
}

func TestNewChallengeOffersLengths(t *testing.T) {
	r, bot := newTestRouter(t)
	r.HandleUpdate(context.Background(), command("/new_challenge"))

	msg := bot.sent[0].(tgbotapi.MessageConfig)
	kb, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup)
	require.True(t, ok)
	require.Len(t, kb.InlineKeyboard, 3)
	var data []string
	for _, row := range kb.InlineKeyboard {
		data = append(data, *row[0].CallbackData)
	}
	assert.Equal(t, []string{"challenge:7", "challenge:21", "challenge:30"}, data)
}

func TestChallengeAndToggleFlow(t *testing.T) {
	r, bot := newTestRouter(t)
	ctx := context.Background()

	r.HandleUpdate(ctx, command("/start"))
	r.HandleUpdate(ctx, callback("challenge:21"))
	assert.Contains(t, bot.lastText(t), "21-day challenge has started")

	r.HandleUpdate(ctx, command("/today"))
	assert.Equal(t, "Day 1 of 21\n\n🏃 Sport: ❌\n📚 Study: ❌\n💼 Work: ❌\n", bot.lastText(t))

	for _, task := range []string{"sport", "study", "work"} {
		r.HandleUpdate(ctx, callback("toggle:"+task))
	}
	edit, ok := bot.sent[len(bot.sent)-1].(tgbotapi.EditMessageTextConfig)
	require.True(t, ok)
	assert.Equal(t, 7, edit.MessageID)
	assert.Contains(t, edit.Text, allCompleteText)
	require.NotNil(t, edit.ReplyMarkup)
	assert.Equal(t, "✅ Sport", edit.ReplyMarkup.InlineKeyboard[0][0].Text)

	r.HandleUpdate(ctx, command("/stats"))
	assert.Contains(t, bot.lastText(t), "Perfect days: 1")
	assert.Contains(t, bot.lastText(t), "Success rate: 100.0%")

	// Every callback was answered.
	assert.Len(t, bot.requests, 4)
}

func TestBadCallbackIsAnsweredOnly(t *testing.T) {
	r, bot := newTestRouter(t)
	ctx := context.Background()

	r.HandleUpdate(ctx, callback("toggle:nap"))
	r.HandleUpdate(ctx, callback("challenge:abc"))
	r.HandleUpdate(ctx, callback("something"))

	assert.Empty(t, bot.sent)
	assert.Len(t, bot.requests, 3)
}

func TestRemind(t *testing.T) {
	r, bot := newTestRouter(t)
	r.HandleUpdate(context.Background(), command("/remind"))
	assert.Contains(t, bot.lastText(t), "Reminder for a friend")
}

func TestTodayTextAndKeyboard(t *testing.T) {
	v := domain.TodayView{CurrentDay: 1, ChallengeDays: 7, Day: domain.DayRecord{Study: true}}
	assert.Equal(t, "Day 1 of 7\n\n🏃 Sport: ❌\n📚 Study: ✅\n💼 Work: ❌\n", todayText(v))

	kb := todayKeyboard(v.Day)
	assert.Equal(t, "🏃 Sport", kb.InlineKeyboard[0][0].Text)
	assert.Equal(t, "✅ Study", kb.InlineKeyboard[0][1].Text)
	assert.Equal(t, "toggle:work", *kb.InlineKeyboard[1][0].CallbackData)
}

func TestStatsText(t *testing.T) {
	got := statsText(domain.Stats{TotalDays: 3, TotalTasks: 5, PerfectDays: 1})
	assert.Contains(t, got, "Average per day: 1.7")
	assert.Contains(t, got, "Success rate: 33.3%")
}
