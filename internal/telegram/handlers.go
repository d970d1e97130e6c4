package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/ykvlv/challenge-bot/internal/domain"
)

// --- Generic helpers ---

func (r *Router) sendText(chatID int64, text string) {
	_, _ = r.bot.Send(tgbotapi.NewMessage(chatID, text))
}

func (r *Router) answerCallback(id, text string) error {
	_, err := r.bot.Request(tgbotapi.NewCallback(id, text))
	return err
}

// fail logs err and replies with the matching user-facing text.
func (r *Router) fail(log *zap.Logger, chatID int64, op string, err error) {
	if errors.Is(err, domain.ErrNotStarted) {
		r.sendText(chatID, notStartedText)
		return
	}
	r.rec.IncError(op)
	log.Error(op+" failed", zap.Error(err))
	r.sendText(chatID, genericErrorText)
}

// --- Commands ---

func (r *Router) handleStart(ctx context.Context, log *zap.Logger, chatID int64, from *tgbotapi.User) {
	userID, username, name := chatID, "", ""
	if from != nil {
		userID, username, name = from.ID, from.UserName, from.FirstName
	}
	if err := r.svc.RegisterUser(ctx, userID, username, name); err != nil {
		r.fail(log, chatID, "register", err)
		return
	}
	log.Info("user registered")

	msg := tgbotapi.NewMessage(chatID, welcomeText(name))
	msg.ReplyMarkup = mainMenuKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleNewChallenge(chatID int64) {
	msg := tgbotapi.NewMessage(chatID, chooseLengthText)
	msg.ReplyMarkup = challengeLengthKeyboard()
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleToday(ctx context.Context, log *zap.Logger, chatID, userID int64) {
	v, err := r.svc.GetToday(ctx, userID)
	if err != nil {
		r.fail(log, chatID, "today", err)
		return
	}
	msg := tgbotapi.NewMessage(chatID, todayText(v))
	msg.ReplyMarkup = todayKeyboard(v.Day)
	_, _ = r.bot.Send(msg)
}

func (r *Router) handleStats(ctx context.Context, log *zap.Logger, chatID, userID int64) {
	s, ok, err := r.svc.GetStats(ctx, userID)
	if err != nil {
		r.fail(log, chatID, "stats", err)
		return
	}
	if !ok {
		r.sendText(chatID, noStatsText)
		return
	}
	r.sendText(chatID, statsText(s))
}

func (r *Router) handleRemind(chatID int64) {
	r.sendText(chatID, reminderText(r.svc.PickReminder()))
}

// --- Callbacks ---

func (r *Router) handleChallengeCallback(ctx context.Context, log *zap.Logger, cb *tgbotapi.CallbackQuery) {
	_ = r.answerCallback(cb.ID, "")
	chatID := cb.Message.Chat.ID

	days, err := domain.ParseChallengeCallback(cb.Data)
	if err != nil {
		log.Warn("bad challenge callback", zap.String("data", cb.Data), zap.Error(err))
		return
	}
	sum, err := r.svc.StartChallenge(ctx, cb.From.ID, days)
	if err != nil {
		r.fail(log, chatID, "start_challenge", err)
		return
	}

	edit := tgbotapi.NewEditMessageText(chatID, cb.Message.MessageID, challengeStartedText(sum))
	_, _ = r.bot.Send(edit)
}

func (r *Router) handleToggleCallback(ctx context.Context, log *zap.Logger, cb *tgbotapi.CallbackQuery) {
	_ = r.answerCallback(cb.ID, "")
	chatID := cb.Message.Chat.ID

	task, err := domain.ParseToggleCallback(cb.Data)
	if err != nil {
		log.Warn("bad toggle callback", zap.String("data", cb.Data), zap.Error(err))
		return
	}
	v, err := r.svc.ToggleTask(ctx, cb.From.ID, task)
	if err != nil {
		r.fail(log, chatID, "toggle", err)
		return
	}

	edit := tgbotapi.NewEditMessageTextAndMarkup(chatID, cb.Message.MessageID, todayText(v), todayKeyboard(v.Day))
	_, _ = r.bot.Send(edit)
}
