package telegram

import (
	"context"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ykvlv/challenge-bot/internal/challenge"
	"github.com/ykvlv/challenge-bot/internal/domain"
	"github.com/ykvlv/challenge-bot/internal/metrics"
)

// Bot is the subset of *tgbotapi.BotAPI the router uses.
type Bot interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Router wires Telegram updates to challenge operations. It keeps no state.
type Router struct {
	bot Bot
	log *zap.Logger
	svc *challenge.Service
	rec metrics.Recorder
}

// NewRouter creates a new Telegram router. A nil recorder disables metrics.
func NewRouter(bot Bot, log *zap.Logger, svc *challenge.Service, rec metrics.Recorder) *Router {
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}
	return &Router{bot: bot, log: log, svc: svc, rec: rec}
}

// HandleUpdate routes a single update to the appropriate handler.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	log := r.log.With(zap.String("req_id", uuid.NewString()), zap.Int("update_id", upd.UpdateID))

	// Text messages
	if upd.Message != nil {
		msg := upd.Message
		chatID := msg.Chat.ID
		userID := chatID
		if msg.From != nil {
			userID = msg.From.ID
			log = log.With(zap.Int64("user_id", userID))
		}

		if !msg.IsCommand() {
			r.rec.IncUpdate("text")
			return
		}
		r.rec.IncUpdate("command")

		switch msg.Command() {
		case "start":
			r.handleStart(ctx, log, chatID, msg.From)
		case "new_challenge":
			r.handleNewChallenge(chatID)
		case "today":
			r.handleToday(ctx, log, chatID, userID)
		case "stats":
			r.handleStats(ctx, log, chatID, userID)
		case "remind":
			r.handleRemind(chatID)
		case "help":
			r.sendText(chatID, helpText)
		default:
			log.Debug("unknown command", zap.String("command", msg.Command()))
		}
		return
	}

	// Callback queries (inline buttons)
	if upd.CallbackQuery != nil {
		cb := upd.CallbackQuery
		if cb.Message == nil || cb.From == nil {
			_ = r.answerCallback(cb.ID, "")
			return
		}
		r.rec.IncUpdate("callback")
		log = log.With(zap.Int64("user_id", cb.From.ID))

		data := cb.Data
		switch {
		case strings.HasPrefix(data, domain.ChallengePrefix):
			r.handleChallengeCallback(ctx, log, cb)
		case strings.HasPrefix(data, domain.TogglePrefix):
			r.handleToggleCallback(ctx, log, cb)
		default:
			// Unknown callback — ignore silently
			_ = r.answerCallback(cb.ID, "")
		}
		return
	}

	r.rec.IncUpdate("other")
}
