package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ykvlv/challenge-bot/internal/challenge"
	"github.com/ykvlv/challenge-bot/internal/config"
	"github.com/ykvlv/challenge-bot/internal/domain"
	"github.com/ykvlv/challenge-bot/internal/metrics"
	"github.com/ykvlv/challenge-bot/internal/store"
	"github.com/ykvlv/challenge-bot/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	loc     *time.Location
	reg     *prom.Registry
	rec     *metrics.PrometheusRecorder
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	loc, err := domain.ValidateTZ(cfg.ChallengeTZ)
	if err != nil {
		return nil, fmt.Errorf("challenge tz: %w", err)
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	reg := prom.NewRegistry()
	rec := metrics.NewPrometheusRecorder(reg)

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      newMux(reg),
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, loc: loc, reg: reg, rec: rec, httpSrv: srv}, nil
}

// newMux serves liveness and Prometheus metrics.
func newMux(reg *prom.Registry) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	return mux
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting challenge-bot",
		zap.String("bot", a.bot.Self.UserName),
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("tz", a.loc.String()),
	)

	// Open SQLite and run migrations.
	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready", zap.String("path", a.cfg.DBPath))

	svc := challenge.New(repo, a.log,
		challenge.WithClock(domain.SystemClock{Loc: a.loc}),
		challenge.WithRecorder(a.rec),
	)
	a.router = telegram.NewRouter(a.bot, a.log, svc, a.rec)

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = a.cfg.PollTimeout
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")
			a.bot.StopReceivingUpdates()

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()

			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if err := a.repo.Close(); err != nil {
				a.log.Warn("sqlite close error", zap.Error(err))
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
