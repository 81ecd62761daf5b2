package main

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/sirupsen/logrus"

	"stem-solver/api/internal/config"
	"stem-solver/api/internal/logging"
	"stem-solver/api/internal/solver/gemini"
	"stem-solver/api/internal/store"
	"stem-solver/api/internal/telegram"
)

func main() {
	logging.InitLogger(logrus.InfoLevel)
	log := logging.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if strings.TrimSpace(cfg.Telegram.BotToken) == "" {
		log.Fatal("missing required env TELEGRAM_BOT_TOKEN")
	}

	// --- Postgres (chat preferences only) ---
	dsn := resolveDSN()
	if dsn == "" {
		log.Fatal("database DSN is empty: set DATABASE_URL or POSTGRES_* env vars")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		log.Fatalf("sql.Open: %v", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(1 * time.Hour)
	{
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
	}
	prefs := store.NewPrefsRepo(db)

	// --- Telegram bot ---
	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Fatal(err)
	}
	bot.Debug = false

	eng := gemini.New(cfg.Gemini.APIKey, cfg.Gemini.Model,
		gemini.Sampling{
			Temperature:     cfg.Gemini.SolveTemperature,
			MaxOutputTokens: cfg.Gemini.SolveMaxTokens,
		},
		gemini.Sampling{
			Temperature:     cfg.Gemini.ExplainTemperature,
			MaxOutputTokens: cfg.Gemini.ExplainMaxTokens,
		},
	)

	r := &telegram.Router{
		Bot:    bot,
		Engine: eng,
		Prefs:  prefs,
		Log:    log,
	}

	// Healthz on the default mux; ListenForWebhook registers there too.
	http.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("db: not ok\n" + err.Error()))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	addr := "0.0.0.0:" + cfg.Server.Port

	if webhookURL := strings.TrimSpace(cfg.Telegram.WebhookURL); webhookURL != "" {
		startWebhookMode(log, addr, bot, r, webhookURL)
	} else {
		startPollingMode(log, addr, bot, r)
	}
}

func startWebhookMode(log *logrus.Logger, addr string, bot *tgbotapi.BotAPI, r *telegram.Router, baseURL string) {
	path := "/webhook/" + shortHash(bot.Token)
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		log.Fatal(err)
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		log.Fatal(err)
	}

	updates := bot.ListenForWebhook(path)
	go func() {
		for upd := range updates {
			r.HandleUpdate(upd)
		}
		log.Infoln("webhook updates channel closed")
	}()

	log.Infof("webhook listening on %s%s", addr, path)
	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatal(err)
	}
}

func startPollingMode(log *logrus.Logger, addr string, bot *tgbotapi.BotAPI, r *telegram.Router) {
	go func() {
		log.Infof("health server listening on %s/healthz", addr)
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Fatal(err)
		}
	}()

	offset := 0
	baseDelay := 1 * time.Second
	maxDelay := 15 * time.Second

	for {
		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30 // long polling (sec)

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := retryDelayFromError(err)
			if d < baseDelay {
				d = baseDelay
			}
			if d > maxDelay {
				d = maxDelay
			}
			log.Warnf("polling error: %v; retry in %v", err, d)
			time.Sleep(d)
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			r.HandleUpdate(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	if strings.Contains(strings.ToLower(err.Error()), "too many requests") {
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func resolveDSN() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}
	user := getenvDefault("POSTGRES_USER", "solver")
	pass := os.Getenv("POSTGRES_PASSWORD")
	host := getenvDefault("PGHOST", "db")
	port := getenvDefault("PGPORT", "5432")
	name := getenvDefault("POSTGRES_DB", "solver")

	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(user, pass),
		Host:     net.JoinHostPort(host, port),
		Path:     "/" + name,
		RawQuery: "sslmode=disable",
	}
	return u.String()
}

func getenvDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func shortHash(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])[:16]
}
