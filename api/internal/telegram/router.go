package telegram

import (
	"context"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"

	"stem-solver/api/internal/solver"
	"stem-solver/api/internal/store"
)

const (
	defaultLanguage = "English"
	solveDeadline   = 180 * time.Second
	maxReplyRunes   = 3900 // Telegram message cap with headroom
)

type Router struct {
	Bot    *tgbotapi.BotAPI
	Engine solver.Engine
	Prefs  *store.PrefsRepo
	Log    *logrus.Logger
}

func (r *Router) HandleUpdate(upd tgbotapi.Update) {
	if upd.CallbackQuery != nil {
		r.handleCallback(*upd.CallbackQuery)
		return
	}
	if upd.Message == nil {
		return
	}
	cid := upd.Message.Chat.ID

	if upd.Message.IsCommand() {
		r.handleCommand(upd)
		return
	}
	if len(upd.Message.Photo) > 0 {
		r.acceptPhoto(*upd.Message)
		return
	}
	if txt := strings.TrimSpace(upd.Message.Text); txt != "" {
		r.solveText(cid, txt)
	}
}

func (r *Router) handleCommand(upd tgbotapi.Update) {
	cid := upd.Message.Chat.ID
	switch upd.Message.Command() {
	case "start":
		r.send(cid, "Send me a math, physics or chemistry problem as text or a photo and I'll solve it step by step.\nCommands: /language <name>, /health")
	case "health":
		r.send(cid, "OK")
	case "language":
		arg := strings.TrimSpace(upd.Message.CommandArguments())
		if arg == "" {
			r.send(cid, "Current answer language: "+r.language(context.Background(), cid)+"\nUsage: /language English")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Prefs.SetLanguage(ctx, cid, arg); err != nil {
			r.Log.Errorf("set language chat=%d: %v", cid, err)
			r.send(cid, "Could not save the language, using it for this session only.")
		}
		r.send(cid, "Got it, answering in "+arg+" from now on.")
	default:
		r.send(cid, "Unknown command")
	}
}

func (r *Router) solveText(cid int64, problem string) {
	r.send(cid, "Working on it…")

	ctx, cancel := context.WithTimeout(context.Background(), solveDeadline)
	defer cancel()

	lang := r.language(ctx, cid)
	prompt := solver.SolvePrompt(problem, lang, false)
	text, err := r.Engine.Solve(ctx, prompt, nil)
	if err != nil {
		r.sendError(cid, err)
		return
	}

	rememberSolved(cid, &solvedEntry{Problem: problem, Solution: text})
	r.sendSolution(cid, text)
}

func (r *Router) handleCallback(cb tgbotapi.CallbackQuery) {
	_, _ = r.Bot.Request(tgbotapi.NewCallback(cb.ID, ""))
	if cb.Data != cbExplain || cb.Message == nil {
		return
	}
	cid := cb.Message.Chat.ID

	entry := recallSolved(cid)
	if entry == nil {
		r.send(cid, "Nothing to explain yet. Send me a problem first.")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), solveDeadline)
	defer cancel()

	prompt := solver.ExplainPrompt(entry.Problem, entry.Solution, r.language(ctx, cid))
	text, err := r.Engine.Explain(ctx, prompt)
	if err != nil {
		r.sendError(cid, err)
		return
	}
	r.send(cid, clip(text))
}

// language reads the stored preference; any store failure falls back to the
// default so the bot keeps answering.
func (r *Router) language(ctx context.Context, cid int64) string {
	lang, err := r.Prefs.Language(ctx, cid)
	if err != nil {
		if err != store.ErrNotFound {
			r.Log.Warnf("prefs lookup chat=%d: %v", cid, err)
		}
		return defaultLanguage
	}
	if strings.TrimSpace(lang) == "" {
		return defaultLanguage
	}
	return lang
}

func (r *Router) sendSolution(cid int64, text string) {
	msg := tgbotapi.NewMessage(cid, clip(text))
	msg.ReplyMarkup = makeExplainKeyboard()
	if _, err := r.Bot.Send(msg); err != nil {
		r.Log.Errorf("send solution chat=%d: %v", cid, err)
	}
}

func (r *Router) send(cid int64, text string) {
	if _, err := r.Bot.Send(tgbotapi.NewMessage(cid, text)); err != nil {
		r.Log.Errorf("send chat=%d: %v", cid, err)
	}
}

func (r *Router) sendError(cid int64, err error) {
	r.Log.Errorf("chat=%d: %v", cid, err)
	r.send(cid, "Something went wrong: "+err.Error())
}

func clip(s string) string {
	runes := []rune(s)
	if len(runes) <= maxReplyRunes {
		return s
	}
	return string(runes[:maxReplyRunes]) + "…"
}
