package telegram

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"stem-solver/api/internal/solver"
	"stem-solver/api/internal/util"
)

// acceptPhoto downloads the largest rendition and solves it as a multimodal
// problem.
func (r *Router) acceptPhoto(msg tgbotapi.Message) {
	cid := msg.Chat.ID
	ph := msg.Photo[len(msg.Photo)-1]

	file, err := r.Bot.GetFile(tgbotapi.FileConfig{FileID: ph.FileID})
	if err != nil {
		r.sendError(cid, err)
		return
	}
	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s", r.Bot.Token, file.FilePath)
	imgBytes, err := download(url)
	if err != nil {
		r.sendError(cid, err)
		return
	}

	r.send(cid, "Got the photo, working on it…")

	ctx, cancel := context.WithTimeout(context.Background(), solveDeadline)
	defer cancel()

	lang := r.language(ctx, cid)
	prompt := solver.SolvePrompt("", lang, true)
	img := &solver.Image{
		MIME: util.PickMIME("", "", imgBytes),
		Data: imgBytes,
	}
	text, err := r.Engine.Solve(ctx, prompt, img)
	if err != nil {
		r.sendError(cid, err)
		return
	}

	rememberSolved(cid, &solvedEntry{
		Problem:  "the problem shown in the photo",
		Solution: text,
	})
	r.sendSolution(cid, text)
}

func download(url string) ([]byte, error) {
	resp, err := httpClient().Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func httpClient() *http.Client {
	return &http.Client{Timeout: 60 * time.Second}
}
