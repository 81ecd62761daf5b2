package main

import (
	"context"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"stem-solver/api/internal/config"
	"stem-solver/api/internal/handle"
	"stem-solver/api/internal/httpserver"
	"stem-solver/api/internal/logging"
	"stem-solver/api/internal/solver/gemini"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.InitLogger(logrus.InfoLevel)
	log := logging.GetLogger()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

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

	h := handle.New(eng, log)
	srv := httpserver.New(cfg.Server, h, log)

	go func() {
		log.Infof("server started on %s (model %s)", srv.Addr, cfg.Gemini.Model)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen error: %v", err)
		}
	}()

	// Local convenience: pop the frontend open unless deployed.
	if !cfg.Server.NoBrowser {
		time.AfterFunc(1500*time.Millisecond, func() {
			if err := openBrowser("http://localhost:" + cfg.Server.Port); err != nil {
				log.Warnf("could not open browser: %v", err)
			}
		})
	}

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	log.Infoln("server stopped")
}

func openBrowser(url string) error {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", url).Start()
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	default:
		return exec.Command("xdg-open", url).Start()
	}
}
