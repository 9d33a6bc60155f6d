package main

import (
	"context"
	"log"
	"net/http"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/joho/godotenv"
	"golang.org/x/time/rate"

	"github.com/rexlx/scribble/internal/api"
	"github.com/rexlx/scribble/internal/config"
	"github.com/rexlx/scribble/internal/logging"
	"github.com/rexlx/scribble/internal/session"
)

// appEnv is the composition root: everything the screens need, constructed
// once in main and passed down explicitly.
type appEnv struct {
	cfg      *config.Config
	log      *logging.Logger
	store    *session.Store
	auth     *api.AuthService
	posts    *api.PostService
	comments *api.CommentService
}

// ctx bounds one API round trip.
func (e *appEnv) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), e.cfg.RequestTimeout)
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger, err := logging.New(cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to open log: %v", err)
	}
	defer logger.Close()

	store, err := session.NewStore(cfg.StateDir)
	if err != nil {
		log.Fatalf("Failed to init session store: %v", err)
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.RequestsPerSec)
	}

	a := app.New()
	window = a.NewWindow("Scribble")
	window.Resize(fyne.NewSize(900, 700))

	// sessionExpired is filled in below once the screens exist. The
	// gateway clears the session itself; the redirect is this extra hook.
	var sessionExpired func()

	client := api.NewClient(api.ClientConfig{
		BaseURL:    cfg.APIBaseURL,
		HTTPClient: &http.Client{},
		Tokens:     store,
		OnAuthFailure: func() {
			store.Clear()
			if sessionExpired != nil {
				sessionExpired()
			}
		},
		Limiter: limiter,
		Log:     logger,
	})

	env := &appEnv{
		cfg:      cfg,
		log:      logger,
		store:    store,
		auth:     api.NewAuthService(client, store),
		posts:    api.NewPostService(client),
		comments: api.NewCommentService(client),
	}

	var showLogin, showFeed func()
	showLogin = func() {
		window.SetContent(MakeAuthScreen(env, func() { showFeed() }))
	}
	showFeed = func() {
		window.SetContent(MakeFeedScreen(env, showLogin))
	}
	sessionExpired = showLogin

	// A persisted session skips the login screen.
	if env.auth.CurrentUser() != nil {
		showFeed()
	} else {
		showLogin()
	}

	window.ShowAndRun()
}
