package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	gconfig "github.com/goliatone/go-config/config"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-print"
	"github.com/golang-jwt/jwt/v5"
	"github.com/uptrace/bun"

	"github.com/goliatone/jobboard/internal/auth"
	"github.com/goliatone/jobboard/internal/config"
	"github.com/goliatone/jobboard/internal/controller"
	"github.com/goliatone/jobboard/internal/database"
	"github.com/goliatone/jobboard/internal/repository"
	"github.com/goliatone/jobboard/internal/upload"
)

type App struct {
	config  *gconfig.Container[*config.BaseConfig]
	bunDB   *bun.DB
	repos   repository.Manager
	auther  *auth.Auther
	tokens  auth.TokenService
	resumes *upload.Store
	srv     *fiber.App
	logger  *glog.BaseLogger
}

func (a *App) Config() *config.BaseConfig {
	return a.config.Raw()
}

func (a *App) GetLogger(name string) glog.Logger {
	return a.logger.GetLogger(name)
}

func main() {

	lgr := glog.NewLogger(
		glog.WithLoggerTypePretty(),
		glog.WithLevel(glog.Trace),
		glog.WithName("jobboard"),
		glog.WithAddSource(false),
		glog.WithRichErrorHandler(errors.ToSlogAttributes),
	)

	cfg, err := gconfig.New(&config.BaseConfig{})
	if err != nil {
		panic(err)
	}

	ctx := context.Background()
	if err := cfg.Load(ctx); err != nil {
		panic(err)
	}

	fmt.Println("============")
	fmt.Println(print.MaybeSecureJSON(cfg.Raw()))
	fmt.Println("============")

	app := &App{
		config: cfg,
		logger: lgr,
	}

	if err := WithPersistence(ctx, app); err != nil {
		panic(err)
	}

	if err := WithHTTPServer(ctx, app); err != nil {
		panic(err)
	}

	addr := app.Config().GetServer().GetAddress()
	go func() {
		if err := app.srv.Listen(addr); err != nil {
			app.GetLogger("http").Error("server stopped", "error", err)
		}
	}()

	WaitExitSignal()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.srv.ShutdownWithContext(shutdownCtx); err != nil {
		app.GetLogger("http").Error("shutdown failed", "error", err)
	}
}

func WithPersistence(ctx context.Context, app *App) error {
	db, err := database.Connect(
		ctx,
		app.Config().GetPersistence(),
		app.GetLogger("persistence"),
	)
	if err != nil {
		return err
	}

	app.bunDB = db
	app.repos = repository.NewManager(db)

	return nil
}

func WithHTTPServer(_ context.Context, app *App) error {
	authCfg := app.Config().GetAuth()

	app.tokens = auth.NewTokenService(
		[]byte(authCfg.GetSigningKey()),
		authCfg.GetTokenExpiration(),
		authCfg.GetIssuer(),
		jwt.ClaimStrings(authCfg.GetAudience()),
		app.GetLogger("auth:jwt"),
	)

	app.auther = auth.NewAuthenticator(app.repos.Users(), app.tokens).
		WithLogger(app.GetLogger("auth"))

	uploads := app.Config().GetUploads()
	resumes, err := upload.NewStore(uploads.GetDir(), uploads.GetMaxBytes())
	if err != nil {
		return err
	}
	app.resumes = resumes

	app.srv = fiber.New(fiber.Config{
		AppName: "jobboard",
	})

	controller.RegisterRoutes(app.srv, controller.Deps{
		Repos:   app.repos,
		Auther:  app.auther,
		Tokens:  app.tokens,
		Resumes: app.resumes,
		Logger:  app.GetLogger("http"),
	})

	return nil
}

func WaitExitSignal() os.Signal {
	ch := make(chan os.Signal, 3)
	signal.Notify(ch,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	return <-ch
}
