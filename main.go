package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/snacktrackhq/snacktrack/internal/auth"
	"github.com/snacktrackhq/snacktrack/internal/events"
	"github.com/snacktrackhq/snacktrack/internal/menu"
	"github.com/snacktrackhq/snacktrack/internal/mongo"
	"github.com/snacktrackhq/snacktrack/internal/notify"
	"github.com/snacktrackhq/snacktrack/internal/order"
	"github.com/snacktrackhq/snacktrack/internal/report"
)

const (
	appNamespace = "SNACKTRACK"
	appName      = "snacktrack"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	seedCtx, cancelSeeds := context.WithCancel(ctx)
	defer cancelSeeds()

	tzName := config.GetStringOrDef("app.timezone", "Asia/Kolkata")
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Fatalf("%s(%s) cannot load timezone %s: %v", appName, appVersion, tzName, err)
	}

	baseRepo := mongo.NewBaseRepo(config, logger)
	err = baseRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start base repository: %v", appName, appVersion, err)
	}

	db := baseRepo.GetDatabase()
	if db == nil {
		log.Fatalf("%s(%s) cannot initialize repository database: %v", appName, appVersion, errors.New("repository database is nil"))
	}

	userRepo := mongo.NewUserRepo(db)
	snackRepo := mongo.NewSnackRepo(db)
	orderRepo := mongo.NewOrderRepo(db)
	counterRepo := mongo.NewCounterRepo(db)

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	pub, err := events.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return pub.Close()
		},
	}

	authMW := auth.NewMiddleware(userRepo, config, logger)

	authHandler := auth.NewHandler(userRepo, config, logger)
	menuHandler := menu.NewHandler(snackRepo, authMW, config, logger)
	reportHandler := report.NewHandler(orderRepo, authMW, loc, config, logger)

	numberer := order.NewDailyNumberer(counterRepo, loc)

	orderHandler := order.NewHandler(order.HandlerDeps{
		OrderRepo: orderRepo,
		UserRepo:  userRepo,
		Numberer:  numberer,
		Catalog:   menu.NewCatalog(snackRepo),
		Publisher: pub,
		AuthMW:    authMW,
		Location:  loc,
	}, config, logger)

	// Seed the owner account and the default snack catalog on boot.
	seedHooks := apt.LifecycleHooks{
		OnStart: func(ctx context.Context) error {
			if err := auth.SeedingFunc(seedCtx, userRepo, db, config, logger)(ctx); err != nil {
				return err
			}
			return menu.SeedingFunc(seedCtx, snackRepo, db, logger)(ctx)
		},
		OnStop: func(context.Context) error {
			cancelSeeds()
			return nil
		},
	}

	demoEnabled, _ := config.GetString("seeding.demo")
	var demoSeedHooks apt.LifecycleHooks
	if demoEnabled == "true" {
		logger.Info("Demo seeding enabled")
		demoSeedHooks = apt.LifecycleHooks{
			OnStart: order.DemoSeedingFunc(seedCtx, orderRepo, numberer, db, logger),
		}
	}

	// End-of-day Telegram digest.
	telegramToken, _ := config.GetString("telegram.bot.token")
	telegramChatID, _ := config.GetString("telegram.chat.id")
	deliverer := notify.NewTelegram(telegramToken, telegramChatID, logger)

	summaryJob := report.NewSummaryJob(orderRepo, deliverer, loc, logger)

	scheduler := notify.NewScheduler(loc, logger)
	schedule := config.GetStringOrDef("summary.schedule", notify.DefaultSummarySchedule)
	if err := scheduler.Add(schedule, summaryJob.Run); err != nil {
		log.Fatalf("%s(%s) cannot schedule daily summary: %v", appName, appVersion, err)
	}

	schedulerLifecycle := apt.LifecycleHooks{
		OnStart: scheduler.Start,
		OnStop:  scheduler.Stop,
	}

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: false, // Browser-facing API
	})

	lifecycles := []interface{}{
		apt.LifecycleHooks{OnStop: baseRepo.Stop},
		publisherLifecycle,
		seedHooks,
		schedulerLifecycle,
	}
	if demoEnabled == "true" {
		lifecycles = append(lifecycles, demoSeedHooks)
	}

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port", authHandler, menuHandler, orderHandler, reportHandler),
		apt.WithLifecycle(lifecycles...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	err = ms.Run(ctx)
	if err != nil {
		_ = baseRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}
