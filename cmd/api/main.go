package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "lms-backend/internal/adapter/http"
	"lms-backend/internal/adapter/middleware"
	"lms-backend/internal/adapter/repository/mysql"
	"lms-backend/internal/config"
	"lms-backend/internal/identity"
	"lms-backend/internal/infrastructure/cache"
	"lms-backend/internal/infrastructure/db"
	"lms-backend/internal/notify"
	"lms-backend/internal/storage"
	appUC "lms-backend/internal/usecase/application"
	"lms-backend/internal/usecase/compliance"
	loanUC "lms-backend/internal/usecase/loan"
	notifUC "lms-backend/internal/usecase/notification"
	"lms-backend/internal/usecase/onboarding"
	"lms-backend/internal/usecase/reminder"
	taskUC "lms-backend/internal/usecase/task"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("zap: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	sugar := zlog.Sugar()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		sugar.Fatalw("open mysql", "err", err)
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		sugar.Fatalw("migrate", "err", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		sugar.Fatalw("open redis", "err", err)
	}
	defer func() { _ = rdb.Close() }()

	// repositories
	appRepo := mysql.NewApplicationRepository(gdb)
	clientRepo := mysql.NewClientRepository(gdb)
	loanRepo := mysql.NewLoanRepository(gdb)
	taskRepo := mysql.NewTaskRepository(gdb)
	notifRepo := mysql.NewNotificationRepository(gdb)
	roles := mysql.NewRoleResolver(gdb)
	auditSink := mysql.NewAuditSink(gdb, sugar)
	unit := mysql.NewGormUoW(gdb)

	notifSink := notify.NewSink(notifRepo, rdb, sugar)
	signer := storage.NewClient(cfg.StorageBaseURL, cfg.StorageServiceKey)
	inviter := identity.NewClient(cfg.AuthBaseURL, cfg.AuthServiceKey)

	// usecases
	applications := appUC.NewUsecase(appRepo, clientRepo, unit, roles, auditSink, notifSink, signer)
	loans := loanUC.NewUsecase(loanRepo, unit, roles, auditSink)
	tasks := taskUC.NewUsecase(taskRepo, appRepo, roles, auditSink)
	notifications := notifUC.NewUsecase(notifRepo)
	docCompliance := compliance.NewUsecase(appRepo, roles, auditSink)
	clients := onboarding.NewUsecase(clientRepo, roles, roles, inviter, auditSink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sweeper := reminder.NewSweeper(appRepo, loanRepo, taskRepo, notifRepo, notifSink, sugar)
	sweeper.Start(ctx, time.Duration(cfg.SweepIntervalSecs)*time.Second)

	// handlers
	h := httpadp.NewHandler()
	appH := httpadp.NewApplicationHandler(applications)
	loanH := httpadp.NewLoanHandler(loans)
	taskH := httpadp.NewTaskHandler(tasks)
	notifH := httpadp.NewNotificationHandler(notifications)
	compH := httpadp.NewComplianceHandler(docCompliance)
	clientH := httpadp.NewClientHandler(clients)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())

	e.GET("/health", h.Health)

	api := e.Group("/v1",
		middleware.AuthMiddleware([]byte(cfg.JWTSecret)),
		middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	api.POST("/applications", appH.CreateDraft)
	api.GET("/applications", appH.List)
	api.GET("/applications/:app_id", appH.Get)
	api.PATCH("/applications/:app_id", appH.UpdateDraft)
	api.POST("/applications/:app_id/submit", appH.Submit)
	api.POST("/applications/:app_id/status", appH.ChangeStatus)
	api.GET("/applications/:app_id/history", appH.History)
	api.GET("/applications/:app_id/notes", appH.ListNotes)
	api.POST("/applications/:app_id/documents/presign", appH.PresignUpload)
	api.POST("/applications/:app_id/documents", appH.ConfirmUpload)
	api.GET("/applications/:app_id/documents", appH.ListDocuments)
	api.GET("/applications/:app_id/compliance", compH.Evaluate)
	api.POST("/applications/:app_id/documents/:document_id/verify", compH.VerifyDocument)

	api.GET("/document-requirements", compH.ListRequirements)
	api.POST("/document-requirements", compH.CreateRequirement)

	api.POST("/clients", clientH.CreateAssisted)
	api.GET("/clients", clientH.List)
	api.POST("/clients/:client_id/invite", clientH.SendInvite)

	api.GET("/loans/:loan_id", loanH.Get)
	api.POST("/loans/:loan_id/disburse", loanH.Disburse)
	api.POST("/loans/:loan_id/repayments", loanH.RecordRepayment)

	api.GET("/reports/portfolio", loanH.PortfolioSummary)
	api.GET("/reports/arrears", loanH.Arrears)

	api.GET("/tasks", taskH.List)
	api.POST("/tasks", taskH.Create)
	api.PATCH("/tasks/:task_id", taskH.Update)

	api.GET("/notifications", notifH.ListMine)
	api.POST("/notifications/:notification_id/read", notifH.MarkRead)

	addr := ":" + cfg.AppPort
	sugar.Infow("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		sugar.Fatalw("server stopped", "err", err)
	}
}
