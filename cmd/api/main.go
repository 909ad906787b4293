package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appaid "github.com/jpvargas/asistencia-api/internal/application/aid"
	"github.com/jpvargas/asistencia-api/internal/application/audit"
	"github.com/jpvargas/asistencia-api/internal/application/auth"
	"github.com/jpvargas/asistencia-api/internal/application/document"
	appreport "github.com/jpvargas/asistencia-api/internal/application/report"
	"github.com/jpvargas/asistencia-api/internal/application/usecase"
	"github.com/jpvargas/asistencia-api/internal/infrastructure/antivirus"
	"github.com/jpvargas/asistencia-api/internal/infrastructure/objectstore"
	infrapdf "github.com/jpvargas/asistencia-api/internal/infrastructure/pdf"
	"github.com/jpvargas/asistencia-api/internal/infrastructure/postgres"
	infrareport "github.com/jpvargas/asistencia-api/internal/infrastructure/report"
	httpRouter "github.com/jpvargas/asistencia-api/internal/interfaces/http"
	"github.com/jpvargas/asistencia-api/pkg/config"
	"github.com/jpvargas/asistencia-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	orgRepo := postgres.NewOrganizationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	articleRepo := postgres.NewArticleRepository(pool)
	familyRepo := postgres.NewFamilyRepository(pool)
	needRepo := postgres.NewNeedRepository(pool)
	aidRepo := postgres.NewAidRepository(pool)
	visitNoteRepo := postgres.NewVisitNoteRepository(pool)
	interventionRepo := postgres.NewInterventionRepository(pool)
	documentRepo := postgres.NewDocumentRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	analyticsRepo := postgres.NewAnalyticsRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	auditor := audit.NewRecorder(auditRepo, log)

	authUC := auth.NewAuthUseCase(userRepo, orgRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	organizationUC := usecase.NewOrganizationUseCase(orgRepo)
	userUC := usecase.NewUserUseCase(userRepo, auditor)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, auditor)
	articleUC := usecase.NewArticleUseCase(articleRepo, categoryRepo, auditor)
	familyUC := usecase.NewFamilyUseCase(familyRepo, auditor)
	needUC := usecase.NewNeedUseCase(needRepo, familyRepo, auditor)
	visitNoteUC := usecase.NewVisitNoteUseCase(visitNoteRepo, familyRepo, auditor)
	interventionUC := usecase.NewInterventionUseCase(interventionRepo, familyRepo, userRepo, auditor)
	dashboardUC := usecase.NewDashboardUseCase(analyticsRepo)
	auditUC := audit.NewListUseCase(auditRepo)

	createAidUC := appaid.NewCreateAidUseCase(txRunner, familyRepo, articleRepo, auditor)
	aidQueryUC := appaid.NewQueryUseCase(aidRepo, auditor)
	receiptGenerator := infrapdf.NewMarotoReceiptGenerator()
	aidReceiptUC := appaid.NewReceiptUseCase(aidRepo, orgRepo, familyRepo, categoryRepo, userRepo, receiptGenerator)

	// Object storage para documentos de familias (MinIO o S3 compatible)
	store, err := objectstore.NewMinioStore(
		cfg.Storage.Endpoint,
		cfg.Storage.AccessKey,
		cfg.Storage.SecretKey,
		cfg.Storage.Bucket,
		cfg.Storage.UseSSL,
	)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión al object storage")
	}

	// Escáner ClamAV — solo si está habilitado; sin scanner la subida
	// acepta o rechaza según FailClosed.
	var scanner document.Scanner
	if cfg.Antivirus.Enabled {
		scanner = antivirus.NewClamdScanner(cfg.Antivirus.Addr(), cfg.Antivirus.Timeout())
		log.Info().Str("addr", cfg.Antivirus.Addr()).Msg("antivirus habilitado")
	}
	documentUC := document.NewUseCase(
		documentRepo, familyRepo, store, scanner,
		cfg.Antivirus.FailClosed, cfg.Storage.URLExpiry(), auditor, log,
	)

	reportUC := appreport.NewUseCase(aidRepo, familyRepo, categoryRepo, orgRepo, infrareport.NewXMLExporter())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Asistencia Social API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		OrganizationUC: organizationUC,
		UserUC:         userUC,
		CategoryUC:     categoryUC,
		ArticleUC:      articleUC,
		FamilyUC:       familyUC,
		NeedUC:         needUC,
		CreateAid:      createAidUC,
		AidQuery:       aidQueryUC,
		AidReceipt:     aidReceiptUC,
		VisitNoteUC:    visitNoteUC,
		InterventionUC: interventionUC,
		DocumentUC:     documentUC,
		ReportUC:       reportUC,
		DashboardUC:    dashboardUC,
		AuditUC:        auditUC,
		JWTSecret:      cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
