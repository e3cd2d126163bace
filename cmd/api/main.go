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
	"github.com/jhoicas/Polizas-api/internal/application/auth"
	"github.com/jhoicas/Polizas-api/internal/application/notify"
	"github.com/jhoicas/Polizas-api/internal/application/usecase"
	"github.com/jhoicas/Polizas-api/internal/infrastructure/mail"
	infrapdf "github.com/jhoicas/Polizas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Polizas-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Polizas-api/internal/infrastructure/whatsapp"
	httpRouter "github.com/jhoicas/Polizas-api/internal/interfaces/http"
	"github.com/jhoicas/Polizas-api/internal/jobs"
	"github.com/jhoicas/Polizas-api/pkg/config"
	"github.com/jhoicas/Polizas-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	policyRepo := postgres.NewPolicyRepository(pool)
	contactRepo := postgres.NewContactMessageRepository(pool)

	// Canales de notificación
	emailSender := mail.NewGomailSender(cfg.SMTP)
	var whatsappSender notify.WhatsAppSender
	if cfg.WhatsApp.Enabled {
		whatsappSender = whatsapp.NewClient(cfg.WhatsApp)
	}
	notifyCfg := notify.Config{
		AdminEmail:      cfg.Notify.AdminEmail,
		AdminPhone:      cfg.Notify.AdminPhone,
		WhatsAppEnabled: cfg.WhatsApp.Enabled,
		FrontendURL:     cfg.Notify.FrontendURL,
	}

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, emailSender, cfg.Notify.FrontendURL, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	userUC := usecase.NewUserUseCase(userRepo)
	companyUC := usecase.NewCompanyUseCase(companyRepo)
	policyUC := usecase.NewPolicyUseCase(policyRepo, userRepo, companyRepo, pdfGenerator)
	contactUC := usecase.NewContactUseCase(contactRepo, userRepo, companyRepo, emailSender, notifyCfg, log)

	expiryScanUC := notify.NewExpiryScanUseCase(
		policyRepo, userRepo, companyRepo,
		emailSender, whatsappSender,
		notifyCfg, cfg.Notify.Window, log.Component("expiry-scan"),
	)

	// Job diario de vencimientos
	jobs.StartExpiryScanJob(ctx, expiryScanUC, cfg.Notify.StartupDelay, cfg.Notify.ScanInterval, log.Component("expiry-job"))

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
		Title:    "Polizas API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		UserUC:     userUC,
		CompanyUC:  companyUC,
		PolicyUC:   policyUC,
		ContactUC:  contactUC,
		ExpiryScan: expiryScanUC,
		JWTSecret:  cfg.JWT.Secret,
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
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
