package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/bitesoft/docgen/internal/config"
	"github.com/bitesoft/docgen/internal/domain/audit"
	"github.com/bitesoft/docgen/internal/domain/cdt"
	"github.com/bitesoft/docgen/internal/domain/confirmation"
	"github.com/bitesoft/docgen/internal/domain/generation"
	"github.com/bitesoft/docgen/internal/platform/auth"
	"github.com/bitesoft/docgen/internal/platform/db"
	"github.com/bitesoft/docgen/internal/platform/llm"
	"github.com/bitesoft/docgen/internal/platform/middleware"
	"github.com/bitesoft/docgen/internal/platform/phi"
)

const version = "1.0.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "docgen-server",
		Short: "BiteSoft document generation API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the document generation server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, cleanup, err := connect()
			if err != nil {
				return err
			}
			defer cleanup()

			count, err := db.NewMigrator(pool, dir).Up(context.Background())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			pool, cleanup, err := connect()
			if err != nil {
				return err
			}
			defer cleanup()

			statuses, err := db.NewMigrator(pool, dir).Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load the canonical CDT codes and selection rules",
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, cleanup, err := connect()
			if err != nil {
				return err
			}
			defer cleanup()

			svc := cdt.NewService(cdt.NewRepoPG(pool))
			codes, rules, err := svc.Seed(context.Background())
			if err != nil {
				return fmt.Errorf("seeding failed: %w", err)
			}
			fmt.Printf("Seeded %d code(s) and %d rule(s).\n", codes, rules)
			return nil
		},
	}
}

func connect() (*pgxpool.Pool, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	p, err := db.NewPool(context.Background(), cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, nil, err
	}
	return p, p.Close, nil
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	llmTimeout := time.Duration(cfg.LLMTimeoutSeconds) * time.Second

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.BodyLimit("1M"))

	redactor := &phi.Redactor{
		StoreFullData: cfg.StoreFullAuditData,
		RedactFields:  cfg.RedactPHIFields,
		Fields:        cfg.PHIFieldsToRedact,
	}

	auditSvc := audit.NewService(audit.NewRepoPG(pool), redactor)
	cdtSvc := cdt.NewService(cdt.NewRepoPG(pool))
	confirmSvc := confirmation.NewService(confirmation.NewRepoPG(pool), auditSvc, redactor)

	llmClient := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, llmTimeout)
	genSvc := generation.NewService(llmClient, cdtSvc, auditSvc, generation.Seeds{
		TreatmentSummary: cfg.TreatmentSummarySeed,
		InsuranceSummary: cfg.InsuranceSummarySeed,
		ProgressNotes:    cfg.ProgressNotesSeed,
	}, logger)

	genHandler := generation.NewHandler(genSvc, version)
	confirmHandler := confirmation.NewHandler(confirmSvc)
	auditHandler := audit.NewHandler(auditSvc)

	e.GET("/health", genHandler.Health)
	e.GET("/health/db", db.HealthHandler(pool))

	apiV1 := e.Group("/api/v1")
	apiV1.Use(auth.Middleware(auth.Config{
		EnableBypass: cfg.EnableAuthBypass,
		PublicKeyPEM: cfg.JWTPublicKey,
		SecretKey:    cfg.SecretKey,
		Issuer:       cfg.JWTIssuer,
		Audience:     cfg.JWTAudience,
	}))
	// The model call carries its own deadline; the request budget adds
	// headroom for selection and the audit write.
	apiV1.Use(middleware.RequestTimeout(llmTimeout + 15*time.Second))

	genHandler.RegisterRoutes(apiV1)
	confirmHandler.RegisterRoutes(apiV1)
	auditHandler.RegisterRoutes(apiV1)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}

// errorHandler renders errors as {"detail": ...} to match the portal's
// client expectations.
func errorHandler(logger zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code := http.StatusInternalServerError
		detail := interface{}(http.StatusText(code))
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			detail = he.Message
		}
		if code >= http.StatusInternalServerError {
			logger.Error().Err(err).Str("path", c.Request().URL.Path).Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, map[string]interface{}{"detail": detail})
	}
}
