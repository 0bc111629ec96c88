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
	"github.com/tu-usuario/restaurant-inventory/internal/application/auth"
	"github.com/tu-usuario/restaurant-inventory/internal/application/inventory"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/repository"
	infrakafka "github.com/tu-usuario/restaurant-inventory/internal/infrastructure/kafka"
	"github.com/tu-usuario/restaurant-inventory/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/restaurant-inventory/internal/interfaces/http"
	"github.com/tu-usuario/restaurant-inventory/pkg/config"
	"github.com/tu-usuario/restaurant-inventory/pkg/logger"
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

	ingredientRepo := postgres.NewIngredientRepository(pool)
	recipeRepo := postgres.NewRecipeRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Publicador de eventos: sin brokers configurados la publicación queda
	// deshabilitada y los casos de uso operan sin publicador.
	var publisher repository.EventPublisher
	if cfg.Kafka.Enabled() {
		kafkaPublisher := infrakafka.NewPublisher(cfg.Kafka, log)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		log.Info().
			Strs("brokers", cfg.Kafka.BrokerList()).
			Str("topic", cfg.Kafka.Topic).
			Msg("publicación de eventos habilitada")
	} else {
		log.Warn().Msg("KAFKA_BOOTSTRAP_SERVERS vacío: publicación de eventos deshabilitada")
	}

	ingredientUC := inventory.NewIngredientUseCase(txRunner, ingredientRepo, publisher, log)
	recipeUC := inventory.NewRecipeUseCase(recipeRepo, ingredientRepo, publisher, log)
	validationUC := inventory.NewValidationUseCase(recipeRepo, ingredientRepo, publisher, log)
	lowStockUC := inventory.NewLowStockUseCase(ingredientRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Restaurant Inventory API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngredientUC: ingredientUC,
		RecipeUC:     recipeUC,
		ValidationUC: validationUC,
		LowStockUC:   lowStockUC,
		AuthUC:       authUC,
		JWTSecret:    cfg.JWT.Secret,
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
