package config

import (
	"io"
	"os"
	"pantry-manager/internal/api/handlers"
	"pantry-manager/internal/api/routes"
	"pantry-manager/internal/middleware"
	"pantry-manager/internal/utils"
	"pantry-manager/internal/utils/mailing"
	"pantry-manager/internal/utils/storage"
	"pantry-manager/pkg/generator"
	"pantry-manager/pkg/jwt"
	"pantry-manager/pkg/pantry"
	"pantry-manager/pkg/recipe"
	"pantry-manager/pkg/reconcile"
	"pantry-manager/pkg/shopping"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
		BodyLimit:         bodyLimit(),
	})
	middlewares := middleware.NewMiddleware(utils.GetConfig("OWNER_MODE"), utils.GetConfig("PLACEHOLDER_OWNER_ID"))
	validator := utils.Validate

	// setting up logging and limiter
	out, err := accessLogOutput(utils.GetConfig("LOG_FILE"))
	if err != nil {
		return nil, err
	}
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     out,
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        rateLimitMax(utils.GetConfig("RATE_LIMIT_MAX")),
		Expiration: rateLimitWindow(utils.GetConfig("RATE_LIMIT_WINDOW")),
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()

	// Repository
	pantryRepository := pantry.NewPantryRepository(db)
	shoppingRepository := shopping.NewShoppingRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	pantryService := pantry.NewPantryService(pantryRepository)
	shoppingService := shopping.NewShoppingService(shoppingRepository, mailer)
	recipeService := recipe.NewRecipeService(recipeRepository, s3)
	reconcileService := reconcile.NewReconcileService(
		recipeService,
		pantryService,
		shoppingService,
		shoppingRepository,
		reconcile.PolicyFromConfig(utils.GetConfig("RECONCILE_SUM_DUPLICATES")),
	)
	generatorService := generator.NewGeneratorService(
		generator.OpenAICompleterFactory(utils.GetConfig("OPENAI_MODEL"), utils.GetConfig("OPENAI_BASE_URL")),
		recipeRepository,
		utils.GetConfig("OPENAI_API_KEY"),
	)

	// Handler
	pantryHandler := handlers.NewPantryHandler(pantryService, validator)
	shoppingHandler := handlers.NewShoppingHandler(shoppingService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, reconcileService, validator)
	generateHandler := handlers.NewGenerateHandler(generatorService)

	// routes
	routesConfig := routes.Config{
		App:             app,
		PantryHandler:   pantryHandler,
		ShoppingHandler: shoppingHandler,
		RecipeHandler:   recipeHandler,
		GenerateHandler: generateHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}

// multipartOverhead leaves room for form boundaries and fields around an
// upload of the maximum size.
const multipartOverhead = 1 << 20

func bodyLimit() int {
	return storage.MaxUploadSize + multipartOverhead
}

func accessLogOutput(path string) (io.Writer, error) {
	if path == "" {
		return os.Stdout, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		log.Errorf("error creating logs directory: %v", err)
		return nil, err
	}
	file, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		log.Errorf("error opening log file: %v", err)
		return nil, err
	}
	return file, nil
}

func rateLimitMax(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		log.Warnf("invalid RATE_LIMIT_MAX %q, using 20", raw)
		return 20
	}
	return n
}

func rateLimitWindow(raw string) time.Duration {
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Warnf("invalid RATE_LIMIT_WINDOW %q, using 1s", raw)
		return time.Second
	}
	return d
}
