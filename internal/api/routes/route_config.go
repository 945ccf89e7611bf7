package routes

import (
	"pantry-manager/internal/api/handlers"
	"pantry-manager/internal/middleware"
	"pantry-manager/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	App             *fiber.App
	PantryHandler   handlers.PantryHandler
	ShoppingHandler handlers.ShoppingHandler
	RecipeHandler   handlers.RecipeHandler
	GenerateHandler handlers.GenerateHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.GuestRoute()
	c.Functions()
	c.PantryItems()
	c.ShoppingList()
	c.Recipes()
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}

// Functions hosts the edge-function style endpoints. They carry no session;
// the caller supplies its own API key or the server default is used.
func (c *Config) Functions() {
	functions := c.App.Group("/api/v1/functions")
	functions.Post("/generate-recipe", c.GenerateHandler.GenerateRecipe)
}

func (c *Config) PantryItems() {
	pantryItems := c.App.Group("/api/v1/pantry-items", c.Middleware.AuthMiddleware(c.JWTService))
	pantryItems.Post("", c.PantryHandler.AddPantryItem)
	pantryItems.Get("", c.PantryHandler.GetPantryItems)
	pantryItems.Get("/:id", c.PantryHandler.GetPantryItemDetails)
	pantryItems.Put("/:id", c.PantryHandler.UpdatePantryItem)
	pantryItems.Delete("/:id", c.PantryHandler.DeletePantryItem)
}

func (c *Config) ShoppingList() {
	shopping := c.App.Group("/api/v1/shopping-list", c.Middleware.AuthMiddleware(c.JWTService))
	shopping.Get("", c.ShoppingHandler.GetShoppingItems)
	shopping.Post("", c.ShoppingHandler.AddShoppingItem)
	shopping.Post("/share", c.ShoppingHandler.ShareShoppingList)
	shopping.Put("/:id", c.ShoppingHandler.UpdateShoppingItem)
	shopping.Patch("/:id/toggle", c.ShoppingHandler.ToggleShoppingItem)
	shopping.Delete("/:id", c.ShoppingHandler.DeleteShoppingItem)
}

func (c *Config) Recipes() {
	recipes := c.App.Group("/api/v1/recipes", c.Middleware.AuthMiddleware(c.JWTService))
	recipes.Get("", c.RecipeHandler.GetRecipes)
	recipes.Post("", c.RecipeHandler.CreateRecipe)
	recipes.Post("/images", c.RecipeHandler.UploadRecipeImage)
	recipes.Get("/history", c.RecipeHandler.GetRecipeHistory)

	recipes.Get("/:id", c.RecipeHandler.GetRecipeDetail)
	recipes.Put("/:id", c.RecipeHandler.UpdateRecipe)
	recipes.Delete("/:id", c.RecipeHandler.DeleteRecipe)

	// cooking flow
	recipes.Post("/:id/check", c.RecipeHandler.CheckIngredients)
	recipes.Post("/:id/shortfalls", c.RecipeHandler.AddShortfalls)
	recipes.Post("/:id/favorite", c.RecipeHandler.ToggleFavorite)
	recipes.Post("/:id/cooked", c.RecipeHandler.MarkAsCooked)

	recipes.Get("/:id/notes", c.RecipeHandler.GetNotes)
	recipes.Post("/:id/notes", c.RecipeHandler.AddNote)
	recipes.Delete("/:id/notes/:noteId", c.RecipeHandler.DeleteNote)
}
