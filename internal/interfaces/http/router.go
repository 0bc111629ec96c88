package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/restaurant-inventory/internal/application/auth"
	"github.com/tu-usuario/restaurant-inventory/internal/application/inventory"
	"github.com/tu-usuario/restaurant-inventory/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngredientUC *inventory.IngredientUseCase
	RecipeUC     *inventory.RecipeUseCase
	ValidationUC *inventory.ValidationUseCase
	LowStockUC   *inventory.LowStockUseCase
	AuthUC       *auth.AuthUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api/v1")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Roles: admin todo; bodeguero opera stock; chef consulta y gestiona recetas.
	stockRoles := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)
	recipeRoles := RequireRole(entity.RoleAdmin, entity.RoleChef)

	// Ingredients (protegido)
	ingredients := protected.Group("/ingredients")
	ingredientHandler := NewIngredientHandler(deps.IngredientUC, deps.LowStockUC)
	ingredients.Post("/", stockRoles, ingredientHandler.Create)
	ingredients.Get("/", ingredientHandler.List)
	ingredients.Get("/low-stock", ingredientHandler.LowStockReport)
	ingredients.Get("/:id", ingredientHandler.GetByID)
	ingredients.Put("/:id", stockRoles, ingredientHandler.Update)
	ingredients.Delete("/:id", RequireRole(entity.RoleAdmin), ingredientHandler.Delete)
	ingredients.Post("/:id/stock/add", stockRoles, ingredientHandler.AddStock)
	ingredients.Post("/:id/stock/remove", stockRoles, ingredientHandler.RemoveStock)
	ingredients.Put("/:id/stock", stockRoles, ingredientHandler.SetStock)
	ingredients.Put("/:id/minimum-stock", stockRoles, ingredientHandler.UpdateMinimum)

	// Recipes (protegido)
	recipes := protected.Group("/recipes")
	recipeHandler := NewRecipeHandler(deps.RecipeUC)
	recipes.Post("/", recipeRoles, recipeHandler.Create)
	recipes.Get("/", recipeHandler.List)
	recipes.Get("/:id", recipeHandler.GetByID)
	recipes.Put("/:id", recipeRoles, recipeHandler.Update)
	recipes.Delete("/:id", RequireRole(entity.RoleAdmin), recipeHandler.Delete)

	// Validations (protegido, solo lectura)
	validations := protected.Group("/validations")
	validationHandler := NewValidationHandler(deps.ValidationUC)
	validations.Post("/recipes", validationHandler.ValidateRecipes)
	validations.Post("/items", validationHandler.ValidateItems)
}
