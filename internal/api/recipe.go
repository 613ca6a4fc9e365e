package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/internal/middleware"
	"github.com/pageza/openai-cake/backend/internal/service"
	"github.com/pageza/openai-cake/backend/internal/types"
)

// RecipeHandler serves generated recipes
type RecipeHandler struct {
	recipeService service.IRecipeService
	log           *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(recipeService service.IRecipeService, log *zap.Logger) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		log:           log.Named("api"),
	}
}

// RegisterRoutes registers the recipe routes. Extra middleware, such as a
// rate limiter, runs before the handler.
func (h *RecipeHandler) RegisterRoutes(router gin.IRoutes, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.GetRecipe)
	router.GET("/get-recipe", handlers...)
}

// GetRecipe generates a recipe with a matching photo. Any failure yields a
// 500 with only an error message; partial recipes are never returned.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipeService.GenerateRecipe(c.Request.Context())
	if err != nil {
		h.log.Error("recipe generation failed",
			zap.Error(err),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
		)
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.RecipeEnvelope{Response: recipe})
}
