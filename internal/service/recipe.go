package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/internal/metrics"
	"github.com/pageza/openai-cake/backend/internal/types"
)

const imagePromptTemplate = "Professional food photography of %s, appetizing, high quality, restaurant style"

var recipeMessages = []Message{
	{Role: "system", Content: "You are a helpful cooking assistant. Answer always in German."},
	{Role: "user", Content: "Erstelle mir ein Rezept für einen beliebigen Kuchen, den ich noch nicht kenne. "},
}

// RecipeService generates a cake recipe and illustrates it
type RecipeService struct {
	llm    ILLMService
	images IImageService
	log    *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(llm ILLMService, images IImageService, log *zap.Logger) *RecipeService {
	return &RecipeService{
		llm:    llm,
		images: images,
		log:    log.Named("recipe"),
	}
}

// GenerateRecipe asks the text model for a recipe, then replaces its image
// placeholder with a freshly generated photo. Nothing is returned unless both
// calls succeed.
func (s *RecipeService) GenerateRecipe(ctx context.Context) (recipe *types.Recipe, err error) {
	defer func() { metrics.IncRecipe(err) }()

	content, err := s.llm.GenerateStructured(ctx, recipeMessages, recipeResponseFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe: %w", err)
	}

	recipe, err = DecodeRecipe(content)
	if err != nil {
		return nil, err
	}
	s.log.Info("generated recipe", zap.String("title", recipe.Title))

	imageURL, err := s.images.GenerateImage(ctx, RecipeImageRequest(recipe.Title))
	if err != nil {
		return nil, fmt.Errorf("failed to generate recipe image: %w", err)
	}

	recipe.ImageURL = imageURL
	return recipe, nil
}

// DecodeRecipe parses the structured reply of the text model. Every schema
// field must be present and non-null.
func DecodeRecipe(content string) (*types.Recipe, error) {
	var raw struct {
		Response map[string]json.RawMessage `json:"response"`
	}
	if err := json.Unmarshal([]byte(content), &raw); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	if raw.Response == nil {
		return nil, errors.New("failed to decode recipe: missing response object")
	}
	for _, field := range recipeFields {
		value, ok := raw.Response[field]
		if !ok || bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("failed to decode recipe: missing field %q", field)
		}
	}

	var envelope types.RecipeEnvelope
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode recipe: %w", err)
	}
	return envelope.Response, nil
}

// BuildImagePrompt embeds the title verbatim in the photo prompt
func BuildImagePrompt(title string) string {
	return fmt.Sprintf(imagePromptTemplate, title)
}

// RecipeImageRequest is the single square photo requested for a recipe
func RecipeImageRequest(title string) ImageRequest {
	return ImageRequest{
		Prompt:  BuildImagePrompt(title),
		N:       1,
		Size:    "1024x1024",
		Quality: "standard",
		Style:   "natural",
	}
}
