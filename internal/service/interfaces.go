package service

import (
	"context"

	"github.com/pageza/openai-cake/backend/config"
	"github.com/pageza/openai-cake/backend/internal/types"
)

// ILLMService defines the chat completion operations
type ILLMService interface {
	GenerateStructured(ctx context.Context, messages []Message, format *ResponseFormat) (string, error)
	Complete(ctx context.Context, messages []Message) (*ChatMessage, error)
}

// IImageService defines the image generation operations
type IImageService interface {
	GenerateImage(ctx context.Context, req ImageRequest) (string, error)
}

// IRecipeService defines the recipe generation operations
type IRecipeService interface {
	GenerateRecipe(ctx context.Context) (*types.Recipe, error)
}

// ImageStore persists generated images and returns a public URL
type ImageStore interface {
	PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

var (
	_ ILLMService    = (*LLMService)(nil)
	_ IImageService  = (*ImageService)(nil)
	_ IRecipeService = (*RecipeService)(nil)
	_ ImageStore     = (*config.S3Config)(nil)
)
