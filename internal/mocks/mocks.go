package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/pageza/openai-cake/backend/internal/service"
	"github.com/pageza/openai-cake/backend/internal/types"
)

// MockLLMService is a mock implementation of the LLM service
type MockLLMService struct {
	mock.Mock
}

// GenerateStructured mocks the GenerateStructured method
func (m *MockLLMService) GenerateStructured(ctx context.Context, messages []service.Message, format *service.ResponseFormat) (string, error) {
	args := m.Called(ctx, messages, format)
	return args.String(0), args.Error(1)
}

// Complete mocks the Complete method
func (m *MockLLMService) Complete(ctx context.Context, messages []service.Message) (*service.ChatMessage, error) {
	args := m.Called(ctx, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ChatMessage), args.Error(1)
}

// MockImageService is a mock implementation of the image service
type MockImageService struct {
	mock.Mock
}

// GenerateImage mocks the GenerateImage method
func (m *MockImageService) GenerateImage(ctx context.Context, req service.ImageRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockRecipeService is a mock implementation of the recipe service
type MockRecipeService struct {
	mock.Mock
}

// GenerateRecipe mocks the GenerateRecipe method
func (m *MockRecipeService) GenerateRecipe(ctx context.Context) (*types.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*types.Recipe), args.Error(1)
}

// MockImageStore is a mock implementation of an image store
type MockImageStore struct {
	mock.Mock
}

// PutImage mocks the PutImage method
func (m *MockImageStore) PutImage(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	args := m.Called(ctx, key, data, contentType)
	return args.String(0), args.Error(1)
}
