package main

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/openai-cake/backend/internal/mocks"
	"github.com/pageza/openai-cake/backend/internal/service"
)

func TestRun(t *testing.T) {
	llm := new(mocks.MockLLMService)
	expected := []service.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: defaultPrompt},
	}
	llm.On("Complete", mock.Anything, expected).
		Return(&service.ChatMessage{Role: "assistant", Content: "Zutaten: 1 kg Äpfel"}, nil).Once()

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), llm, defaultPrompt, &out))

	assert.Equal(t, "Zutaten: 1 kg Äpfel\n", out.String())
	llm.AssertExpectations(t)
}

func TestRunError(t *testing.T) {
	llm := new(mocks.MockLLMService)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return(nil, errors.New("API request failed with status 401: Incorrect API key provided"))

	var out bytes.Buffer
	err := run(context.Background(), llm, defaultPrompt, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key")
	assert.Empty(t, out.String())
}
