package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pageza/openai-cake/backend/config"
	"github.com/pageza/openai-cake/backend/internal/metrics"
)

// maxImageBytes caps the size of a downloaded image before mirroring
const maxImageBytes = 20 << 20

// ImageRequest describes the image to generate
type ImageRequest struct {
	Prompt  string
	N       int
	Size    string
	Quality string
	Style   string
}

// imageGenerationRequest represents a request to the images API
type imageGenerationRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Quality        string `json:"quality"`
	Style          string `json:"style"`
	ResponseFormat string `json:"response_format"`
}

// ImageGenerationResponse represents the response from the images API
type ImageGenerationResponse struct {
	Created int64 `json:"created"`
	Data    []struct {
		URL           string `json:"url,omitempty"`
		RevisedPrompt string `json:"revised_prompt,omitempty"`
	} `json:"data"`
}

// ImageService handles image generation and optional mirroring
type ImageService struct {
	apiKey   string
	apiURL   string
	model    string
	store    ImageStore
	client   *http.Client
	maxBytes int64
	log      *zap.Logger
}

// NewImageService creates a new ImageService instance. store may be nil, in
// which case provider URLs are returned as is.
func NewImageService(cfg *config.Config, store ImageStore, log *zap.Logger) *ImageService {
	return &ImageService{
		apiKey:   cfg.OpenAIAPIKey,
		apiURL:   endpoint(cfg.OpenAIAPIURL, "/images/generations"),
		model:    cfg.ImageModel,
		store:    store,
		client:   &http.Client{Timeout: cfg.OpenAITimeout},
		maxBytes: maxImageBytes,
		log:      log.Named("image"),
	}
}

// GenerateImage generates an image and returns the URL of the first result
func (s *ImageService) GenerateImage(ctx context.Context, req ImageRequest) (string, error) {
	s.log.Info("generating image", zap.String("prompt", req.Prompt), zap.String("size", req.Size))

	var result ImageGenerationResponse
	body, err := postJSON(ctx, s.client, metrics.CallImage, s.apiURL, s.apiKey, imageGenerationRequest{
		Model:          s.model,
		Prompt:         req.Prompt,
		N:              req.N,
		Size:           req.Size,
		Quality:        req.Quality,
		Style:          req.Style,
		ResponseFormat: "url",
	}, &result)
	if err != nil {
		s.log.Debug("image generation failed", zap.ByteString("body", body))
		return "", err
	}

	if len(result.Data) == 0 {
		return "", errors.New("no image data in API response")
	}

	imageURL := result.Data[0].URL
	if imageURL == "" {
		return "", errors.New("empty image URL in API response")
	}

	if s.store == nil {
		return imageURL, nil
	}

	mirrored, err := s.mirror(ctx, imageURL)
	if err != nil {
		s.log.Warn("failed to mirror image, returning provider URL", zap.Error(err))
		return imageURL, nil
	}
	return mirrored, nil
}

// mirror downloads the generated image and uploads it to the image store
func (s *ImageService) mirror(ctx context.Context, imageURL string) (url string, err error) {
	start := time.Now()
	defer func() { metrics.ObserveUpstream(metrics.CallDownload, start, err) }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create download request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to download image, status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, s.maxBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read image data: %w", err)
	}
	if int64(len(data)) > s.maxBytes {
		return "", fmt.Errorf("image exceeds %d bytes", s.maxBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	key := fmt.Sprintf("recipe-images/%s.png", uuid.New().String())
	url, err = s.store.PutImage(ctx, key, data, contentType)
	if err != nil {
		return "", err
	}

	s.log.Info("mirrored image", zap.String("url", url))
	return url, nil
}
