package generator

import (
	"context"
	"encoding/json"
	"errors"
	"pantry-manager/domain"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
	"gorm.io/gorm"
)

const DefaultModel = "gpt-4o-mini"

type (
	// Completer is the part of a langchaingo model the generator calls.
	Completer interface {
		GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
	}

	// CompleterFactory builds a model client for one API key.
	CompleterFactory func(apiKey string) (Completer, error)

	ImageSource interface {
		GetRandomImageURL(ctx context.Context) (string, error)
	}

	GeneratorService interface {
		GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest) (domain.GenerateRecipeResponse, error)
	}

	generatorService struct {
		newCompleter CompleterFactory
		images       ImageSource
		defaultKey   string
		metrics      *Metrics
	}
)

// OpenAICompleterFactory returns a factory for langchaingo's OpenAI client.
// baseURL may be empty for the public API.
func OpenAICompleterFactory(model, baseURL string) CompleterFactory {
	if model == "" {
		model = DefaultModel
	}
	return func(apiKey string) (Completer, error) {
		opts := []openai.Option{
			openai.WithToken(apiKey),
			openai.WithModel(model),
		}
		if baseURL != "" {
			opts = append(opts, openai.WithBaseURL(baseURL))
		}
		return openai.New(opts...)
	}
}

func NewGeneratorService(newCompleter CompleterFactory, images ImageSource, defaultKey string) GeneratorService {
	return &generatorService{
		newCompleter: newCompleter,
		images:       images,
		defaultKey:   defaultKey,
		metrics:      NewMetrics(),
	}
}

func (s *generatorService) GenerateRecipe(ctx context.Context, req domain.GenerateRecipeRequest) (domain.GenerateRecipeResponse, error) {
	res, err := s.generate(ctx, req)
	if err != nil {
		log.Errorf("generator: %v", err)
		s.metrics.RequestsTotal.WithLabelValues("error").Inc()
		return domain.GenerateRecipeResponse{}, err
	}
	s.metrics.RequestsTotal.WithLabelValues("ok").Inc()
	return res, nil
}

func (s *generatorService) generate(ctx context.Context, req domain.GenerateRecipeRequest) (domain.GenerateRecipeResponse, error) {
	if req.PantryItems == nil {
		return domain.GenerateRecipeResponse{}, domain.ErrInvalidPantryItems
	}

	apiKey := strings.TrimSpace(req.OpenAIKey)
	if apiKey == "" {
		apiKey = s.defaultKey
	}
	if apiKey == "" {
		return domain.GenerateRecipeResponse{}, domain.ErrMissingOpenAIKey
	}

	imageURL, err := s.randomImage(ctx)
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}

	completer, err := s.newCompleter(apiKey)
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}

	messages := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
		llms.TextParts(schema.ChatMessageTypeHuman, userPrompt(req.PantryItems)),
	}

	start := time.Now()
	resp, err := completer.GenerateContent(ctx, messages)
	s.metrics.Duration.Observe(time.Since(start).Seconds())
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}
	if resp == nil || len(resp.Choices) == 0 {
		return domain.GenerateRecipeResponse{}, domain.ErrEmptyCompletion
	}

	recipe, err := parseRecipe(resp.Choices[0].Content)
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}
	recipe.ImageURL = imageURL

	encoded, err := json.Marshal(recipe)
	if err != nil {
		return domain.GenerateRecipeResponse{}, err
	}
	return domain.GenerateRecipeResponse{Recipe: string(encoded)}, nil
}

// randomImage returns nil when no recipe has an image yet.
func (s *generatorService) randomImage(ctx context.Context) (*string, error) {
	url, err := s.images.GetRandomImageURL(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &url, nil
}
