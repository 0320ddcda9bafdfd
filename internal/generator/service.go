package generator

import (
	"context"
	"encoding/json"

	"promoai-api/internal/common"
	"promoai-api/internal/config"
	"promoai-api/internal/events"
	"promoai-api/internal/llm"

	"go.uber.org/zap"
)

// ProviderSource resolves a provider kind to a constructed client.
// *llm.Registry is the production implementation.
type ProviderSource interface {
	Get(kind llm.Kind) (llm.Provider, error)
}

// Service defines the model generation operations
type Service interface {
	// Generate produces a fresh BPMN model from a process description
	Generate(ctx context.Context, req GenerateRequest) Result

	// Refine produces an updated model from the current XML and feedback
	Refine(ctx context.Context, req RefineRequest) Result

	// GeneratePetriNet produces a Petri net structure from a description
	GeneratePetriNet(ctx context.Context, req PetriNetRequest) PetriNetResult
}

type generatorService struct {
	providers ProviderSource
	eventBus  events.EventBus
	logger    *zap.Logger
	cfg       config.LLMConfig
}

// NewService creates a new generation service
func NewService(providers ProviderSource, eventBus events.EventBus, logger *zap.Logger, cfg config.LLMConfig) Service {
	return &generatorService{
		providers: providers,
		eventBus:  eventBus,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate implements the Service interface
func (s *generatorService) Generate(ctx context.Context, req GenerateRequest) Result {
	s.logger.Info("Generating BPMN model",
		zap.String("sessionID", string(req.SessionID)),
		zap.String("provider", req.Provider.String()),
		zap.String("model", req.Model))

	prompt := buildGeneratePrompt(req.Description, req.Instructions)

	text, err := s.complete(ctx, req.Provider, req.Model, prompt)

	var result Result
	if err != nil {
		s.logger.Error("BPMN generation failed", zap.Error(err))
		result = Result{
			Status:  common.StatusError,
			Message: userMessage(err),
		}
	} else {
		result = Result{
			Status:  common.StatusSuccess,
			BPMNXML: CleanXML(text),
			Message: "BPMN model generated successfully",
		}
	}

	s.publishGenerated(req.SessionID, req.Provider, req.Model, result.Status, result.Message)
	return result
}

// Refine implements the Service interface
func (s *generatorService) Refine(ctx context.Context, req RefineRequest) Result {
	s.logger.Info("Refining BPMN model",
		zap.String("sessionID", string(req.SessionID)),
		zap.String("provider", req.Provider.String()))

	prompt := buildRefinePrompt(req.CurrentXML, req.Feedback)

	text, err := s.complete(ctx, req.Provider, req.Model, prompt)

	var result Result
	if err != nil {
		s.logger.Error("BPMN refinement failed", zap.Error(err))
		result = Result{
			Status:  common.StatusError,
			Message: userMessage(err),
		}
	} else {
		result = Result{
			Status:  common.StatusSuccess,
			BPMNXML: CleanXML(text),
			Message: "BPMN model updated successfully",
		}
	}

	event := events.ModelRefined{
		Event:     events.NewEvent(),
		SessionID: string(req.SessionID),
		Provider:  req.Provider.String(),
		Model:     req.Model,
		Status:    result.Status.String(),
		Message:   result.Message,
		Feedback:  req.Feedback,
	}
	if err := s.eventBus.Publish(events.TopicModelRefined, event); err != nil {
		s.logger.Error("Failed to publish ModelRefined event", zap.Error(err))
	}

	return result
}

// GeneratePetriNet implements the Service interface
func (s *generatorService) GeneratePetriNet(ctx context.Context, req PetriNetRequest) PetriNetResult {
	s.logger.Info("Generating Petri net",
		zap.String("sessionID", string(req.SessionID)),
		zap.String("provider", req.Provider.String()))

	prompt := buildPetriNetPrompt(req.Description)

	text, err := s.complete(ctx, req.Provider, req.Model, prompt)

	var result PetriNetResult
	switch {
	case err != nil:
		s.logger.Error("Petri net generation failed", zap.Error(err))
		result = PetriNetResult{
			Status:  common.StatusError,
			Message: userMessage(err),
		}
	default:
		var net PetriNet
		if parseErr := json.Unmarshal([]byte(cleanJSON(text)), &net); parseErr != nil {
			s.logger.Error("Failed to parse Petri net JSON", zap.Error(parseErr))
			result = PetriNetResult{
				Status:  common.StatusError,
				Message: "Failed to parse Petri Net JSON",
			}
		} else {
			result = PetriNetResult{
				Status:   common.StatusSuccess,
				PetriNet: &net,
				Message:  "Petri Net generated successfully",
			}
		}
	}

	event := events.PetriNetGenerated{
		Event:     events.NewEvent(),
		SessionID: string(req.SessionID),
		Provider:  req.Provider.String(),
		Model:     req.Model,
		Status:    result.Status.String(),
		Message:   result.Message,
	}
	if err := s.eventBus.Publish(events.TopicPetriNetGenerated, event); err != nil {
		s.logger.Error("Failed to publish PetriNetGenerated event", zap.Error(err))
	}

	return result
}

// complete dispatches one completion call to the selected provider with
// the fixed generation parameters.
func (s *generatorService) complete(ctx context.Context, kind llm.Kind, model, prompt string) (string, error) {
	provider, err := s.providers.Get(kind)
	if err != nil {
		return "", err
	}

	return provider.Complete(ctx, llm.CompletionRequest{
		Prompt:      prompt,
		System:      systemPrompt,
		Model:       model,
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
}

func (s *generatorService) publishGenerated(sessionID common.SessionID, kind llm.Kind, model string, status common.ResultStatus, message string) {
	event := events.ModelGenerated{
		Event:     events.NewEvent(),
		SessionID: string(sessionID),
		Provider:  kind.String(),
		Model:     model,
		Status:    status.String(),
		Message:   message,
	}
	if err := s.eventBus.Publish(events.TopicModelGenerated, event); err != nil {
		s.logger.Error("Failed to publish ModelGenerated event", zap.Error(err))
	}
}

// userMessage prefers the provider error's human-readable message over the
// full error chain.
func userMessage(err error) string {
	if provErr, ok := err.(llm.ProviderError); ok {
		return provErr.Message()
	}
	return err.Error()
}
