package history

import (
	"fmt"

	"promoai-api/internal/events"

	"go.uber.org/zap"
)

// Service subscribes to generation and analysis events and records each
// one in the audit trail.
type Service interface {
	List(filter RecordFilter) ([]*GenerationRecord, error)
	Count(filter RecordFilter) (int64, error)
}

type historyService struct {
	repository Repository
	eventBus   events.EventBus
	logger     *zap.Logger
}

func NewService(repository Repository, eventBus events.EventBus, logger *zap.Logger) (Service, error) {
	svc := &historyService{
		repository: repository,
		eventBus:   eventBus,
		logger:     logger,
	}
	if err := svc.subscribe(); err != nil {
		return nil, fmt.Errorf("failed to subscribe to events: %w", err)
	}
	return svc, nil
}

func (s *historyService) subscribe() error {
	if err := s.eventBus.Subscribe(events.TopicModelGenerated, s.handleModelGenerated); err != nil {
		return err
	}
	if err := s.eventBus.Subscribe(events.TopicModelRefined, s.handleModelRefined); err != nil {
		return err
	}
	if err := s.eventBus.Subscribe(events.TopicPetriNetGenerated, s.handlePetriNetGenerated); err != nil {
		return err
	}
	return s.eventBus.Subscribe(events.TopicLogAnalyzed, s.handleLogAnalyzed)
}

func (s *historyService) List(filter RecordFilter) ([]*GenerationRecord, error) {
	return s.repository.ListRecords(filter)
}

func (s *historyService) Count(filter RecordFilter) (int64, error) {
	return s.repository.CountRecords(filter)
}

func (s *historyService) handleModelGenerated(event events.ModelGenerated) {
	s.record(&GenerationRecord{
		SessionID: event.SessionID,
		Operation: OperationGenerate,
		Provider:  event.Provider,
		Model:     event.Model,
		Status:    event.Status,
		Message:   event.Message,
	})
}

func (s *historyService) handleModelRefined(event events.ModelRefined) {
	s.record(&GenerationRecord{
		SessionID: event.SessionID,
		Operation: OperationRefine,
		Provider:  event.Provider,
		Model:     event.Model,
		Status:    event.Status,
		Message:   event.Message,
		Feedback:  event.Feedback,
	})
}

func (s *historyService) handlePetriNetGenerated(event events.PetriNetGenerated) {
	s.record(&GenerationRecord{
		SessionID: event.SessionID,
		Operation: OperationPetriNet,
		Provider:  event.Provider,
		Model:     event.Model,
		Status:    event.Status,
		Message:   event.Message,
	})
}

func (s *historyService) handleLogAnalyzed(event events.LogAnalyzed) {
	s.record(&GenerationRecord{
		SessionID: event.SessionID,
		Operation: OperationLogAnalysis,
		Status:    event.Status,
		Message:   event.Message,
		FileName:  event.FileName,
		NumTraces: event.NumTraces,
		NumEvents: event.NumEvents,
	})
}

// record writes one audit row. A failed write is logged and dropped so
// the event pipeline keeps flowing.
func (s *historyService) record(record *GenerationRecord) {
	if err := s.repository.CreateRecord(record); err != nil {
		s.logger.Error("Failed to write audit record",
			zap.String("operation", string(record.Operation)),
			zap.Error(err))
	}
}
