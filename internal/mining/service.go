package mining

import (
	"bytes"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"promoai-api/internal/common"
	"promoai-api/internal/config"
	"promoai-api/internal/events"

	"go.uber.org/zap"
)

// Service analyses uploaded event logs and converts process models
// between serializations.
type Service interface {
	Analyze(ctx context.Context, sessionID common.SessionID, fileName string, reader io.Reader) (*Analysis, error)
	Convert(ctx context.Context, content, from, to string) (string, error)
}

type miningService struct {
	client   *pm4pyClient
	eventBus events.EventBus
	logger   *zap.Logger
}

func NewService(cfg config.MiningConfig, eventBus events.EventBus, logger *zap.Logger) Service {
	return &miningService{
		client:   newPM4PyClient(cfg, logger),
		eventBus: eventBus,
		logger:   logger,
	}
}

// Analyze counts traces and events in the uploaded log, then asks the
// mining service to discover a BPMN model from it. The format check
// happens first so an unsupported upload never reaches the wire.
func (s *miningService) Analyze(ctx context.Context, sessionID common.SessionID, fileName string, reader io.Reader) (*Analysis, error) {
	format, compressed, err := resolveFormat(fileName)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, common.InternalError{Message: "failed to read uploaded log", Cause: err}
	}
	if compressed {
		data, err = gunzip(data)
		if err != nil {
			return nil, MalformedLogError{FileName: fileName, Cause: err}
		}
	}

	var stats logStats
	switch format {
	case FormatXES:
		stats, err = countXES(data)
	case FormatCSV:
		stats, err = countCSV(data)
	}
	if err != nil {
		return nil, MalformedLogError{FileName: fileName, Cause: err}
	}

	s.logger.Info("Event log parsed",
		zap.String("fileName", fileName),
		zap.String("format", string(format)),
		zap.Int("traces", stats.traces),
		zap.Int("events", stats.events))

	bpmnXML, err := s.client.DiscoverBPMN(ctx, format, data)
	if err != nil {
		return nil, err
	}

	analysis := &Analysis{
		FileName:  fileName,
		Format:    format,
		NumTraces: stats.traces,
		NumEvents: stats.events,
		BPMNXML:   bpmnXML,
	}

	s.eventBus.Publish(events.TopicLogAnalyzed, events.LogAnalyzed{
		Event:     events.NewEvent(),
		SessionID: string(sessionID),
		FileName:  fileName,
		NumTraces: stats.traces,
		NumEvents: stats.events,
		Status:    string(common.StatusSuccess),
		Message:   fmt.Sprintf("Discovered model from %d traces", stats.traces),
	})

	return analysis, nil
}

// Convert translates a process model between serializations via the
// mining service.
func (s *miningService) Convert(ctx context.Context, content, from, to string) (string, error) {
	return s.client.Convert(ctx, content, from, to)
}

// resolveFormat maps a file name to its log format, unwrapping one
// trailing .gz extension.
func resolveFormat(fileName string) (Format, bool, error) {
	name := strings.ToLower(fileName)
	compressed := false
	if strings.HasSuffix(name, ".gz") {
		compressed = true
		name = strings.TrimSuffix(name, ".gz")
	}

	switch filepath.Ext(name) {
	case ".xes":
		return FormatXES, compressed, nil
	case ".csv":
		return FormatCSV, compressed, nil
	default:
		ext := filepath.Ext(fileName)
		if compressed {
			ext = filepath.Ext(name) + ".gz"
		}
		return "", false, UnsupportedFormatError{FileName: fileName, Extension: ext}
	}
}

func gunzip(data []byte) ([]byte, error) {
	gz, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer gz.Close()
	return io.ReadAll(gz)
}
