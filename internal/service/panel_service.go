package service

import (
	"context"
	"fmt"
	"strings"

	"image-panel/internal/domain"
	apperrors "image-panel/pkg/errors"

	"golang.org/x/sync/errgroup"
)

// Messages shown on result cards
const (
	MsgNoImages      = "Please select at least one image!"
	MsgReadFailed    = "Error reading original image"
	errorCardPrefix  = "Error: "
	processedMime    = "image/png"
	cardTitlePattern = "Image %d: %s"
)

// PanelService runs the encode -> send -> accumulate flow of the panel
type PanelService struct {
	processor   domain.ImageProcessor
	sessions    domain.SessionRepository
	logger      domain.Logger
	maxFileSize int64
	concurrency int
}

// NewPanelService creates a panel service; concurrency < 1 means sequential
func NewPanelService(
	processor domain.ImageProcessor,
	sessions domain.SessionRepository,
	logger domain.Logger,
	maxFileSize int64,
	concurrency int,
) *PanelService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &PanelService{
		processor:   processor,
		sessions:    sessions,
		logger:      logger,
		maxFileSize: maxFileSize,
		concurrency: concurrency,
	}
}

// ParseOperation validates an operation name from the form
func ParseOperation(name string) (domain.Operation, error) {
	op := domain.Operation(strings.TrimSpace(name))
	if !op.Valid() {
		return "", apperrors.NewValidationError("Unknown operation", string(op))
	}
	return op, nil
}

// ProcessBatch replaces the session's results with one card per source, in
// selection order. Per-file failures end up on their card, not in the error.
func (s *PanelService) ProcessBatch(ctx context.Context, sessionID string, sources []domain.ImageSource, operation domain.Operation) (*domain.Batch, error) {
	if len(sources) == 0 {
		return nil, apperrors.NewValidationError(MsgNoImages)
	}
	if !operation.Valid() {
		return nil, apperrors.NewValidationError("Unknown operation", string(operation))
	}

	session := s.sessions.Load(sessionID)
	session.Cards = nil
	session.Records = nil
	session.Report = nil
	session.Operation = operation
	s.sessions.Save(session)

	cards := make([]domain.ResultCard, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, src := range sources {
		i, src := i, src
		g.Go(func() error {
			cards[i] = s.processOne(gctx, i, src, operation)
			return nil
		})
	}
	// processOne never returns an error; failures live on the cards
	_ = g.Wait()

	records := make([]domain.DisplayRecord, 0, len(cards))
	for _, card := range cards {
		if card.Succeeded() {
			records = append(records, *card.Record)
		}
	}

	session.Cards = cards
	session.Records = records
	s.sessions.Save(session)

	s.logger.Info("Batch processed",
		"session_id", sessionID,
		"operation", string(operation),
		"files", len(sources),
		"records", len(records),
	)

	return &domain.Batch{
		Operation:  operation,
		Cards:      cards,
		Records:    records,
		Exportable: len(records) > 0,
	}, nil
}

func (s *PanelService) processOne(ctx context.Context, index int, src domain.ImageSource, operation domain.Operation) domain.ResultCard {
	card := domain.ResultCard{
		Index: index,
		Name:  src.Name(),
		Title: fmt.Sprintf(cardTitlePattern, index+1, src.Name()),
	}

	img, err := LoadImage(src, s.maxFileSize)
	if err != nil {
		s.logger.Warn("Failed to read original image", "file", src.Name(), "error", err)
		card.Error = MsgReadFailed
		card.ReadFailed = true
		return card
	}

	if err := ctx.Err(); err != nil {
		card.Error = errorCardPrefix + apperrors.UserMessage(apperrors.NewNetworkError("Processing cancelled", err))
		return card
	}

	processed, err := s.processor.Process(ctx, img, operation)
	if err != nil {
		card.Error = errorCardPrefix + apperrors.UserMessage(err)
		return card
	}

	card.Record = &domain.DisplayRecord{
		Name:             img.Name,
		OriginalMime:     img.MimeType,
		OriginalPayload:  img.Payload,
		ProcessedPayload: processed.ProcessedPayload,
		Operation:        operation,
	}
	return card
}

// Session returns the current panel state
func (s *PanelService) Session(sessionID string) *domain.Session {
	return s.sessions.Load(sessionID)
}

// Records returns the session's display records
func (s *PanelService) Records(sessionID string) []domain.DisplayRecord {
	return s.sessions.Load(sessionID).Records
}

// Download returns the processed image of a card as PNG or JPG
func (s *PanelService) Download(sessionID string, index int, format domain.DownloadFormat) (*domain.Download, error) {
	session := s.sessions.Load(sessionID)
	if index < 0 || index >= len(session.Cards) || !session.Cards[index].Succeeded() {
		return nil, apperrors.NewNotFoundError("Processed image not found")
	}
	rec := session.Cards[index].Record

	data, err := DecodePayload(rec.ProcessedPayload)
	if err != nil {
		return nil, apperrors.NewProcessingError("Processed image is corrupt", err)
	}

	switch format {
	case domain.DownloadPNG:
		return &domain.Download{
			Filename:    ProcessedFilename(rec.Name, "png"),
			ContentType: processedMime,
			Data:        data,
		}, nil
	case domain.DownloadJPG:
		jpg, err := ToJPEG(data)
		if err != nil {
			return nil, apperrors.NewProcessingError("Failed to convert image to JPG", err)
		}
		return &domain.Download{
			Filename:    ProcessedFilename(rec.Name, "jpg"),
			ContentType: "image/jpeg",
			Data:        jpg,
		}, nil
	default:
		return nil, apperrors.NewValidationError("Unsupported download format", string(format))
	}
}

// ProcessedMime is the MIME type of every processed payload
func ProcessedMime() string {
	return processedMime
}
