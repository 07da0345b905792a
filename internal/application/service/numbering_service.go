package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/quotecraft/quotecraft-api/internal/domain/repository"
)

// Document types known to the numbering sequencer.
const (
	DocTypeQuotation = "quotation"
	DocTypeProject   = "project"
)

var docTypePrefixes = map[string]string{
	DocTypeQuotation: "QT",
	DocTypeProject:   "PR",
}

// NumberingService allocates human-facing document numbers from a per-scope,
// per-document-type atomic counter.
type NumberingService struct {
	sequenceRepo repository.SequenceRepository
}

// NewNumberingService creates a new numbering service
func NewNumberingService(sequenceRepo repository.SequenceRepository) *NumberingService {
	return &NumberingService{sequenceRepo: sequenceRepo}
}

// Next returns the next formatted number in the scope's sequence, e.g.
// "QT-000042". Numbering is best-effort: if the sequencer is unavailable the
// document still gets created, under a timestamp-based fallback number.
func (s *NumberingService) Next(ctx context.Context, scope, docType string) string {
	prefix, ok := docTypePrefixes[docType]
	if !ok {
		prefix = "DOC"
	}

	n, err := s.sequenceRepo.Increment(ctx, scope, docType)
	if err != nil {
		log.Printf("Warning: number sequence %s/%s unavailable, using fallback: %v", scope, docType, err)
		return fmt.Sprintf("%s-F%d", prefix, time.Now().UnixMilli())
	}
	return fmt.Sprintf("%s-%06d", prefix, n)
}
