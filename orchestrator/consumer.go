package orchestrator

import (
	"context"
	"errors"
	"log"

	"doccompare/comparison"
	"doccompare/shared/kafka"
	"doccompare/types"
)

// NewRequestHandler consumes CompareRequest messages from Kafka. Requests with
// missing documents, or that the engine rejects as non-text, are logged and
// dropped. Other failures return an error and the message is not marked;
// sarama commits by offset, so a later marked message on the same partition
// still moves the group past it.
func NewRequestHandler(o *Orchestrator) *kafka.TypedMessageHandler[types.CompareRequest] {
	return &kafka.TypedMessageHandler[types.CompareRequest]{
		Validate: func(req *types.CompareRequest) error {
			_, _, err := RequestDocuments(req)
			return err
		},
		Process: func(ctx context.Context, req *types.CompareRequest) error {
			doc1, doc2, err := RequestDocuments(req)
			if err != nil {
				log.Printf("Warning: dropping comparison request: %v", err)
				return nil
			}
			out, err := o.CompareDocuments(ctx, doc1, doc2, req.GenerateExplanation)
			if errors.Is(err, comparison.ErrInvalidInput) {
				log.Printf("Warning: dropping comparison request: %v", err)
				return nil
			}
			if err != nil {
				return err
			}
			log.Printf("Processed comparison request %s (%d hunks)", out.Result.ID, out.Result.Statistics.HunkCount)
			return nil
		},
		AlwaysMark: true,
	}
}
