package orchestrator

import (
	"fmt"

	"doccompare/comparison"
	"doccompare/types"
)

// RequestDocuments converts a JSON compare request into documents. A missing
// or null document or text is rejected with comparison.ErrInvalidInput.
func RequestDocuments(req *types.CompareRequest) (types.Document, types.Document, error) {
	if req == nil {
		return types.Document{}, types.Document{}, fmt.Errorf("%w: empty request", comparison.ErrInvalidInput)
	}
	if err := checkInput("document1", req.Document1); err != nil {
		return types.Document{}, types.Document{}, err
	}
	if err := checkInput("document2", req.Document2); err != nil {
		return types.Document{}, types.Document{}, err
	}
	return req.Document1.ToDocument(), req.Document2.ToDocument(), nil
}

func checkInput(field string, in *types.DocumentInput) error {
	if in == nil {
		return fmt.Errorf("%w: %s is missing or null", comparison.ErrInvalidInput, field)
	}
	if in.Text == nil {
		return fmt.Errorf("%w: %s.text is missing or null", comparison.ErrInvalidInput, field)
	}
	return nil
}
