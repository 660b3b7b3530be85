package batch

import (
	"fmt"

	milling "Machinist/internal/calc/milling"
)

type MillingBatchInput struct {
	Items []milling.Request `json:"items"`
}

type MillingBatchResult struct {
	Results []milling.Result `json:"results"`
}

// CalculateMilling runs every item through the calculator. The first
// invalid item aborts the whole batch so a partial result is never
// mistaken for a complete one.
func CalculateMilling(in MillingBatchInput) (MillingBatchResult, error) {
	if len(in.Items) == 0 {
		return MillingBatchResult{}, fmt.Errorf("no items")
	}
	out := MillingBatchResult{Results: make([]milling.Result, 0, len(in.Items))}
	for i, item := range in.Items {
		res, err := milling.Calculate(item)
		if err != nil {
			return MillingBatchResult{}, fmt.Errorf("item %d: %w", i, err)
		}
		out.Results = append(out.Results, res)
	}
	return out, nil
}
