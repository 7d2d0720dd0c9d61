package usecase

import (
	"context"
	"fmt"

	"FXBrief/internal/domain/models"
	domrepo "FXBrief/internal/domain/repository"
)

// BarsUseCase provides business logic for retrieving raw bars.
type BarsUseCase struct {
	store domrepo.BarSource
}

func NewBarsUseCase(store domrepo.BarSource) *BarsUseCase {
	return &BarsUseCase{store: store}
}

type GetBarsParams struct {
	Symbol    string
	N         int
	Timeframe domrepo.Timeframe
}

type GetBarsResult struct {
	Symbol    string
	Timeframe string
	Count     int
	Bars      models.Bars
}

// GetLatest returns the most recent N bars for a symbol, oldest first.
func (uc *BarsUseCase) GetLatest(ctx context.Context, p GetBarsParams) (*GetBarsResult, error) {
	if p.Symbol == "" {
		return nil, fmt.Errorf("symbol required")
	}
	if p.N <= 0 {
		p.N = 252
	}
	if p.N > 5000 {
		p.N = 5000
	}
	if !domrepo.IsValidTimeframe(p.Timeframe) {
		p.Timeframe = domrepo.DefaultTimeframe()
	}

	bars, err := uc.store.GetLatestNBars(ctx, p.Symbol, p.N, p.Timeframe)
	if err != nil {
		return nil, fmt.Errorf("get bars: %w", err)
	}

	return &GetBarsResult{
		Symbol:    p.Symbol,
		Timeframe: string(p.Timeframe),
		Count:     len(bars),
		Bars:      bars,
	}, nil
}
