package queries

import (
	"context"
	"log/slog"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

type ListManufacturersUseCase struct {
	Authorizations ports.AuthorizationReader
	Logger         *slog.Logger
}

// Execute returns the enumeration list snapshot. Order follows grants, except
// where a revocation moved the last entry into the freed slot.
func (uc ListManufacturersUseCase) Execute(ctx context.Context) ([]entities.Address, error) {
	items, err := uc.Authorizations.ListAuthorized(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entities.Address{}
	}
	return items, nil
}

type IsAuthorizedUseCase struct {
	Authorizations ports.AuthorizationReader
	Logger         *slog.Logger
}

func (uc IsAuthorizedUseCase) Execute(ctx context.Context, address entities.Address) (bool, error) {
	if address == entities.ZeroAddress {
		return false, nil
	}
	return uc.Authorizations.IsAuthorized(ctx, address)
}

type GetOwnerUseCase struct {
	Authorizations ports.AuthorizationReader
	Logger         *slog.Logger
}

func (uc GetOwnerUseCase) Execute(ctx context.Context) (entities.Address, error) {
	return uc.Authorizations.Owner(ctx)
}

type GetStatisticsUseCase struct {
	Ledger ports.LedgerReader
	Logger *slog.Logger
}

func (uc GetStatisticsUseCase) Execute(ctx context.Context) (entities.Statistics, error) {
	return uc.Ledger.Statistics(ctx)
}
