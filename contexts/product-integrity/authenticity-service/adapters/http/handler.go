package httpadapter

import (
	"context"
	"log/slog"
	"strings"

	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/application/commands"
	"provenance/contexts/product-integrity/authenticity-service/application/queries"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	httptransport "provenance/contexts/product-integrity/authenticity-service/transport/http"
)

const (
	moduleName = "product-integrity/authenticity-service"
	timeLayout = "2006-01-02T15:04:05Z"
)

// Handler is the public operation surface. Every method takes the caller
// identity resolved at the edge; an empty caller is the anonymous zero address.
type Handler struct {
	AuthorizeManufacturer commands.AuthorizeManufacturerUseCase
	TransferOwnership     commands.TransferOwnershipUseCase
	SetPaused             commands.SetPausedUseCase
	RegisterBatch         commands.RegisterBatchUseCase
	UpdateMetadata        commands.UpdateMetadataUseCase
	VerifyProduct         commands.VerifyProductUseCase
	BatchVerify           commands.BatchVerifyUseCase

	GetBatch          queries.GetBatchUseCase
	GetBatchesBulk    queries.GetBatchesBulkUseCase
	RenderLabel       queries.RenderLabelUseCase
	FingerprintStatus queries.FingerprintStatusUseCase
	History           queries.VerificationHistoryUseCase
	HistoryBulk       queries.VerificationHistoryBulkUseCase
	Statistics        queries.GetStatisticsUseCase
	ListManufacturers queries.ListManufacturersUseCase
	IsAuthorized      queries.IsAuthorizedUseCase
	Owner             queries.GetOwnerUseCase

	Logger *slog.Logger
}

// AuthorizeManufacturerHandler godoc
// @Summary Grant or revoke manufacturer rights
// @Description Owner only. Granting an already granted address still succeeds and emits an event.
// @Tags authenticity-authorization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param address path string true "Manufacturer address"
// @Param request body httptransport.AuthorizeManufacturerRequest true "Authorization flag"
// @Success 200 {object} httptransport.AuthorizationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/manufacturers/{address}/authorization [post]
func (h Handler) AuthorizeManufacturerHandler(
	ctx context.Context,
	caller string,
	address string,
	req httptransport.AuthorizeManufacturerRequest,
) (httptransport.AuthorizationResponse, error) {
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}
	manufacturer, err := entities.ParseAddress(address)
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}
	result, err := h.AuthorizeManufacturer.Execute(ctx, commands.AuthorizeManufacturerCommand{
		Caller:       callerAddress,
		Manufacturer: manufacturer,
		Authorized:   req.Authorized,
	})
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}
	return httptransport.AuthorizationResponse{
		Address:    result.Manufacturer.Hex(),
		Authorized: result.Authorized,
	}, nil
}

// ListManufacturersHandler godoc
// @Summary List authorized manufacturers
// @Description Snapshot of the enumeration list. Order is not stable across revocations.
// @Tags authenticity-authorization
// @Produce json
// @Success 200 {object} httptransport.ListManufacturersResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/manufacturers [get]
func (h Handler) ListManufacturersHandler(ctx context.Context) (httptransport.ListManufacturersResponse, error) {
	items, err := h.ListManufacturers.Execute(ctx)
	if err != nil {
		return httptransport.ListManufacturersResponse{}, err
	}
	return httptransport.ListManufacturersResponse{Items: mapAddresses(items)}, nil
}

// IsAuthorizedHandler godoc
// @Summary Read a manufacturer flag
// @Tags authenticity-authorization
// @Produce json
// @Param address path string true "Manufacturer address"
// @Success 200 {object} httptransport.AuthorizationResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/manufacturers/{address} [get]
func (h Handler) IsAuthorizedHandler(ctx context.Context, address string) (httptransport.AuthorizationResponse, error) {
	manufacturer, err := entities.ParseAddress(address)
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}
	authorized, err := h.IsAuthorized.Execute(ctx, manufacturer)
	if err != nil {
		return httptransport.AuthorizationResponse{}, err
	}
	return httptransport.AuthorizationResponse{
		Address:    manufacturer.Hex(),
		Authorized: authorized,
	}, nil
}

// OwnerHandler godoc
// @Summary Read the current owner
// @Tags authenticity-authorization
// @Produce json
// @Success 200 {object} httptransport.OwnerResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/owner [get]
func (h Handler) OwnerHandler(ctx context.Context) (httptransport.OwnerResponse, error) {
	owner, err := h.Owner.Execute(ctx)
	if err != nil {
		return httptransport.OwnerResponse{}, err
	}
	return httptransport.OwnerResponse{Owner: owner.Hex()}, nil
}

// TransferOwnershipHandler godoc
// @Summary Transfer ownership
// @Description Owner only. Revokes manufacturer rights from the outgoing owner and grants them to the new owner.
// @Tags authenticity-authorization
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Param request body httptransport.TransferOwnershipRequest true "New owner"
// @Success 200 {object} httptransport.TransferOwnershipResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/ownership/transfer [post]
func (h Handler) TransferOwnershipHandler(
	ctx context.Context,
	caller string,
	req httptransport.TransferOwnershipRequest,
) (httptransport.TransferOwnershipResponse, error) {
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.TransferOwnershipResponse{}, err
	}
	newOwner, err := entities.ParseAddress(req.NewOwner)
	if err != nil {
		return httptransport.TransferOwnershipResponse{}, err
	}
	result, err := h.TransferOwnership.Execute(ctx, commands.TransferOwnershipCommand{
		Caller:   callerAddress,
		NewOwner: newOwner,
	})
	if err != nil {
		return httptransport.TransferOwnershipResponse{}, err
	}
	return httptransport.TransferOwnershipResponse{
		PreviousOwner: result.PreviousOwner.Hex(),
		NewOwner:      result.NewOwner.Hex(),
	}, nil
}

// PauseHandler godoc
// @Summary Pause or unpause the engine
// @Description Owner only. Pausing requires a running engine and unpausing a paused one.
// @Tags authenticity-pause
// @Produce json
// @Security BearerAuth
// @Param X-Caller-Address header string false "Caller address when JWT auth is disabled"
// @Success 200 {object} httptransport.PauseResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/pause [post]
// @Router /v1/unpause [post]
func (h Handler) PauseHandler(ctx context.Context, caller string, paused bool) (httptransport.PauseResponse, error) {
	logger := application.ResolveLogger(h.Logger)
	callerAddress, err := parseCaller(caller)
	if err != nil {
		return httptransport.PauseResponse{}, err
	}
	result, err := h.SetPaused.Execute(ctx, commands.SetPausedCommand{
		Caller: callerAddress,
		Paused: paused,
	})
	if err != nil {
		logger.Warn("pause request failed",
			"event", "http_pause_failed",
			"module", moduleName,
			"layer", "transport",
			"paused", paused,
			"error", err.Error(),
		)
		return httptransport.PauseResponse{}, err
	}
	return httptransport.PauseResponse{Paused: result.Paused}, nil
}

// StatisticsHandler godoc
// @Summary Engine statistics
// @Tags authenticity-verification
// @Produce json
// @Success 200 {object} httptransport.StatisticsResponse
// @Failure 500 {object} httptransport.ErrorResponse
// @Router /v1/statistics [get]
func (h Handler) StatisticsHandler(ctx context.Context) (httptransport.StatisticsResponse, error) {
	stats, err := h.Statistics.Execute(ctx)
	if err != nil {
		return httptransport.StatisticsResponse{}, err
	}
	return httptransport.StatisticsResponse{
		Owner:              stats.Owner.Hex(),
		Paused:             stats.Paused,
		TotalProducts:      stats.TotalProducts,
		TotalVerifications: stats.TotalVerifications,
		TotalManufacturers: stats.TotalManufacturers,
	}, nil
}

func parseCaller(raw string) (entities.Address, error) {
	if strings.TrimSpace(raw) == "" {
		return entities.ZeroAddress, nil
	}
	return entities.ParseAddress(raw)
}

func parseFingerprints(raw []string) ([]entities.Fingerprint, error) {
	items := make([]entities.Fingerprint, 0, len(raw))
	for _, value := range raw {
		fingerprint, err := entities.ParseFingerprint(value)
		if err != nil {
			return nil, err
		}
		items = append(items, fingerprint)
	}
	return items, nil
}
