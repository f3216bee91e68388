package record

import (
	"context"
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"otsshare/internal/domain/record"
)

type Handler struct {
	service    record.Servicer
	log        *slog.Logger
	middleware huma.Middlewares
}

func NewHandler(service record.Servicer, log *slog.Logger, mws huma.Middlewares) *Handler {
	return &Handler{
		service:    service,
		log:        log.With("component", "record_handler"),
		middleware: mws,
	}
}

func (h *Handler) SetupRoutes(api huma.API) {
	huma.Register(api, h.createOp(), h.create)
	huma.Register(api, h.findOp(), h.find)
}

func (h *Handler) create(ctx context.Context, input *createInput) (*createOutput, error) {
	rec, err := h.service.Create(ctx, input.Body)
	if err != nil {
		return nil, h.httpError(err)
	}
	return &createOutput{Body: *rec}, nil
}

func (h *Handler) find(ctx context.Context, input *findInput) (*findOutput, error) {
	rec, err := h.service.Get(ctx, input.ID)
	if err != nil {
		return nil, h.httpError(err)
	}
	return &findOutput{Body: *rec}, nil
}

func (h *Handler) httpError(err error) error {
	switch {
	case errors.Is(err, record.ErrNotFound):
		return huma.Error404NotFound("record not found")
	case errors.Is(err, record.ErrInvalidData), errors.Is(err, record.ErrInvalidExpiration):
		return huma.Error400BadRequest(err.Error())
	default:
		h.log.Error("request failed", "error", err)
		return huma.Error500InternalServerError("internal error")
	}
}
