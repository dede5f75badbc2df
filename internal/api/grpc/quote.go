package grpc

import (
	"context"

	"carrental-backend/internal/service"

	"google.golang.org/protobuf/types/known/structpb"
)

type QuoteHandler struct {
	quoteSvc service.QuoteService
}

func NewQuoteHandler(quoteSvc service.QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteSvc: quoteSvc}
}

// Quote expects {car_id, days} or {car_id, start_date, end_date}.
func (h *QuoteHandler) Quote(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}

	fields := req.GetFields()
	carID, err := int32Field(fields, "car_id", true)
	if err != nil {
		return nil, err
	}
	days, err := int32Field(fields, "days", false)
	if err != nil {
		return nil, err
	}
	start, err := stringField(fields, "start_date")
	if err != nil {
		return nil, err
	}
	end, err := stringField(fields, "end_date")
	if err != nil {
		return nil, err
	}

	quote, err := h.quoteSvc.QuoteRental(ctx, service.QuoteRequest{
		CarID:     carID,
		UserID:    userID,
		Days:      int(days),
		StartDate: start,
		EndDate:   end,
	})
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(quote)
}

// PriceSheet expects {car_id}.
func (h *QuoteHandler) PriceSheet(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	userID, err := callerID(ctx)
	if err != nil {
		return nil, err
	}
	carID, err := int32Field(req.GetFields(), "car_id", true)
	if err != nil {
		return nil, err
	}

	sheet, err := h.quoteSvc.PriceSheet(ctx, carID, userID)
	if err != nil {
		return nil, mapError(err)
	}
	return toStruct(sheet)
}
