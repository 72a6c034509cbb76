package api

import (
	"context"
	"errors"

	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/platform/logging"
	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

type Handler struct {
	svc *app.Service
	log *logging.Logger
}

var _ PaymentServiceServer = (*Handler)(nil)

func NewHandler(svc *app.Service, log *logging.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

func (h *Handler) CreatePaymentRequest(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	d, err := draftFromMap(in.AsMap())
	if err != nil {
		return nil, statusError(err)
	}

	log := h.log.With("artist_id", d.ArtistID)
	log.Info("CreatePaymentRequest called", "method", d.Method)

	pr, err := h.svc.CreatePaymentRequest(d)
	if err != nil {
		log.Info("CreatePaymentRequest rejected", "err", err)
		return nil, statusError(err)
	}

	log.Info("CreatePaymentRequest success", "request_id", pr.ID)
	return reply(requestMap(pr))
}

func (h *Handler) GetPaymentRequest(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(in)
	if err != nil {
		return nil, statusError(err)
	}

	pr, ok := h.svc.PaymentRequest(id)
	if !ok {
		return nil, statusError(app.ErrNotFound)
	}
	return reply(requestMap(pr))
}

func (h *Handler) ListPaymentRequests(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	f, err := filterFromMap(in.AsMap())
	if err != nil {
		return nil, statusError(err)
	}
	return reply(map[string]any{"payment_requests": requestList(list(h.svc, f))})
}

func (h *Handler) UpdatePaymentStatus(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(in)
	if err != nil {
		return nil, statusError(err)
	}
	st, err := app.ParseStatus(textFrom(in.AsMap()["status"]))
	if err != nil {
		return nil, statusError(badInput("%v", err))
	}
	return h.transition(id, st)
}

func (h *Handler) CompletePayment(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(in)
	if err != nil {
		return nil, statusError(err)
	}
	return h.transition(id, app.StatusCompleted)
}

func (h *Handler) RejectPayment(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(in)
	if err != nil {
		return nil, statusError(err)
	}
	return h.transition(id, app.StatusRejected)
}

func (h *Handler) transition(id int64, st app.Status) (*structpb.Struct, error) {
	if !h.svc.UpdatePaymentStatus(id, st) {
		return nil, statusError(app.ErrNotFound)
	}

	log := h.log.With("request_id", id)
	log.Info("payment status updated", "status", st)

	pr, ok := h.svc.PaymentRequest(id)
	if !ok {
		// Deleted between the update and the read.
		return nil, statusError(app.ErrNotFound)
	}
	return reply(requestMap(pr))
}

func (h *Handler) DeletePaymentRequest(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	id, err := requestID(in)
	if err != nil {
		return nil, statusError(err)
	}

	deleted := h.svc.DeletePaymentRequest(id)
	if deleted {
		h.log.Info("payment request deleted", "request_id", id)
	}
	return reply(map[string]any{"deleted": deleted})
}

func (h *Handler) GetTotals(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return reply(totalsMap(h.svc.Totals()))
}

func (h *Handler) Validate(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	out, err := validateMap(in.AsMap())
	if err != nil {
		return nil, statusError(err)
	}
	return reply(out)
}

func requestID(in *structpb.Struct) (int64, error) {
	id, err := int64From(in.AsMap()["id"])
	if err != nil {
		return 0, badInput("id: %v", err)
	}
	return id, nil
}

func reply(m map[string]any) (*structpb.Struct, error) {
	s, err := structpb.NewStruct(m)
	if err != nil {
		return nil, status.Error(codes.Internal, "internal error")
	}
	return s, nil
}

// statusError maps service errors onto gRPC codes. Validation failures keep
// the rule message verbatim and name the field in a BadRequest detail.
func statusError(err error) error {
	var ve *app.ValidationError
	switch {
	case errors.As(err, &ve):
		st := status.New(codes.InvalidArgument, ve.Message)
		detailed, derr := st.WithDetails(&errdetails.BadRequest{
			FieldViolations: []*errdetails.BadRequest_FieldViolation{
				{Field: ve.Field, Description: ve.Message},
			},
		})
		if derr == nil {
			st = detailed
		}
		return st.Err()

	case errors.Is(err, app.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())

	case errors.Is(err, errBadInput):
		return status.Error(codes.InvalidArgument, err.Error())

	default:
		return status.Error(codes.Internal, "internal error")
	}
}
