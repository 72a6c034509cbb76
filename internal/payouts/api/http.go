package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/platform/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const maxBodyBytes = 1 << 20

type HTTPHandler struct {
	svc *app.Service
	log *logging.Logger
}

func NewHTTPHandler(svc *app.Service, log *logging.Logger) *HTTPHandler {
	return &HTTPHandler{svc: svc, log: log}
}

// NewRouter mounts the JSON API. timeout bounds each request; zero disables
// it.
func NewRouter(h *HTTPHandler, timeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(h.log))
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/payment-requests", func(r chi.Router) {
		r.Post("/", h.CreatePaymentRequest)
		r.Get("/", h.ListPaymentRequests)
		r.Get("/totals", h.GetTotals)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetPaymentRequest)
			r.Delete("/", h.DeletePaymentRequest)
			r.Patch("/status", h.UpdatePaymentStatus)
			r.Post("/complete", h.CompletePayment)
			r.Post("/reject", h.RejectPayment)
		})
	})

	r.Post("/validate/{kind}", h.Validate)

	return r
}

func (h *HTTPHandler) CreatePaymentRequest(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	d, err := draftFromMap(body)
	if err != nil {
		h.writeError(w, err)
		return
	}

	pr, err := h.svc.CreatePaymentRequest(d)
	if err != nil {
		h.writeError(w, err)
		return
	}

	h.log.Info("payment request created", "request_id", pr.ID, "artist_id", pr.ArtistID)
	respondWithJSON(w, http.StatusCreated, requestMap(pr))
}

func (h *HTTPHandler) ListPaymentRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f, err := filterFromMap(map[string]any{
		"artist_id": q.Get("artist_id"),
		"status":    q.Get("status"),
	})
	if err != nil {
		h.writeError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]any{"payment_requests": requestList(list(h.svc, f))})
}

func (h *HTTPHandler) GetTotals(w http.ResponseWriter, _ *http.Request) {
	respondWithJSON(w, http.StatusOK, totalsMap(h.svc.Totals()))
}

func (h *HTTPHandler) GetPaymentRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	pr, ok := h.svc.PaymentRequest(id)
	if !ok {
		h.writeError(w, app.ErrNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, requestMap(pr))
}

func (h *HTTPHandler) UpdatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	body, err := decodeBody(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	st, err := app.ParseStatus(textFrom(body["status"]))
	if err != nil {
		h.writeError(w, badInput("%v", err))
		return
	}

	h.transition(w, id, st)
}

func (h *HTTPHandler) CompletePayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.transition(w, id, app.StatusCompleted)
}

func (h *HTTPHandler) RejectPayment(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.transition(w, id, app.StatusRejected)
}

func (h *HTTPHandler) transition(w http.ResponseWriter, id int64, st app.Status) {
	if !h.svc.UpdatePaymentStatus(id, st) {
		h.writeError(w, app.ErrNotFound)
		return
	}

	log := h.log.With("request_id", id)
	log.Info("payment status updated", "status", st)

	pr, ok := h.svc.PaymentRequest(id)
	if !ok {
		h.writeError(w, app.ErrNotFound)
		return
	}
	respondWithJSON(w, http.StatusOK, requestMap(pr))
}

// DeletePaymentRequest answers 204 whether or not the request existed.
func (h *HTTPHandler) DeletePaymentRequest(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		h.writeError(w, err)
		return
	}

	if h.svc.DeletePaymentRequest(id) {
		h.log.Info("payment request deleted", "request_id", id)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *HTTPHandler) Validate(w http.ResponseWriter, r *http.Request) {
	body, err := decodeBody(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	body["kind"] = chi.URLParam(r, "kind")

	out, err := validateMap(body)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, out)
}

func pathID(r *http.Request) (int64, error) {
	id, err := int64From(chi.URLParam(r, "id"))
	if err != nil {
		return 0, badInput("invalid payment request id")
	}
	return id, nil
}

// decodeBody reads a JSON object. An empty body decodes to an empty map.
func decodeBody(r *http.Request) (map[string]any, error) {
	body := map[string]any{}
	if r.Body == nil {
		return body, nil
	}

	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	if err := dec.Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		return nil, badInput("request body must be a JSON object")
	}
	if body == nil {
		body = map[string]any{}
	}
	return body, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func (h *HTTPHandler) writeError(w http.ResponseWriter, err error) {
	var ve *app.ValidationError
	switch {
	case errors.As(err, &ve):
		respondWithJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Message, Field: ve.Field})
	case errors.Is(err, app.ErrNotFound):
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, errBadInput):
		respondWithJSON(w, http.StatusBadRequest, errorResponse{Error: strings.TrimPrefix(err.Error(), errBadInput.Error()+": ")})
	default:
		h.log.Error("http request failed", "err", err)
		respondWithJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(payload)
}

func requestLogger(log *logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"http_request_id", middleware.GetReqID(r.Context()),
			)
		})
	}
}
