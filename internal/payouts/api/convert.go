package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/cicconee/payouts/internal/payouts/app"
	"github.com/cicconee/payouts/internal/platform/validation"
	"github.com/shopspring/decimal"
)

// errBadInput marks requests that could not be decoded at all, as opposed to
// drafts that decoded but failed a business rule.
var errBadInput = errors.New("invalid input")

func badInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errBadInput, fmt.Sprintf(format, args...))
}

// Both transports decode into map[string]any (JSON objects and
// google.protobuf.Struct share that shape), so one set of helpers serves both.

func draftFromMap(m map[string]any) (app.Draft, error) {
	artistID, err := int64From(m["artist_id"])
	if err != nil {
		return app.Draft{}, badInput("artist_id: %v", err)
	}

	return app.Draft{
		ArtistID:      artistID,
		ArtistName:    stringFrom(m["artist_name"]),
		ArtistPhoto:   stringFrom(m["artist_photo"]),
		FirstName:     stringFrom(m["first_name"]),
		LastName:      stringFrom(m["last_name"]),
		Amount:        amountFrom(m["amount"]),
		Method:        stringFrom(m["method"]),
		AccountNumber: stringFrom(m["account_number"]),
	}, nil
}

func stringFrom(v any) string {
	s, _ := v.(string)
	return s
}

// textFrom renders scalars the way a form field would hold them.
func textFrom(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case json.Number:
		return t.String()
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

// amountFrom accepts a number or numeric text. Anything unparsable becomes
// zero so it fails the amount rule with its usual message.
func amountFrom(v any) decimal.Decimal {
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return decimal.Zero
		}
		return decimal.NewFromFloat(t)
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

func int64From(v any) (int64, error) {
	switch t := v.(type) {
	case nil:
		return 0, errors.New("is required")
	case float64:
		if t != math.Trunc(t) || math.Abs(t) > 1<<53 {
			return 0, fmt.Errorf("%v is not an integer", t)
		}
		return int64(t), nil
	case json.Number:
		return t.Int64()
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	default:
		return 0, fmt.Errorf("unsupported type %T", v)
	}
}

func requestMap(pr app.PaymentRequest) map[string]any {
	m := map[string]any{
		"id":             pr.ID,
		"artist_id":      pr.ArtistID,
		"artist_name":    pr.ArtistName,
		"first_name":     pr.FirstName,
		"last_name":      pr.LastName,
		"amount":         pr.Amount.String(),
		"account_number": validation.FormatIBAN(pr.AccountNumber),
		"method":         pr.Method,
		"status":         string(pr.Status),
		"date":           pr.Date,
	}
	if pr.ArtistPhoto != "" {
		m["artist_photo"] = pr.ArtistPhoto
	}
	return m
}

func requestList(prs []app.PaymentRequest) []any {
	out := make([]any, 0, len(prs))
	for _, pr := range prs {
		out = append(out, requestMap(pr))
	}
	return out
}

func totalsMap(t app.Totals) map[string]any {
	return map[string]any{
		"pending":         t.Pending.String(),
		"completed":       t.Completed.String(),
		"rejected":        t.Rejected.String(),
		"pending_count":   t.PendingCount,
		"completed_count": t.CompletedCount,
		"rejected_count":  t.RejectedCount,
	}
}

// listFilter narrows a listing. An empty Status means any status.
type listFilter struct {
	HasArtist bool
	ArtistID  int64
	Status    app.Status
}

func filterFromMap(m map[string]any) (listFilter, error) {
	var f listFilter
	if v, ok := m["artist_id"]; ok && v != nil && v != "" {
		id, err := int64From(v)
		if err != nil {
			return f, badInput("artist_id: %v", err)
		}
		f.HasArtist = true
		f.ArtistID = id
	}
	if raw := textFrom(m["status"]); raw != "" {
		st, err := app.ParseStatus(raw)
		if err != nil {
			return f, badInput("%v", err)
		}
		f.Status = st
	}
	return f, nil
}

func list(svc *app.Service, f listFilter) []app.PaymentRequest {
	var prs []app.PaymentRequest
	switch {
	case f.HasArtist:
		prs = svc.RequestsByArtist(f.ArtistID)
	case f.Status == app.StatusPending:
		return svc.PendingRequests()
	default:
		prs = svc.PaymentRequests()
	}
	if f.Status == "" {
		return prs
	}

	out := prs[:0]
	for _, pr := range prs {
		if pr.Status == f.Status {
			out = append(out, pr)
		}
	}
	return out
}

func validateMap(m map[string]any) (map[string]any, error) {
	kind := textFrom(m["kind"])
	value := textFrom(m["value"])
	if value == "" {
		value = textFrom(m["start"])
	}

	res, err := validation.Run(kind, value, textFrom(m["end"]))
	if err != nil {
		return nil, badInput("kind %q: %v (expected one of %s)", kind, err, strings.Join(validation.Kinds(), ", "))
	}

	out := map[string]any{"kind": strings.ToLower(strings.TrimSpace(kind)), "valid": res.Valid}
	if !res.Valid {
		out["error"] = res.Error
	}
	if out["kind"] == validation.KindIBAN {
		out["formatted"] = validation.FormatIBAN(value)
	}
	return out, nil
}
