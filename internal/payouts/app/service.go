package app

import (
	"sync"
	"time"

	"github.com/cicconee/payouts/internal/platform/validation"
	"github.com/shopspring/decimal"
)

// Service owns the payment requests of the running process. Every mutation
// goes through it; reads return copies.
type Service struct {
	mu sync.RWMutex
	// Oldest first. Readers walk it backwards so callers see the most
	// recent request first.
	requests []PaymentRequest
	ids      idGenerator

	now      func() time.Time
	notifier Notifier
}

// NewService returns an empty Service. notifier may be nil.
func NewService(notifier Notifier) *Service {
	return &Service{
		now:      time.Now,
		notifier: notifier,
	}
}

// CreatePaymentRequest validates d and stores it as a pending request. On a
// validation failure the returned error is a *ValidationError and nothing is
// stored.
func (s *Service) CreatePaymentRequest(d Draft) (PaymentRequest, error) {
	if err := validateDraft(d); err != nil {
		return PaymentRequest{}, err
	}

	s.mu.Lock()
	now := s.now().UTC()
	pr := PaymentRequest{
		ID:            s.ids.next(now),
		ArtistID:      d.ArtistID,
		ArtistName:    d.ArtistName,
		ArtistPhoto:   d.ArtistPhoto,
		FirstName:     d.FirstName,
		LastName:      d.LastName,
		Amount:        d.Amount,
		AccountNumber: d.AccountNumber,
		Method:        d.Method,
		Status:        StatusPending,
		Date:          now.Format(validation.DateLayout),
	}
	s.requests = append(s.requests, pr)
	s.notify(newEvent(EventCreated, pr, "", now))
	s.mu.Unlock()

	return pr, nil
}

// UpdatePaymentStatus sets the status of request id. Any status may follow
// any other. It reports false, changing nothing, when id is unknown or
// status is not a known value.
func (s *Service) UpdatePaymentStatus(id int64, status Status) bool {
	if !status.Valid() {
		return false
	}

	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	prev := s.requests[i].Status
	s.requests[i].Status = status
	if prev != status {
		s.notify(newEvent(EventStatusChanged, s.requests[i], prev, s.now().UTC()))
	}
	s.mu.Unlock()

	return true
}

func (s *Service) CompletePayment(id int64) bool {
	return s.UpdatePaymentStatus(id, StatusCompleted)
}

func (s *Service) RejectPayment(id int64) bool {
	return s.UpdatePaymentStatus(id, StatusRejected)
}

// DeletePaymentRequest removes request id, reporting false if it was not
// there.
func (s *Service) DeletePaymentRequest(id int64) bool {
	s.mu.Lock()
	i := s.indexOf(id)
	if i < 0 {
		s.mu.Unlock()
		return false
	}
	pr := s.requests[i]
	s.requests = append(s.requests[:i], s.requests[i+1:]...)
	s.notify(newEvent(EventDeleted, pr, "", s.now().UTC()))
	s.mu.Unlock()

	return true
}

func (s *Service) PaymentRequest(id int64) (PaymentRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return PaymentRequest{}, false
	}
	return s.requests[i], true
}

// PaymentRequests returns every request, most recent first.
func (s *Service) PaymentRequests() []PaymentRequest {
	return s.filter(func(PaymentRequest) bool { return true })
}

func (s *Service) RequestsByArtist(artistID int64) []PaymentRequest {
	return s.filter(func(pr PaymentRequest) bool { return pr.ArtistID == artistID })
}

func (s *Service) PendingRequests() []PaymentRequest {
	return s.filter(func(pr PaymentRequest) bool { return pr.Status == StatusPending })
}

func (s *Service) TotalPending() decimal.Decimal {
	return s.Totals().Pending
}

func (s *Service) TotalCompleted() decimal.Decimal {
	return s.Totals().Completed
}

// Totals sums amounts and counts requests per status in one pass.
func (s *Service) Totals() Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t := Totals{
		Pending:   decimal.Zero,
		Completed: decimal.Zero,
		Rejected:  decimal.Zero,
	}
	for _, pr := range s.requests {
		switch pr.Status {
		case StatusPending:
			t.Pending = t.Pending.Add(pr.Amount)
			t.PendingCount++
		case StatusCompleted:
			t.Completed = t.Completed.Add(pr.Amount)
			t.CompletedCount++
		case StatusRejected:
			t.Rejected = t.Rejected.Add(pr.Amount)
			t.RejectedCount++
		}
	}
	return t
}

func (s *Service) filter(keep func(PaymentRequest) bool) []PaymentRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]PaymentRequest, 0)
	for i := len(s.requests) - 1; i >= 0; i-- {
		if keep(s.requests[i]) {
			out = append(out, s.requests[i])
		}
	}
	return out
}

// indexOf expects s.mu to be held.
func (s *Service) indexOf(id int64) int {
	for i := range s.requests {
		if s.requests[i].ID == id {
			return i
		}
	}
	return -1
}

// notify runs under s.mu so subscribers see events in mutation order.
func (s *Service) notify(e Event) {
	if s.notifier != nil {
		s.notifier.Notify(e)
	}
}
