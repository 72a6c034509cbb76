package payouts

const (
	AggregateTypePaymentRequest = "payment_request"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusRejected  = "rejected"
)

const (
	EventTypePaymentRequestCreated       = "PaymentRequestCreated"
	EventTypePaymentRequestStatusChanged = "PaymentRequestStatusChanged"
	EventTypePaymentRequestDeleted       = "PaymentRequestDeleted"
)

const (
	RouteKeyPaymentRequestEvt = "evt.payment_request"
)
