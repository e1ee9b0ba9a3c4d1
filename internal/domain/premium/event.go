package premium

// EventKind — закрытый набор событий платёжного процессора.
// Всё, что мы не знаем, сворачивается в KindUnknown и проходит как no-op:
// Stripe добавляет новые типы событий, падать на них нельзя.
type EventKind int

const (
	KindUnknown EventKind = iota
	KindCheckoutCompleted
	KindRenewalSucceeded
	KindSubscriptionCancelled
)

func (k EventKind) String() string {
	switch k {
	case KindCheckoutCompleted:
		return "checkout_completed"
	case KindRenewalSucceeded:
		return "renewal_succeeded"
	case KindSubscriptionCancelled:
		return "subscription_cancelled"
	default:
		return "unknown"
	}
}

// Event — нормализованное платёжное событие.
// UserID есть только у checkout (client_reference_id), renewal и cancel
// несут лишь CustomerID.
type Event struct {
	Kind       EventKind
	UserID     int64 // 0 — отсутствует
	CustomerID string
}
