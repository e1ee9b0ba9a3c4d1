package payments

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Spok95/coach-sommeil-bot/internal/domain/premium"
)

var webhookEvents = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "stripe_webhook_events_total",
	Help: "Stripe webhook deliveries by event kind and outcome.",
}, []string{"kind", "outcome"})

// Engine — потребитель нормализованных платёжных событий.
type Engine interface {
	HandlePaymentEvent(ctx context.Context, ev premium.Event)
}

// Handler принимает вебхуки Stripe. Контракт кодов жёсткий:
// 400 — только плохая подпись или нечитаемое тело (Stripe перешлёт),
// 200 — всё принятое, включая no-op и ошибки стораджа внутри движка,
// иначе получим бесконечную передоставку одного и того же события.
type Handler struct {
	log    *slog.Logger
	engine Engine
	secret string
	now    func() time.Time
}

func NewHandler(log *slog.Logger, engine Engine, secret string) *Handler {
	return &Handler{log: log, engine: engine, secret: secret, now: time.Now}
}

// stripeEvent — внешняя форма события; из всего payload нам нужны
// тип, client_reference_id и customer.
type stripeEvent struct {
	Type string `json:"type"`
	Data struct {
		Object struct {
			ClientReferenceID string `json:"client_reference_id"`
			Customer          string `json:"customer"`
		} `json:"object"`
	} `json:"data"`
}

// normalize сводит типы Stripe к закрытому множеству событий движка.
// Незнакомые типы не ошибка: они проходят как KindUnknown.
func normalize(ev stripeEvent) premium.Event {
	out := premium.Event{CustomerID: ev.Data.Object.Customer}
	switch ev.Type {
	case "checkout.session.completed":
		out.Kind = premium.KindCheckoutCompleted
		if id, err := strconv.ParseInt(ev.Data.Object.ClientReferenceID, 10, 64); err == nil {
			out.UserID = id
		}
	case "invoice.payment_succeeded":
		out.Kind = premium.KindRenewalSucceeded
	case "customer.subscription.deleted":
		out.Kind = premium.KindSubscriptionCancelled
	default:
		out.Kind = premium.KindUnknown
	}
	return out
}

// События Stripe — маленькие JSON-ы; всё крупнее лимита читать не будем.
const maxBodyBytes = 64 << 10

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.log.Error("failed to read webhook body", slog.Any("err", err))
		w.WriteHeader(http.StatusBadRequest)
		return
	}
	defer func() { _ = r.Body.Close() }()

	if err := VerifySignature(body, r.Header.Get("Stripe-Signature"), h.secret, h.now()); err != nil {
		h.log.Error("webhook signature rejected")
		webhookEvents.WithLabelValues("unknown", "bad_signature").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	var raw stripeEvent
	if err := json.Unmarshal(body, &raw); err != nil {
		h.log.Error("failed to unmarshal webhook payload", slog.Any("err", err))
		webhookEvents.WithLabelValues("unknown", "malformed").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	ev := normalize(raw)
	h.engine.HandlePaymentEvent(r.Context(), ev)
	webhookEvents.WithLabelValues(ev.Kind.String(), "admitted").Inc()

	h.log.Info("webhook processed", slog.String("type", raw.Type), slog.String("kind", ev.Kind.String()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
