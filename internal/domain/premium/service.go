// Package premium держит всю логику премиум-доступа: ленивое истечение,
// активацию и применение событий Stripe к хранилищу пользователей.
package premium

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Spok95/coach-sommeil-bot/internal/domain/users"
)

// Store — срез репозитория пользователей, нужный движку.
type Store interface {
	Get(ctx context.Context, userID int64) (*users.User, error)
	SetPremium(ctx context.Context, userID int64, until time.Time, customerID *string) error
	ClearPremium(ctx context.Context, userID int64) error
	FindByCustomerRef(ctx context.Context, customerID string) (int64, error)
}

type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store Store, log *slog.Logger) *Service {
	return &Service{store: store, log: log, now: time.Now}
}

// IsPremium — единственное место, где проверяется истечение подписки.
// Флаг is_premium — кэш, истиной является subscription_until против часов;
// протухший флаг гасим прямо здесь (ленивое истечение, фонового свипера нет).
func (s *Service) IsPremium(ctx context.Context, userID int64) bool {
	u, err := s.store.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, users.ErrNotFound) {
			s.log.Error("premium check failed, treating as free", slog.Int64("user_id", userID), slog.Any("err", err))
		}
		return false
	}
	if !u.IsPremium {
		return false
	}
	if u.SubscriptionUntil == nil || !u.SubscriptionUntil.After(s.now()) {
		if err := s.store.ClearPremium(ctx, userID); err != nil {
			s.log.Error("failed to clear expired premium", slog.Int64("user_id", userID), slog.Any("err", err))
		}
		return false
	}
	return true
}

// Activate включает премиум на months «месяцев» по 30 дней.
// Срок всегда перезаписывается от текущего момента, без добавления
// остатка прежней подписки — так делал и исходный бот.
func (s *Service) Activate(ctx context.Context, userID int64, months int, customerID *string) error {
	until := s.now().Add(time.Duration(months) * 30 * 24 * time.Hour)
	if err := s.store.SetPremium(ctx, userID, until, customerID); err != nil {
		return fmt.Errorf("activate premium: %w", err)
	}
	s.log.Info("premium activated", slog.Int64("user_id", userID), slog.Time("until", until))
	return nil
}

// Deactivate идемпотентен: снятие флага с бесплатного пользователя — no-op.
func (s *Service) Deactivate(ctx context.Context, userID int64) error {
	if err := s.store.ClearPremium(ctx, userID); err != nil {
		return fmt.Errorf("deactivate premium: %w", err)
	}
	s.log.Info("premium deactivated", slog.Int64("user_id", userID))
	return nil
}

// HandlePaymentEvent применяет событие процессора к хранилищу.
// Ошибки стораджа логируются, событие считается непримёнённым; ретраит
// не движок, а цикл renewal на стороне Stripe. Вебхук при этом всё равно
// отвечает 200 — иначе процессор будет доставлять событие бесконечно.
func (s *Service) HandlePaymentEvent(ctx context.Context, ev Event) {
	log := s.log.With(slog.String("event", ev.Kind.String()))

	switch ev.Kind {
	case KindCheckoutCompleted:
		if ev.UserID == 0 {
			// без client_reference_id событие невосстановимо
			log.Warn("checkout event without user reference, ignored")
			return
		}
		var customer *string
		if ev.CustomerID != "" {
			customer = &ev.CustomerID
		}
		if err := s.Activate(ctx, ev.UserID, 1, customer); err != nil {
			log.Error("checkout not applied", slog.Int64("user_id", ev.UserID), slog.Any("err", err))
			return
		}
		log.Info("payment confirmed", slog.Int64("user_id", ev.UserID))

	case KindRenewalSucceeded:
		userID, err := s.store.FindByCustomerRef(ctx, ev.CustomerID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				log.Warn("renewal for unknown customer, ignored", slog.String("customer", ev.CustomerID))
			} else {
				log.Error("renewal not applied", slog.Any("err", err))
			}
			return
		}
		if err := s.Activate(ctx, userID, 1, nil); err != nil {
			log.Error("renewal not applied", slog.Int64("user_id", userID), slog.Any("err", err))
			return
		}
		log.Info("subscription renewed", slog.Int64("user_id", userID))

	case KindSubscriptionCancelled:
		userID, err := s.store.FindByCustomerRef(ctx, ev.CustomerID)
		if err != nil {
			if errors.Is(err, users.ErrNotFound) {
				log.Warn("cancellation for unknown customer, ignored", slog.String("customer", ev.CustomerID))
			} else {
				log.Error("cancellation not applied", slog.Any("err", err))
			}
			return
		}
		if err := s.Deactivate(ctx, userID); err != nil {
			log.Error("cancellation not applied", slog.Int64("user_id", userID), slog.Any("err", err))
			return
		}
		log.Info("subscription cancelled", slog.Int64("user_id", userID))

	default:
		log.Debug("unrecognized payment event, ignored")
	}
}
