package users

import (
	"errors"
	"time"
)

var (
	// ErrNotFound — пользователя нет; это штатная ветка, не сбой.
	ErrNotFound = errors.New("users: not found")
	// ErrStorageUnavailable — база недоступна или операция не уложилась в таймаут.
	ErrStorageUnavailable = errors.New("users: storage unavailable")
)

type User struct {
	UserID            int64
	Username          string
	FirstName         string
	IsPremium         bool
	SubscriptionUntil *time.Time
	StripeCustomerID  *string
	CreatedAt         time.Time
	LastActivity      time.Time
}

type Telegram struct {
	ID        int64
	Username  string
	FirstName string
}
