// Package notify implements the daily reminder: a scheduler polled at a fixed
// cadence and the capabilities that deliver reminders to the user.
package notify

import (
	"context"
	"errors"
	"sync"

	"github.com/etnz/invers"
	"github.com/google/uuid"
)

// ErrDenied is returned by Deliver when the user did not grant the permission.
var ErrDenied = errors.New("notification permission denied")

// Permission is the user's consent to receive reminders.
type Permission = invers.Permission

const (
	Undetermined = invers.PermissionUndetermined
	Granted      = invers.PermissionGranted
	Denied       = invers.PermissionDenied
)

// ParsePermission parses "undetermined", "granted" or "denied". The empty
// string is Undetermined.
func ParsePermission(s string) (Permission, error) { return invers.ParsePermission(s) }

// PermissionStore keeps the user's answer across processes.
type PermissionStore interface {
	Permission() Permission
	SetPermission(ctx context.Context, p Permission)
}

// Volatile is a PermissionStore held in memory.
type Volatile struct {
	mu sync.Mutex
	p  Permission
}

// NewVolatile returns a store holding p.
func NewVolatile(p Permission) *Volatile { return &Volatile{p: p} }

func (v *Volatile) Permission() Permission {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.p
}

func (v *Volatile) SetPermission(_ context.Context, p Permission) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.p = p
}

// Notification is a message delivered to the user.
type Notification struct {
	ID    uuid.UUID
	Title string
	Body  string
}

// Reminder returns the daily reminder.
func Reminder() Notification {
	return Notification{ID: uuid.New(), Title: "Invers Wealth Reminder", Body: "Time to track your daily investments!"}
}

// TestReminder returns the notification sent by the manual test action.
func TestReminder() Notification {
	return Notification{ID: uuid.New(), Title: "Invers Wealth Test", Body: "Notifications are working. You'll be reminded daily."}
}

// Capability is the system service able to show notifications.
type Capability interface {
	// Permission returns the current consent without asking the user.
	Permission(ctx context.Context) Permission
	// Request asks the user for consent if it is undetermined and returns
	// the resulting permission.
	Request(ctx context.Context) (Permission, error)
	// Deliver shows a notification. It fails with ErrDenied unless the
	// permission is granted.
	Deliver(ctx context.Context, n Notification) error
}
