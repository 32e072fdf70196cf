package notify

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Terminal asks for the permission on an interactive terminal and rings the
// bell to deliver reminders. The answer is kept in a PermissionStore.
type Terminal struct {
	mu    sync.Mutex
	in    *bufio.Reader
	out   io.Writer
	store PermissionStore
}

// NewTerminal returns a terminal capability whose answer is kept in st.
func NewTerminal(in io.Reader, out io.Writer, st PermissionStore) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, store: st}
}

func (t *Terminal) Permission(context.Context) Permission { return t.store.Permission() }

// Request prompts the user once. Any answer but yes is a denial, and so is an
// input that is closed before answering.
func (t *Terminal) Request(ctx context.Context) (Permission, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if p := t.store.Permission(); p != Undetermined {
		return p, nil
	}
	if err := ctx.Err(); err != nil {
		return Undetermined, err
	}
	fmt.Fprint(t.out, "Allow invers to show daily reminders? [y/N] ")
	line, err := t.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return Undetermined, fmt.Errorf("read permission answer: %w", err)
	}
	p := Denied
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		p = Granted
	}
	t.store.SetPermission(ctx, p)
	return p, nil
}

func (t *Terminal) Deliver(_ context.Context, n Notification) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.store.Permission() != Granted {
		return ErrDenied
	}
	_, err := fmt.Fprintf(t.out, "\a🔔 %s\n   %s\n", n.Title, n.Body)
	return err
}

// Log delivers reminders as log lines. It has nobody to ask: a permission
// never answered is granted on request, a recorded denial is kept.
type Log struct {
	log   zerolog.Logger
	store PermissionStore
}

// NewLog returns a log capability whose answer is kept in st.
func NewLog(log zerolog.Logger, st PermissionStore) *Log {
	return &Log{log: log, store: st}
}

func (l *Log) Permission(context.Context) Permission { return l.store.Permission() }

func (l *Log) Request(ctx context.Context) (Permission, error) {
	p := l.store.Permission()
	if p == Undetermined {
		p = Granted
		l.store.SetPermission(ctx, p)
	}
	return p, nil
}

func (l *Log) Deliver(_ context.Context, n Notification) error {
	if l.store.Permission() != Granted {
		return ErrDenied
	}
	l.log.Info().Stringer("id", n.ID).Str("title", n.Title).Msg(n.Body)
	return nil
}
