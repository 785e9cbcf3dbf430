// Package screentest builds session services for screen tests.
package screentest

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/careerpath/internal/roadmap"
	"github.com/abhisek/careerpath/internal/session"
	"github.com/abhisek/careerpath/internal/store"
)

// Epoch is the fixed clock used by NewSession.
var Epoch = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)

// NewSession starts a session on the sample catalog, backed by a private
// in-memory store, and completes the given milestones in order.
func NewSession(t *testing.T, completed ...string) (*session.Service, *store.Store) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	now := Epoch
	svc := session.NewService(session.Options{
		EventRepo:    st.EventRepo(),
		SnapshotRepo: st.SnapshotRepo(),
		Logger:       slog.New(slog.DiscardHandler),
		Clock:        func() time.Time { return now },
	})
	if err := svc.Start(context.Background(), roadmap.Sample()); err != nil {
		t.Fatalf("start session: %v", err)
	}
	for _, id := range completed {
		now = now.Add(time.Hour)
		if _, err := svc.Complete(context.Background(), id); err != nil {
			t.Fatalf("complete %s: %v", id, err)
		}
	}
	return svc, st
}
