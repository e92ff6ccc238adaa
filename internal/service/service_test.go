package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"railres/internal/auth"
	"railres/internal/models"
	"railres/internal/repository"
)

type publishedEvent struct {
	subject string
	payload []byte
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *recordingPublisher) Publish(subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{subject: subject, payload: payload})
	return p.err
}

func (p *recordingPublisher) subjects() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.subject
	}
	return out
}

type memoryJournal struct {
	mu      sync.Mutex
	entries []models.JournalEntry
}

func (j *memoryJournal) Record(ctx context.Context, entry *models.JournalEntry) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	entry.ID = int64(len(j.entries) + 1)
	j.entries = append(j.entries, *entry)
	return nil
}

func (j *memoryJournal) GetByUsername(ctx context.Context, username string) ([]models.JournalEntry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	var out []models.JournalEntry
	for _, e := range j.entries {
		if e.Username == username {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type testEnv struct {
	services  *Services
	repos     *repository.Repositories
	publisher *recordingPublisher
	clock     *fakeClock
}

func newTestEnv(t *testing.T, opts ...BookingOption) *testEnv {
	t.Helper()

	repos := repository.NewRepositories(nil)
	publisher := &recordingPublisher{}
	clock := &fakeClock{t: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	opts = append([]BookingOption{WithClock(clock.Now)}, opts...)
	services := NewServices(repos, publisher, auth.NewBcryptVerifier(bcrypt.MinCost), nil, opts...)
	require.NoError(t, services.SeedDemoData(context.Background()))

	return &testEnv{services: services, repos: repos, publisher: publisher, clock: clock}
}

func (e *testEnv) seats(t *testing.T, trainNumber, className string) int {
	t.Helper()
	train, err := e.services.Trains.Get(context.Background(), trainNumber)
	require.NoError(t, err)
	class, ok := train.Class(className)
	require.True(t, ok)
	return class.AvailableSeats
}
