package quota

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/andrymamboro/MAMBORO-AI-v.01/internal/domain"
)

// DefaultDailyMax is the allowance used when Options.DailyMax is not set.
const DefaultDailyMax = 5

// Options configures a Manager.
type Options struct {
	Store    domain.QuotaRepository
	DailyMax int
	Location *time.Location
	Now      func() time.Time
	Logger   zerolog.Logger
}

// Manager tracks the daily edit allowance of each identity. Records roll over
// lazily on the first call of a new calendar day.
//
// Store failures never reach the caller: an unreadable record is treated as
// missing and a failed write is logged while the computed value is returned.
type Manager struct {
	store  domain.QuotaRepository
	max    int
	loc    *time.Location
	now    func() time.Time
	logger zerolog.Logger

	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewManager builds a Manager. A nil store falls back to an in-memory store.
func NewManager(opts Options) *Manager {
	m := &Manager{
		store:  opts.Store,
		max:    opts.DailyMax,
		loc:    opts.Location,
		now:    opts.Now,
		logger: opts.Logger,
		locks:  make(map[string]*keyLock),
	}
	if m.store == nil {
		m.store = NewMemoryStore()
	}
	if m.max <= 0 {
		m.max = DefaultDailyMax
	}
	if m.loc == nil {
		m.loc = time.UTC
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// Max returns the configured daily maximum.
func (m *Manager) Max() int {
	return m.max
}

// Initialize returns the remaining allowance for id, resetting it to the
// maximum when no valid record exists for today.
func (m *Manager) Initialize(ctx context.Context, id domain.Identity) int {
	unlock := m.lock(id.Key())
	defer unlock()

	remaining, _ := m.current(ctx, id)
	return remaining
}

// Consume spends one unit of id's allowance and returns what is left. At zero
// it is a no-op.
func (m *Manager) Consume(ctx context.Context, id domain.Identity) int {
	unlock := m.lock(id.Key())
	defer unlock()

	remaining, today := m.current(ctx, id)
	if remaining == 0 {
		return 0
	}
	remaining--
	m.save(ctx, id, domain.QuotaRecord{Remaining: remaining, LastResetDate: today})
	return remaining
}

// Reserve takes one unit for an edit that is about to run and returns what
// is left and the day the unit was taken from. ok is false when nothing is
// left; no unit is taken then.
func (m *Manager) Reserve(ctx context.Context, id domain.Identity) (remaining int, day string, ok bool) {
	unlock := m.lock(id.Key())
	defer unlock()

	remaining, day = m.current(ctx, id)
	if remaining == 0 {
		return 0, day, false
	}
	remaining--
	m.save(ctx, id, domain.QuotaRecord{Remaining: remaining, LastResetDate: day})
	return remaining, day, true
}

// Refund gives back a unit taken by Reserve for day, capped at the maximum.
// A unit reserved before a rollover is not returned.
func (m *Manager) Refund(ctx context.Context, id domain.Identity, day string) int {
	unlock := m.lock(id.Key())
	defer unlock()

	remaining, today := m.current(ctx, id)
	if today != day || remaining >= m.max {
		return remaining
	}
	remaining++
	m.save(ctx, id, domain.QuotaRecord{Remaining: remaining, LastResetDate: today})
	return remaining
}

// Reset forces id's allowance back to the maximum regardless of date.
func (m *Manager) Reset(ctx context.Context, id domain.Identity) int {
	unlock := m.lock(id.Key())
	defer unlock()

	m.save(ctx, id, domain.QuotaRecord{Remaining: m.max, LastResetDate: m.today()})
	m.logger.Info().Str("identity", id.Key()).Msg("quota reset")
	return m.max
}

// current applies the rollover rule and returns today's remaining count.
// Callers must hold the identity lock.
func (m *Manager) current(ctx context.Context, id domain.Identity) (int, string) {
	today := m.today()

	rec, found, err := m.store.Load(ctx, id)
	if err != nil {
		m.logger.Warn().Err(err).Str("identity", id.Key()).Msg("quota load failed, treating as absent")
		found = false
	}
	if found && !rec.Valid() {
		m.logger.Warn().Str("identity", id.Key()).Int("remaining", rec.Remaining).Str("last_reset_date", rec.LastResetDate).Msg("discarding malformed quota record")
		found = false
	}

	if !found || rec.LastResetDate != today {
		m.save(ctx, id, domain.QuotaRecord{Remaining: m.max, LastResetDate: today})
		return m.max, today
	}
	if rec.Remaining > m.max {
		return m.max, today
	}
	return rec.Remaining, today
}

func (m *Manager) save(ctx context.Context, id domain.Identity, rec domain.QuotaRecord) {
	if err := m.store.Save(ctx, id, rec); err != nil {
		m.logger.Error().Err(err).Str("identity", id.Key()).Msg("quota save failed")
	}
}

func (m *Manager) today() string {
	return m.now().In(m.loc).Format(domain.DateLayout)
}

func (m *Manager) lock(key string) func() {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &keyLock{}
		m.locks[key] = l
	}
	l.refs++
	m.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		m.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(m.locks, key)
		}
		m.mu.Unlock()
	}
}
