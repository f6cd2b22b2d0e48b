package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"libraryapi/internal/model"
	"libraryapi/internal/repository"
)

const (
	// loanPeriod is how long a holder may keep a copy before it is due back.
	loanPeriod = 15 * 24 * time.Hour
	// penaltyPerDay is the late fee, in currency units, charged per full or
	// partial day past the due date.
	penaltyPerDay = 10

	day = 24 * time.Hour
)

var (
	ErrIDRequired        = errors.New("title id is required")
	ErrHolderRequired    = errors.New("holder id is required")
	ErrTitleInvalid      = errors.New("title and author are required")
	ErrTitleNotFound     = errors.New("title not found")
	ErrNoCopiesAvailable = errors.New("no copies of this title are currently available")
	ErrAlreadyBorrowed   = errors.New("holder already has a copy of this title")
	ErrNotBorrowed       = errors.New("holder has no active loan for this title")
)

// Holder identifies the user performing a lending operation. Name is carried
// along purely for history display.
type Holder struct {
	ID   string
	Name string
}

// AddTitleInput holds the fields for creating a catalog entry.
type AddTitleInput struct {
	Title     string
	Author    string
	Category  string
	Cover     string
	CopyCount int
}

// LedgerService owns every state transition of the inventory: it is the only
// component permitted to change availability counts or borrow records. Each
// operation is one indivisible unit against the store — validation and
// mutation happen inside the same per-title critical section, so no observer
// ever sees a count changed without its matching record.
type LedgerService interface {
	// Borrow lends one copy of a title to the holder and returns the updated
	// snapshot. Fails with ErrTitleNotFound, ErrNoCopiesAvailable, or
	// ErrAlreadyBorrowed.
	Borrow(ctx context.Context, titleID string, holder Holder) (*model.Title, error)

	// Return gives a copy back and returns the updated snapshot. A plain
	// caller must hold an active record (ErrNotBorrowed otherwise); with
	// actingAsAdmin the call may instead release any one active record as an
	// override. The returned entry in the history log carries the accrued
	// late penalty.
	Return(ctx context.Context, titleID string, holder Holder, actingAsAdmin bool) (*model.Title, error)

	// AddTitle creates a catalog entry with a fresh ID and all copies
	// available.
	AddTitle(ctx context.Context, in AddTitleInput) (*model.Title, error)

	// RemoveTitle deletes a catalog entry, or fails with ErrTitleNotFound.
	// Outstanding loans do not block deletion.
	RemoveTitle(ctx context.Context, titleID string) error
}

type ledgerService struct {
	store      repository.InventoryStore
	history    repository.HistoryLog
	checkpoint Checkpointer
	logger     *zap.Logger

	now   func() time.Time
	newID func() string

	ops *prometheus.CounterVec

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// LedgerOption customizes a LedgerService; used by tests to pin the clock and
// id generation, and by main to attach metrics.
type LedgerOption func(*ledgerService)

// WithClock overrides the time source used for due dates and penalties.
func WithClock(now func() time.Time) LedgerOption {
	return func(s *ledgerService) { s.now = now }
}

// WithIDGenerator overrides the unique-id source for titles and history
// entries.
func WithIDGenerator(newID func() string) LedgerOption {
	return func(s *ledgerService) { s.newID = newID }
}

// WithMetrics registers a ledger operation counter on the given registerer.
func WithMetrics(reg prometheus.Registerer) LedgerOption {
	return func(s *ledgerService) {
		s.ops = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ledger_operations_total",
				Help: "Total number of ledger operations, by operation and result.",
			},
			[]string{"op", "result"},
		)
		reg.MustRegister(s.ops)
	}
}

// NewLedgerService constructs the lending ledger over the given store and
// history log. checkpoint may be nil (no durability, tests only).
func NewLedgerService(
	store repository.InventoryStore,
	history repository.HistoryLog,
	checkpoint Checkpointer,
	logger *zap.Logger,
	opts ...LedgerOption,
) LedgerService {
	s := &ledgerService{
		store:      store,
		history:    history,
		checkpoint: checkpoint,
		logger:     logger,
		now:        time.Now,
		newID:      uuid.NewString,
		locks:      make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// lockTitle serializes mutating operations per title. Lock entries are kept
// for the process lifetime; the set of titles is small.
func (s *ledgerService) lockTitle(titleID string) func() {
	s.mu.Lock()
	l, ok := s.locks[titleID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[titleID] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

func (s *ledgerService) count(op string, err error) {
	if s.ops == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	s.ops.WithLabelValues(op, result).Inc()
}

func (s *ledgerService) Borrow(ctx context.Context, titleID string, holder Holder) (t *model.Title, err error) {
	defer func() { s.count("borrow", err) }()

	if titleID == "" {
		return nil, ErrIDRequired
	}
	if holder.ID == "" {
		return nil, ErrHolderRequired
	}

	unlock := s.lockTitle(titleID)
	defer unlock()

	// Re-read under the lock: a concurrent borrow may have just taken the
	// last copy, and that must be observed here, not a stale snapshot.
	t, err = s.store.Get(ctx, titleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	if t.RecordFor(holder.ID) >= 0 {
		return nil, ErrAlreadyBorrowed
	}
	if t.AvailableCount <= 0 {
		return nil, ErrNoCopiesAvailable
	}

	now := s.now().UTC()
	t.AvailableCount--
	t.BorrowRecords = append(t.BorrowRecords, model.BorrowRecord{
		HolderID:   holder.ID,
		HolderName: holder.Name,
		DueDate:    now.Add(loanPeriod),
	})

	if err = s.store.Upsert(ctx, t); err != nil {
		return nil, err
	}
	if err = s.history.Append(ctx, model.HistoryEntry{
		ID:         s.newID(),
		TitleID:    t.ID,
		TitleName:  t.Title,
		HolderID:   holder.ID,
		HolderName: holder.Name,
		Action:     model.ActionBorrowed,
		Timestamp:  now,
	}); err != nil {
		return nil, err
	}

	s.checkpointAfter(ctx, "borrow")
	return t, nil
}

func (s *ledgerService) Return(ctx context.Context, titleID string, holder Holder, actingAsAdmin bool) (t *model.Title, err error) {
	defer func() { s.count("return", err) }()

	if titleID == "" {
		return nil, ErrIDRequired
	}
	if holder.ID == "" && !actingAsAdmin {
		return nil, ErrHolderRequired
	}

	unlock := s.lockTitle(titleID)
	defer unlock()

	t, err = s.store.Get(ctx, titleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTitleNotFound
		}
		return nil, err
	}

	idx := t.RecordFor(holder.ID)
	if idx < 0 {
		// Admin override: release any one active record. The records are
		// appended chronologically, so index 0 is the oldest loan.
		if !actingAsAdmin || len(t.BorrowRecords) == 0 {
			return nil, ErrNotBorrowed
		}
		idx = 0
	}

	rec := t.BorrowRecords[idx]
	t.BorrowRecords = append(t.BorrowRecords[:idx], t.BorrowRecords[idx+1:]...)
	t.AvailableCount++

	now := s.now().UTC()
	penalty := latePenalty(now, rec.DueDate)

	if err = s.store.Upsert(ctx, t); err != nil {
		return nil, err
	}
	// The history entry names the holder whose record was released, not the
	// admin acting on their behalf, so per-holder views stay consistent.
	if err = s.history.Append(ctx, model.HistoryEntry{
		ID:          s.newID(),
		TitleID:     t.ID,
		TitleName:   t.Title,
		HolderID:    rec.HolderID,
		HolderName:  rec.HolderName,
		Action:      model.ActionReturned,
		Timestamp:   now,
		PenaltyPaid: &penalty,
	}); err != nil {
		return nil, err
	}

	s.checkpointAfter(ctx, "return")
	return t, nil
}

func (s *ledgerService) AddTitle(ctx context.Context, in AddTitleInput) (t *model.Title, err error) {
	defer func() { s.count("add_title", err) }()

	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Author) == "" {
		return nil, ErrTitleInvalid
	}
	copies := in.CopyCount
	if copies < 1 {
		copies = 1
	}

	id := s.newID()
	cover := in.Cover
	if cover == "" {
		cover = coverURL(in.Title, id)
	}

	t = &model.Title{
		ID:             id,
		Title:          in.Title,
		Author:         in.Author,
		Category:       in.Category,
		Cover:          cover,
		CopyCount:      copies,
		AvailableCount: copies,
		BorrowRecords:  nil,
	}
	if err = s.store.Upsert(ctx, t); err != nil {
		return nil, err
	}

	s.checkpointAfter(ctx, "add_title")
	return t, nil
}

func (s *ledgerService) RemoveTitle(ctx context.Context, titleID string) (err error) {
	defer func() { s.count("remove_title", err) }()

	if titleID == "" {
		return ErrIDRequired
	}

	unlock := s.lockTitle(titleID)
	defer unlock()

	t, err := s.store.Get(ctx, titleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTitleNotFound
		}
		return err
	}

	if n := len(t.BorrowRecords); n > 0 {
		s.logger.Warn("removing title with active loans, outstanding records are discarded",
			zap.String("title_id", titleID),
			zap.String("title", t.Title),
			zap.Int("active_loans", n),
		)
	}

	if err = s.store.Remove(ctx, titleID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTitleNotFound
		}
		return err
	}

	s.checkpointAfter(ctx, "remove_title")
	return nil
}

// checkpointAfter persists the current state after a successful mutation. A
// failed save leaves the in-memory mutation applied; the gap is reconciled by
// the next successful save.
func (s *ledgerService) checkpointAfter(ctx context.Context, op string) {
	if s.checkpoint == nil {
		return
	}
	if err := s.checkpoint.SaveNow(ctx); err != nil {
		s.logger.Warn("state checkpoint failed, in-memory state remains authoritative",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}

// latePenalty computes the fee for returning at now against dueDate: zero on
// or before the due date, otherwise penaltyPerDay per started day late.
func latePenalty(now, dueDate time.Time) int {
	late := now.Sub(dueDate)
	if late <= 0 {
		return 0
	}
	daysLate := int((late + day - 1) / day)
	return daysLate * penaltyPerDay
}

// coverURL derives a deterministic placeholder cover image for a new title.
func coverURL(title, id string) string {
	seed := strings.Join(strings.Fields(title), "-")
	return fmt.Sprintf("https://picsum.photos/seed/%s-%s/400/600", seed, id)
}
