package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"recordboard/internal/model"
	"recordboard/internal/remote"
)

var (
	// ErrBusy is returned when an event could not be queued before the enqueue timeout.
	ErrBusy = errors.New("engine: event loop busy")
	// ErrClosed is returned once the event loop has stopped.
	ErrClosed = errors.New("engine: manager closed")
	// ErrUnknownRecord is returned when an edit targets an id that is not in the list.
	ErrUnknownRecord = errors.New("engine: record not in list")
)

type RecordManagerCfg struct {
	EnqueueTimeout  time.Duration
	MaxQueuedEvents int
}

const (
	defaultEnqueueTimeout  = 5 * time.Second
	defaultMaxQueuedEvents = 64
)

// boardState is owned by the event loop goroutine; nothing else reads or writes it.
type boardState struct {
	records   []model.Record
	draft     model.Draft
	mode      model.Mode
	currentID *int
}

func (s *boardState) snapshot() model.State {
	st := model.State{
		Records: append([]model.Record{}, s.records...),
		Draft:   s.draft,
		Mode:    s.mode,
	}
	if s.currentID != nil {
		id := *s.currentID
		st.CurrentID = &id
	}
	return st
}

func (s *boardState) exitEditMode() {
	s.draft = model.Draft{}
	s.mode = model.Creating
	s.currentID = nil
}

type boardEvent struct {
	apply func(s *boardState) error
	done  chan eventResult
}

type eventResult struct {
	state model.State
	err   error
}

/*
RecordManager keeps the board state behind a single event loop goroutine:
  - Every transition (load result, create/update/delete result, draft edits, edit mode)
    is applied serially on the loop, like handlers on a UI event loop.
  - Remote calls run on the caller's goroutine. Only their outcome is queued, and it is
    applied to the state current at completion time.
  - A failed remote call never reaches the loop: the state stays exactly as it was and
    the failure is written to the log.
  - Overlapping actions are not de-duplicated or cancelled.
*/
type RecordManager struct {
	collection    remote.Collection
	event_channel chan boardEvent
	cfg           RecordManagerCfg
	state         boardState
	stopped       chan struct{}
}

func NewRecordManager(ctx context.Context, collection remote.Collection, cfg RecordManagerCfg) (*RecordManager, context.CancelFunc, error) {
	if collection == nil {
		return nil, nil, errors.New("engine: collection is required")
	}
	if cfg.EnqueueTimeout <= 0 {
		cfg.EnqueueTimeout = defaultEnqueueTimeout
	}
	if cfg.MaxQueuedEvents <= 0 {
		cfg.MaxQueuedEvents = defaultMaxQueuedEvents
	}

	m := &RecordManager{
		collection:    collection,
		event_channel: make(chan boardEvent, cfg.MaxQueuedEvents),
		cfg:           cfg,
		state:         boardState{records: []model.Record{}},
		stopped:       make(chan struct{}),
	}

	runCtx, cancel := context.WithCancel(ctx)
	go m.run(runCtx)
	return m, cancel, nil
}

// Done is closed once the event loop has stopped.
func (m *RecordManager) Done() <-chan struct{} {
	return m.stopped
}

// Load reads the whole collection and replaces the list. On failure the list is left as it was.
func (m *RecordManager) Load(ctx context.Context) (model.State, error) {
	records, err := m.collection.List(ctx)
	if err != nil {
		return m.failed(model.LOAD, err)
	}
	return m.dispatch(func(s *boardState) error {
		s.records = append([]model.Record{}, records...)
		return nil
	})
}

// Submit updates the record being edited, or creates a new one from the draft.
// The draft is sent as-is, empty fields included.
func (m *RecordManager) Submit(ctx context.Context) (model.State, error) {
	st, err := m.Snapshot()
	if err != nil {
		return st, err
	}
	if st.Mode == model.Updating && st.CurrentID != nil {
		return m.Update(ctx, *st.CurrentID, st.Draft)
	}
	return m.Create(ctx, st.Draft)
}

// Create posts draft; on success the server record is appended and the draft cleared.
func (m *RecordManager) Create(ctx context.Context, draft model.Draft) (model.State, error) {
	rec, err := m.collection.Create(ctx, draft)
	if err != nil {
		return m.failed(model.CREATE, err)
	}
	return m.dispatch(func(s *boardState) error {
		records := make([]model.Record, 0, len(s.records)+1)
		records = append(records, s.records...)
		s.records = append(records, rec)
		s.draft = model.Draft{}
		return nil
	})
}

// Update puts draft for id; on success every entry with that id is replaced by the
// server answer, the draft is cleared and the board returns to creating.
func (m *RecordManager) Update(ctx context.Context, id int, draft model.Draft) (model.State, error) {
	rec, err := m.collection.Update(ctx, id, draft)
	if err != nil {
		return m.failed(model.UPDATE, err)
	}
	return m.dispatch(func(s *boardState) error {
		records := make([]model.Record, len(s.records))
		for i, r := range s.records {
			if r.ID == id {
				records[i] = rec
				continue
			}
			records[i] = r
		}
		s.records = records
		s.exitEditMode()
		return nil
	})
}

// Delete removes id remotely; on success entries with that id leave the list.
func (m *RecordManager) Delete(ctx context.Context, id int) (model.State, error) {
	if err := m.collection.Delete(ctx, id); err != nil {
		return m.failed(model.DELETE, err)
	}
	return m.dispatch(func(s *boardState) error {
		records := make([]model.Record, 0, len(s.records))
		for _, r := range s.records {
			if r.ID != id {
				records = append(records, r)
			}
		}
		s.records = records
		return nil
	})
}

// EnterEditMode copies record into the draft and switches to updating record.ID.
func (m *RecordManager) EnterEditMode(record model.Record) (model.State, error) {
	return m.dispatch(func(s *boardState) error {
		id := record.ID
		s.draft = model.Draft{Name: record.Name, Email: record.Email}
		s.mode = model.Updating
		s.currentID = &id
		return nil
	})
}

// EnterEditModeByID is EnterEditMode for the listed record carrying id.
func (m *RecordManager) EnterEditModeByID(id int) (model.State, error) {
	return m.dispatch(func(s *boardState) error {
		for _, r := range s.records {
			if r.ID != id {
				continue
			}
			current := r.ID
			s.draft = model.Draft{Name: r.Name, Email: r.Email}
			s.mode = model.Updating
			s.currentID = &current
			return nil
		}
		return fmt.Errorf("%w: id %d", ErrUnknownRecord, id)
	})
}

// CancelEdit clears the draft and returns to creating.
func (m *RecordManager) CancelEdit() (model.State, error) {
	return m.dispatch(func(s *boardState) error {
		s.exitEditMode()
		return nil
	})
}

// SetDraft binds both input fields at once.
func (m *RecordManager) SetDraft(draft model.Draft) (model.State, error) {
	return m.dispatch(func(s *boardState) error {
		s.draft = draft
		return nil
	})
}

func (m *RecordManager) SetName(name string) (model.State, error) {
	return m.dispatch(func(s *boardState) error {
		s.draft.Name = name
		return nil
	})
}

func (m *RecordManager) SetEmail(email string) (model.State, error) {
	return m.dispatch(func(s *boardState) error {
		s.draft.Email = email
		return nil
	})
}

// Snapshot returns a copy of the current state.
func (m *RecordManager) Snapshot() (model.State, error) {
	return m.dispatch(func(*boardState) error { return nil })
}

// failed logs a remote failure and reports the untouched state alongside it.
func (m *RecordManager) failed(op model.Op, err error) (model.State, error) {
	log.Printf("[engine] %s Error: %v", op, err)
	st, serr := m.Snapshot()
	if serr != nil {
		return st, errors.Join(err, serr)
	}
	return st, err
}

func (m *RecordManager) dispatch(apply func(s *boardState) error) (model.State, error) {
	msg := boardEvent{apply: apply, done: make(chan eventResult, 1)}

	timer := time.NewTimer(m.cfg.EnqueueTimeout)
	defer timer.Stop()

	select {
	case m.event_channel <- msg:
	case <-m.stopped:
		return model.State{}, ErrClosed
	case <-timer.C:
		return model.State{}, ErrBusy
	}

	select {
	case res := <-msg.done:
		return res.state, res.err
	case <-m.stopped:
		// The loop may have answered right before stopping.
		select {
		case res := <-msg.done:
			return res.state, res.err
		default:
			return model.State{}, ErrClosed
		}
	}
}

func (m *RecordManager) run(ctx context.Context) {
	defer close(m.stopped)
	for {
		select {
		case msg := <-m.event_channel:
			err := msg.apply(&m.state)
			msg.done <- eventResult{state: m.state.snapshot(), err: err}
		case <-ctx.Done():
			log.Printf("[engine] record manager is shutting down - %d records in memory", len(m.state.records))
			return
		}
	}
}
