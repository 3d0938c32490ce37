package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/BrandonSosa3/BrieflyGlobal/internal/domain"
	"github.com/BrandonSosa3/BrieflyGlobal/internal/ports"
	"github.com/sirupsen/logrus"
)

type Slot string

const (
	SlotPrimary    Slot = "primary"
	SlotComparison Slot = "comparison"
)

type Stage string

const (
	StageIdle       Stage = "idle"
	StageConnecting Stage = "connecting"
	StageWaking     Stage = "waking"
	StageFetching   Stage = "fetching"
	StageColdStart  Stage = "cold_start"
)

func (s Stage) Label() string {
	switch s {
	case StageConnecting:
		return "Connecting to server..."
	case StageWaking:
		return "Waking up server..."
	case StageFetching:
		return "Fetching intelligence data..."
	case StageColdStart:
		return "Server is starting up, this can take a minute..."
	default:
		return ""
	}
}

// SessionState is a snapshot of one fetch session. Subscribers receive copies; nothing
// outside the orchestrator mutates it.
type SessionState struct {
	Slot               Slot
	Generation         uint64
	CountryCode        string
	Stage              Stage
	Label              string
	Progress           int
	ColdStartSuspected bool
}

func (s SessionState) Busy() bool {
	return s.Stage != StageIdle && s.Stage != ""
}

type FetchPolicy struct {
	MainTimeout      time.Duration
	ProbeTimeout     time.Duration
	ColdStartAfter   time.Duration
	ProgressInterval time.Duration
	ProgressStart    int
	ProgressStep     int
	ProgressCap      int
}

func DefaultFetchPolicy() FetchPolicy {
	return FetchPolicy{
		MainTimeout:      3 * time.Minute,
		ProbeTimeout:     2 * time.Minute,
		ColdStartAfter:   15 * time.Second,
		ProgressInterval: 2 * time.Second,
		ProgressStart:    10,
		ProgressStep:     5,
		ProgressCap:      90,
	}
}

const (
	timerColdStart = "cold_start"
	timerProgress  = "progress"
	timerProbe     = "probe"
	timerMain      = "main"
)

// Orchestrator runs intelligence fetches for a fixed set of display slots. A newer Fetch
// on a slot supersedes the one in flight: the older session's context is canceled and it
// can no longer write the slot or publish state.
type Orchestrator struct {
	source ports.IntelligenceSource
	clock  ports.Clock
	log    logrus.FieldLogger
	policy FetchPolicy

	// notifyMu orders state changes with their delivery to subscribers.
	notifyMu sync.Mutex

	mu          sync.Mutex
	slots       map[Slot]*slotState
	subscribers map[int]func(SessionState)
	nextSubID   int
}

type slotState struct {
	generation uint64
	cancel     context.CancelCauseFunc
	state      SessionState
	record     *domain.IntelligenceRecord
}

type fetchSession struct {
	orchestrator *Orchestrator
	slot         Slot
	generation   uint64
	code         string
	ctx          context.Context
	cancel       context.CancelCauseFunc

	// guarded by orchestrator.mu
	closed bool
	timers map[string]ports.Timer
}

func NewOrchestrator(source ports.IntelligenceSource, clock ports.Clock, log logrus.FieldLogger, policy FetchPolicy) *Orchestrator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	return &Orchestrator{
		source:      source,
		clock:       clock,
		log:         log,
		policy:      policy,
		slots:       make(map[Slot]*slotState),
		subscribers: make(map[int]func(SessionState)),
	}
}

// Subscribe registers fn for every published state change and returns a function that
// removes it. fn runs synchronously and must not call Fetch.
func (o *Orchestrator) Subscribe(fn func(SessionState)) func() {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextSubID
	o.nextSubID++
	o.subscribers[id] = fn

	return func() {
		o.mu.Lock()
		defer o.mu.Unlock()
		delete(o.subscribers, id)
	}
}

// Current returns the record displayed in slot, if any fetch for it has succeeded.
func (o *Orchestrator) Current(slot Slot) (domain.IntelligenceRecord, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.slots[slot]
	if !ok || st.record == nil {
		return domain.IntelligenceRecord{}, false
	}
	return *st.record, true
}

func (o *Orchestrator) State(slot Slot) SessionState {
	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.slots[slot]
	if !ok {
		return SessionState{Slot: slot, Stage: StageIdle}
	}
	return st.state
}

// Fetch loads the intelligence record for code into slot. It fails with
// domain.ErrFetchTimeout, *domain.ServerError, domain.ErrFetchNetwork,
// domain.ErrFetchShapeMismatch, domain.ErrSuperseded, or the caller's context error.
func (o *Orchestrator) Fetch(ctx context.Context, slot Slot, code string) (domain.IntelligenceRecord, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return domain.IntelligenceRecord{}, fmt.Errorf("fetch intelligence: %w: empty country code", domain.ErrCountryNotFound)
	}

	s := o.begin(ctx, slot, code)
	defer s.settle()

	s.setStage(StageConnecting, o.policy.ProgressStart)
	s.arm(timerColdStart, o.policy.ColdStartAfter, s.suspectColdStart)
	s.arm(timerProgress, o.policy.ProgressInterval, s.tick)

	s.setStage(StageWaking, 0)
	s.probe()
	if err := s.interrupted(ctx); err != nil {
		return domain.IntelligenceRecord{}, err
	}

	s.setStage(StageFetching, 0)
	mainCtx, mainCancel := context.WithCancelCause(s.ctx)
	defer mainCancel(nil)
	s.arm(timerMain, o.policy.MainTimeout, func() { mainCancel(domain.ErrFetchTimeout) })

	raw, err := o.source.FetchIntelligence(mainCtx, code)
	s.disarm(timerMain)
	if err != nil {
		if stale := s.interrupted(ctx); stale != nil {
			return domain.IntelligenceRecord{}, stale
		}
		if errors.Is(context.Cause(mainCtx), domain.ErrFetchTimeout) {
			return domain.IntelligenceRecord{}, fmt.Errorf("fetch intelligence %s: %w", code, domain.ErrFetchTimeout)
		}
		return domain.IntelligenceRecord{}, fmt.Errorf("fetch intelligence %s: %w", code, err)
	}
	if !s.current() {
		return domain.IntelligenceRecord{}, fmt.Errorf("fetch intelligence %s: %w", code, domain.ErrSuperseded)
	}

	record, err := decodeIntelligence(raw)
	if err != nil {
		return domain.IntelligenceRecord{}, fmt.Errorf("fetch intelligence %s: %w", code, err)
	}

	if !s.commit(record) {
		return domain.IntelligenceRecord{}, fmt.Errorf("fetch intelligence %s: %w", code, domain.ErrSuperseded)
	}

	o.log.WithFields(logrus.Fields{
		"slot":     slot,
		"country":  code,
		"articles": len(record.Articles),
	}).Debug("intelligence fetched")

	return record, nil
}

func (o *Orchestrator) begin(ctx context.Context, slot Slot, code string) *fetchSession {
	sessionCtx, cancel := context.WithCancelCause(ctx)

	o.mu.Lock()
	defer o.mu.Unlock()

	st, ok := o.slots[slot]
	if !ok {
		st = &slotState{}
		o.slots[slot] = st
	}
	if st.cancel != nil {
		st.cancel(domain.ErrSuperseded)
	}
	st.generation++
	st.cancel = cancel

	return &fetchSession{
		orchestrator: o,
		slot:         slot,
		generation:   st.generation,
		code:         code,
		ctx:          sessionCtx,
		cancel:       cancel,
		timers:       make(map[string]ports.Timer),
	}
}

// probe wakes a cold backend. Its failure only costs the user the wake-up head start.
func (s *fetchSession) probe() {
	o := s.orchestrator
	probeCtx, probeCancel := context.WithCancelCause(s.ctx)
	defer probeCancel(nil)

	s.arm(timerProbe, o.policy.ProbeTimeout, func() { probeCancel(domain.ErrFetchTimeout) })
	defer s.disarm(timerProbe)

	if err := o.source.Ping(probeCtx); err != nil {
		o.log.WithFields(logrus.Fields{
			"slot":    s.slot,
			"country": s.code,
		}).WithError(err).Debug("wake-up probe failed")
	}
}

// interrupted reports why the session can no longer deliver a result, if it cannot.
func (s *fetchSession) interrupted(parent context.Context) error {
	if !s.current() {
		return fmt.Errorf("fetch intelligence %s: %w", s.code, domain.ErrSuperseded)
	}
	if err := parent.Err(); err != nil {
		return fmt.Errorf("fetch intelligence %s: %w", s.code, context.Cause(parent))
	}
	return nil
}

func (s *fetchSession) current() bool {
	o := s.orchestrator
	o.mu.Lock()
	defer o.mu.Unlock()
	return s.currentLocked()
}

func (s *fetchSession) currentLocked() bool {
	st, ok := s.orchestrator.slots[s.slot]
	return ok && st.generation == s.generation
}

func (s *fetchSession) commit(record domain.IntelligenceRecord) bool {
	o := s.orchestrator
	o.mu.Lock()
	defer o.mu.Unlock()

	if !s.currentLocked() || s.closed {
		return false
	}
	o.slots[s.slot].record = &record
	return true
}

func (s *fetchSession) arm(name string, d time.Duration, f func()) {
	o := s.orchestrator
	o.mu.Lock()
	defer o.mu.Unlock()
	s.armLocked(name, d, f)
}

func (s *fetchSession) armLocked(name string, d time.Duration, f func()) {
	if s.closed || d <= 0 {
		return
	}
	if existing, ok := s.timers[name]; ok {
		existing.Stop()
	}
	s.timers[name] = s.orchestrator.clock.AfterFunc(d, f)
}

func (s *fetchSession) disarm(name string) {
	o := s.orchestrator
	o.mu.Lock()
	defer o.mu.Unlock()

	if timer, ok := s.timers[name]; ok {
		timer.Stop()
		delete(s.timers, name)
	}
}

// update applies change to the slot state and notifies subscribers, unless the session
// has settled or been superseded.
func (s *fetchSession) update(change func(state *SessionState) bool) {
	o := s.orchestrator
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	if s.closed || !s.currentLocked() {
		o.mu.Unlock()
		return
	}
	st := o.slots[s.slot]
	if !change(&st.state) {
		o.mu.Unlock()
		return
	}
	snapshot := st.state
	subscribers := o.subscribersLocked()
	o.mu.Unlock()

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func (s *fetchSession) setStage(stage Stage, progress int) {
	s.update(func(state *SessionState) bool {
		if state.Generation != s.generation {
			*state = SessionState{Slot: s.slot, Generation: s.generation, CountryCode: s.code}
		}
		if !state.ColdStartSuspected {
			state.Stage = stage
			state.Label = stage.Label()
		}
		if progress > state.Progress {
			state.Progress = progress
		}
		return true
	})
}

func (s *fetchSession) suspectColdStart() {
	s.update(func(state *SessionState) bool {
		state.ColdStartSuspected = true
		state.Stage = StageColdStart
		state.Label = StageColdStart.Label()
		return true
	})
}

func (s *fetchSession) tick() {
	policy := s.orchestrator.policy
	rearm := false
	s.update(func(state *SessionState) bool {
		if state.Progress >= policy.ProgressCap {
			return false
		}
		state.Progress = min(state.Progress+policy.ProgressStep, policy.ProgressCap)
		rearm = state.Progress < policy.ProgressCap
		return true
	})
	if rearm {
		s.arm(timerProgress, policy.ProgressInterval, s.tick)
	}
}

// settle releases every timer and the session context. The slot returns to idle only if
// no newer session has taken it over.
func (s *fetchSession) settle() {
	o := s.orchestrator
	o.notifyMu.Lock()
	defer o.notifyMu.Unlock()

	o.mu.Lock()
	s.closed = true
	for name, timer := range s.timers {
		timer.Stop()
		delete(s.timers, name)
	}

	var (
		snapshot    SessionState
		subscribers []func(SessionState)
	)
	if s.currentLocked() {
		st := o.slots[s.slot]
		st.cancel = nil
		st.state = SessionState{Slot: s.slot, Generation: s.generation, CountryCode: s.code, Stage: StageIdle}
		snapshot = st.state
		subscribers = o.subscribersLocked()
	}
	o.mu.Unlock()

	s.cancel(nil)

	for _, fn := range subscribers {
		fn(snapshot)
	}
}

func (o *Orchestrator) subscribersLocked() []func(SessionState) {
	subscribers := make([]func(SessionState), 0, len(o.subscribers))
	for id := 0; id < o.nextSubID; id++ {
		if fn, ok := o.subscribers[id]; ok {
			subscribers = append(subscribers, fn)
		}
	}
	return subscribers
}
