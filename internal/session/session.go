// Package session owns the single display slot of a solving session.
//
// A submission runs in two halves. Submit does the slow part (request,
// decode, render) and touches no session state, so it can run on any
// goroutine. Accept is the only writer of the slot and is called in the
// order replies arrive, so the last reply to arrive is the one shown:
//
//	Program → Submit → Reply → Accept → display slot
//
// Nothing is cancelled when a newer submission starts.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"simplex/internal/logging"
	"simplex/internal/lp"
	"simplex/internal/result"
	"simplex/internal/solver"

	"github.com/google/uuid"
)

// Solver sends one program to the solving service.
type Solver interface {
	Solve(ctx context.Context, p lp.Program, requestID string) (*result.Response, error)
	Endpoint() string
}

// Options controls how replies are interpreted.
type Options struct {
	Decode result.DecodeOptions
}

// Reply is the outcome of one submission. Exactly one of Certificate and Err
// is meaningful.
type Reply struct {
	ID          string
	Program     lp.Program
	Outcome     result.Outcome
	Certificate result.Certificate
	Err         error
	Elapsed     time.Duration
}

// OK reports whether the submission produced a certificate.
func (r Reply) OK() bool { return r.Err == nil }

// Kind classifies a failed reply.
func (r Reply) Kind() solver.Kind { return solver.KindOf(r.Err) }

// Session holds the display slot.
type Session struct {
	mu sync.RWMutex

	solver Solver
	opts   Options

	current  *Reply
	failure  *Reply
	accepted int
}

// New creates a session with an empty display slot.
func New(s Solver, opts Options) *Session {
	logging.Session("Creating session for %s", s.Endpoint())
	return &Session{
		solver: s,
		opts:   opts,
	}
}

// Submit sends p and interprets the reply. It issues exactly one request and
// does not modify the session.
func (s *Session) Submit(ctx context.Context, p lp.Program) Reply {
	reply := Reply{
		ID:      uuid.NewString(),
		Program: p,
	}
	start := time.Now()

	logging.Audit(logging.AuditEvent{
		EventType:    logging.AuditSubmitSent,
		SubmissionID: reply.ID,
		Endpoint:     s.solver.Endpoint(),
	})

	resp, err := s.solver.Solve(ctx, p, reply.ID)
	if err == nil {
		reply.Outcome, err = result.Decode(resp, s.opts.Decode)
	}
	reply.Elapsed = time.Since(start)

	if err != nil {
		reply.Err = err
		s.auditFailure(reply)
		return reply
	}

	if u, ok := reply.Outcome.(result.Unrecognized); ok {
		logging.RenderWarn("submission %s: unrecognized resultType %q rendered as a solution", reply.ID, u.Tag)
	}
	reply.Certificate = result.Render(reply.Outcome)

	logging.Audit(logging.AuditEvent{
		EventType:    logging.AuditSubmitSolved,
		SubmissionID: reply.ID,
		ResultType:   reply.Outcome.ResultType(),
		Duration:     reply.Elapsed,
	})
	logging.SessionDebug("submission %s solved: %s in %v", reply.ID, reply.Outcome.ResultType(), reply.Elapsed)
	return reply
}

func (s *Session) auditFailure(reply Reply) {
	kind := reply.Kind()
	event := logging.AuditEvent{
		EventType:    logging.AuditSubmitFailed,
		SubmissionID: reply.ID,
		ErrorKind:    kind.String(),
		Duration:     reply.Elapsed,
		Message:      reply.Err.Error(),
	}
	var rejected *solver.ServerRejectedError
	if errors.As(reply.Err, &rejected) {
		event.StatusCode = rejected.StatusCode
	}
	logging.Audit(event)
	logging.Get(logging.CategorySession).With("submission", reply.ID, "kind", kind.String()).
		Warn("submission failed: %v", reply.Err)
}

// Accept applies a reply to the display slot and reports whether the slot
// changed. A success replaces the slot wholesale and clears the last failure.
// A failure is recorded and the previous result stays visible.
func (s *Session) Accept(reply Reply) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.accepted++
	if !reply.OK() {
		s.failure = &reply
		return false
	}

	var previous string
	if s.current != nil {
		previous = s.current.ID
	}
	s.current = &reply
	s.failure = nil

	logging.Audit(logging.AuditEvent{
		EventType:    logging.AuditDisplayReplace,
		SubmissionID: reply.ID,
		ResultType:   reply.Certificate.ResultType,
		Message:      previous,
	})
	return true
}

// Current returns the reply in the display slot.
func (s *Session) Current() (Reply, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Reply{}, false
	}
	return *s.current, true
}

// LastFailure returns the failed reply accepted since the last success.
func (s *Session) LastFailure() (Reply, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failure == nil {
		return Reply{}, false
	}
	return *s.failure, true
}

// LastError returns the error of LastFailure, or nil.
func (s *Session) LastError() error {
	if r, ok := s.LastFailure(); ok {
		return r.Err
	}
	return nil
}

// Accepted returns how many replies have been applied.
func (s *Session) Accepted() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accepted
}

// Endpoint returns where submissions go.
func (s *Session) Endpoint() string {
	return s.solver.Endpoint()
}
