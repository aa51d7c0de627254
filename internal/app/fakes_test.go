package app

import (
	"context"
	"io"
	"sync"

	"guardian_notifier/internal/domain/notification"
	"guardian_notifier/internal/domain/scoring"
	"guardian_notifier/internal/domain/student"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func flex(s string) *student.FlexString {
	f := student.FlexString(s)
	return &f
}

func str(s string) *string { return &s }

type fakeSigner struct {
	err error
}

func (f fakeSigner) SignPublicLink(studentID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "https://progress.example/s/" + studentID, nil
}

type fakeOpener struct {
	mu        sync.Mutex
	blocked   bool
	panicWith interface{}
	urls      []string
}

func (o *fakeOpener) OpenExternalChannel(_ context.Context, url string) bool {
	if o.panicWith != nil {
		panic(o.panicWith)
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.urls = append(o.urls, url)
	return !o.blocked
}

func (o *fakeOpener) calls() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.urls)
}

type outcomeCall struct {
	StudentID string
	Lesson    string
	Delivered bool
}

// memoryOutcomes keeps one row per (student, lesson) like the postgres upsert.
type memoryOutcomes struct {
	mu    sync.Mutex
	rows  map[[2]string]bool
	calls []outcomeCall
	err   error
}

func newMemoryOutcomes() *memoryOutcomes {
	return &memoryOutcomes{rows: make(map[[2]string]bool)}
}

func (m *memoryOutcomes) UpsertDispatchOutcome(_ context.Context, studentID, lesson string, delivered bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, outcomeCall{studentID, lesson, delivered})
	if m.err != nil {
		return m.err
	}
	m.rows[[2]string{studentID, lesson}] = delivered
	return nil
}

func (m *memoryOutcomes) ListDispatchOutcomes(_ context.Context, studentID string, _ []string) ([]*notification.DispatchOutcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*notification.DispatchOutcome
	for k, v := range m.rows {
		if k[0] == studentID {
			out = append(out, &notification.DispatchOutcome{StudentID: k[0], Lesson: k[1], Delivered: v})
		}
	}
	return out, nil
}

func (m *memoryOutcomes) snapshot() ([]outcomeCall, map[[2]string]bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rows := make(map[[2]string]bool, len(m.rows))
	for k, v := range m.rows {
		rows[k] = v
	}
	return append([]outcomeCall(nil), m.calls...), rows
}

type fakeHistory struct {
	mu      sync.Mutex
	entries map[scoring.Type]*scoring.HistoryEntry
	errs    map[scoring.Type]error
	lookups []scoring.Type
	ctxErrs []error
}

func (h *fakeHistory) GetLastHistory(ctx context.Context, _ string, t scoring.Type, _ string) (*scoring.HistoryEntry, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.lookups = append(h.lookups, t)
	h.ctxErrs = append(h.ctxErrs, ctx.Err())
	if err := h.errs[t]; err != nil {
		return nil, err
	}
	if e, ok := h.entries[t]; ok {
		return e, nil
	}
	return nil, scoring.ErrHistoryNotFound
}

type fakeScoringClient struct {
	mu       sync.Mutex
	failFor  map[scoring.Type]error
	requests []scoring.Request
}

func (c *fakeScoringClient) SubmitScoringRequest(_ context.Context, req scoring.Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return c.failFor[req.Type]
}

func (c *fakeScoringClient) byType() map[scoring.Type]scoring.Request {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[scoring.Type]scoring.Request, len(c.requests))
	for _, r := range c.requests {
		out[r.Type] = r
	}
	return out
}

func (c *fakeScoringClient) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.requests)
}

type recordingListener struct {
	mu           sync.Mutex
	sent         []bool
	scoreChanges int
}

func (l *recordingListener) MessageSent(_ string, delivered bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sent = append(l.sent, delivered)
}

func (l *recordingListener) ScoreChanged(string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scoreChanges++
}

func (l *recordingListener) counts() (int, int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sent), l.scoreChanges
}
