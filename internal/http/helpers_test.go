package http

import (
	"io"
	"time"

	"log/slog"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// recorderStub counts metric calls for assertions.
type recorderStub struct {
	loginSuccesses int
	loginFailures  map[string]int
	verifications  map[string]int
}

func newRecorderStub() *recorderStub {
	return &recorderStub{
		loginFailures: make(map[string]int),
		verifications: make(map[string]int),
	}
}

func (r *recorderStub) RecordLoginSuccess() {
	r.loginSuccesses++
}

func (r *recorderStub) RecordLoginFailure(reason string) {
	r.loginFailures[reason]++
}

func (r *recorderStub) RecordTokenVerification(result string) {
	r.verifications[result]++
}

func (r *recorderStub) RecordRequestDuration(time.Duration) {}
