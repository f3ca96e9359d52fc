package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/arhrid/agent-translator/config"
	"github.com/arhrid/agent-translator/internal/backend"
)

// Translator is one candidate backend the dispatcher can attempt.
// *backend.Backend satisfies it; tests substitute doubles.
type Translator interface {
	URL() string
	Translate(ctx context.Context, req backend.Request) (backend.Translation, error)
}

// Result is the outcome of a successful dispatch. DetectedSource is set only
// when the request's source was auto-detected and the backend reported it.
type Result struct {
	Text           string
	DetectedSource string
	BackendURL     string
	Elapsed        time.Duration
}

// Failure records why one candidate was skipped.
type Failure struct {
	URL   string
	Class backend.Class
	Err   error
}

// Exhausted is returned when every candidate failed. Failures holds one
// entry per candidate, in attempt order.
type Exhausted struct {
	Failures []Failure
}

func (e *Exhausted) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s (%s): %v", f.URL, f.Class, f.Err)
	}
	return fmt.Sprintf("all %d candidates failed: %s", len(e.Failures), strings.Join(parts, "; "))
}

type Dispatcher struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Dispatch tries each candidate strictly in order and stops at the first
// success. A candidate gets exactly one attempt; its failure is recorded and
// the next candidate is tried. Only exhaustion of the whole list is an error.
func (d *Dispatcher) Dispatch(ctx context.Context, candidates []Translator, req backend.Request) (Result, error) {
	if len(candidates) == 0 {
		return Result{}, errors.New("no candidates to dispatch")
	}

	failures := make([]Failure, 0, len(candidates))

	for _, candidate := range candidates {
		start := time.Now()

		translation, err := candidate.Translate(ctx, req)
		if err != nil {
			failures = append(failures, toFailure(candidate.URL(), err))

			d.logger.Warn("candidate failed, trying next",
				slog.String("backend", candidate.URL()),
				slog.String("class", failures[len(failures)-1].Class.String()),
				slog.String("error", err.Error()))
			continue
		}

		d.logger.Info("translation succeeded",
			slog.String("backend", candidate.URL()),
			slog.Duration("elapsed", time.Since(start)))

		return Result{
			Text:           translation.Text,
			DetectedSource: translation.DetectedSource,
			BackendURL:     candidate.URL(),
			Elapsed:        time.Since(start),
		}, nil
	}

	return Result{}, &Exhausted{Failures: failures}
}

// Build constructs the backend clients for an ordered candidate list. The
// local backend gets the short local timeout, everything else the remote one.
func Build(urls []string, pol config.Policy) []Translator {
	candidates := make([]Translator, 0, len(urls))

	for _, u := range urls {
		timeout := pol.RemoteTimeout
		if u == pol.LocalURL {
			timeout = pol.LocalTimeout
		}
		candidates = append(candidates, backend.New(u, timeout))
	}

	return candidates
}

func toFailure(url string, err error) Failure {
	var be *backend.Error
	if errors.As(err, &be) {
		return Failure{URL: url, Class: be.Class, Err: be.Err}
	}
	return Failure{URL: url, Class: backend.ClassUnreachable, Err: err}
}
