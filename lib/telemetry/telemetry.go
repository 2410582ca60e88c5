package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics so that extraction code never
// writes to a particular output medium directly. Implementations receive
// structured progress events and decide what to do with them.
type API interface {
	// ReportBroken reports a component that has broken in a way that should
	// be addressed. The id names the component, e.g. `prober.fetch`.
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that is recoverable but may be worth
	// investigating, e.g. a candidate endpoint returning a non-200 status.
	ReportWarning(id string, params ...any)

	// ReportDebug reports progress information ignored in production.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the size of something at the current time, e.g.
	// tables found on a page or records extracted for a contest.
	ReportCount(id string, count int64)
}

// ScopedAPI attaches a namespace to every event passed through it, similar
// to creating a sub-logger with a fixed prefix.
type ScopedAPI struct {
	namespace string
	inner     API
}

func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}

// NoopAPI discards every event. Useful as a default in tests.
type NoopAPI struct{}

func (NoopAPI) ReportBroken(id string, params ...any)  {}
func (NoopAPI) ReportWarning(id string, params ...any) {}
func (NoopAPI) ReportDebug(msg string, params ...any)  {}
func (NoopAPI) ReportCount(id string, count int64)     {}
