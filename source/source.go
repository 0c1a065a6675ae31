// Package source defines the contract that every hunting source satisfies.
package source

import (
	"context"
	"errors"
)

// Common errors returned by source adapters.
var (
	ErrNoCredentials = errors.New("no API credentials configured")
	ErrNotFound      = errors.New("no records found")
	ErrRateLimited   = errors.New("rate limited")
)

// Hints carries optional partial-identity data that some sources use
// to narrow their queries. All fields may be empty.
type Hints struct {
	FirstName  string
	LastName   string
	City       string
	State      string
	PostalCode string
	Address    string
}

// Query is the input to a single hunt: the phone number under
// investigation plus whatever partial identity the caller already has.
type Query struct {
	Phone string
	Hints Hints
}

// Result is what every source returns. Only Found and Names feed the
// correlation engine; Fields carries auxiliary data (carrier, line
// type, age, addresses) passed through to the final report.
type Result struct {
	Found  bool              `json:"found"`
	Names  []string          `json:"names,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Source is one external data provider. Hunt may block on network I/O
// and must honor ctx cancellation. A failed lookup is an error; an
// empty but successful lookup is Result{Found: false} with a nil error.
type Source interface {
	Name() string
	Hunt(ctx context.Context, q Query) (Result, error)
}

// Func adapts a plain function to the Source interface. Used by tests
// and by callers composing ad-hoc sources.
type Func struct {
	SourceName string
	HuntFunc   func(ctx context.Context, q Query) (Result, error)
}

// Name returns the source tag.
func (f Func) Name() string { return f.SourceName }

// Hunt invokes the wrapped function.
func (f Func) Hunt(ctx context.Context, q Query) (Result, error) {
	return f.HuntFunc(ctx, q)
}
