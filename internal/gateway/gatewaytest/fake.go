// Package gatewaytest provides an in-memory gateway.Gateway that records every call.
package gatewaytest

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
)

// Op names a gateway method.
type Op string

const (
	OpGetUser    Op = "GetUser"
	OpGetProfile Op = "GetProfile"
	OpInsert     Op = "Insert"
	OpUpdate     Op = "Update"
	OpDelete     Op = "Delete"
	OpCall       Op = "Call"
	OpPing       Op = "Ping"
)

// Invocation is one recorded gateway call.
type Invocation struct {
	Op          Op
	AccessToken string
	UserID      string
	Table       string
	Fn          string
	Values      map[string]any
	Filter      gateway.Filter
	Args        map[string]any
}

var _ gateway.Gateway = (*Fake)(nil)

// Fake answers from its fields. Zero fields yield zero results and nil errors.
type Fake struct {
	mu    sync.Mutex
	calls []Invocation

	Users      map[string]model.User
	UserErr    error
	Profiles   map[string]model.Profile
	ProfileErr error

	InsertID  string
	InsertErr error
	UpdateErr error
	// UpdateErrs fails Update calls on the given table.
	UpdateErrs map[string]error
	DeleteErr  error

	Results map[string]json.RawMessage
	CallErr error
	PingErr error
}

func New() *Fake {
	return &Fake{
		Users:    map[string]model.User{},
		Profiles: map[string]model.Profile{},
		Results:  map[string]json.RawMessage{},
	}
}

// WithUser registers a session for token owned by a user with the given role.
func (f *Fake) WithUser(token, userID string, role model.Role) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Users[token] = model.User{ID: userID}
	f.Profiles[userID] = model.Profile{UserID: userID, Role: role}
	return f
}

// WithResult sets the raw result returned by fn.
func (f *Fake) WithResult(fn, raw string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.Results[fn] = json.RawMessage(raw)
	return f
}

// Calls returns the recorded invocations in order.
func (f *Fake) Calls() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]Invocation(nil), f.calls...)
}

// CallsOf returns the recorded invocations of op.
func (f *Fake) CallsOf(op Op) []Invocation {
	var out []Invocation
	for _, c := range f.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) record(inv Invocation) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, inv)
}

func (f *Fake) GetUser(_ context.Context, accessToken string) (model.User, error) {
	f.record(Invocation{Op: OpGetUser, AccessToken: accessToken})
	if f.UserErr != nil {
		return model.User{}, f.UserErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.Users[accessToken]
	if !ok {
		return model.User{}, &gateway.Error{Status: http.StatusUnauthorized, Message: "invalid JWT"}
	}
	return user, nil
}

func (f *Fake) GetProfile(_ context.Context, userID string) (model.Profile, error) {
	f.record(Invocation{Op: OpGetProfile, UserID: userID})
	if f.ProfileErr != nil {
		return model.Profile{}, f.ProfileErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	profile, ok := f.Profiles[userID]
	if !ok {
		return model.Profile{}, gateway.ErrNotFound
	}
	return profile, nil
}

func (f *Fake) Insert(_ context.Context, table string, values map[string]any) (string, error) {
	f.record(Invocation{Op: OpInsert, Table: table, Values: values})
	if f.InsertErr != nil {
		return "", f.InsertErr
	}
	return f.InsertID, nil
}

func (f *Fake) Update(_ context.Context, table string, values map[string]any, filter gateway.Filter) error {
	f.record(Invocation{Op: OpUpdate, Table: table, Values: values, Filter: filter})
	if err, ok := f.UpdateErrs[table]; ok {
		return err
	}
	return f.UpdateErr
}

func (f *Fake) Delete(_ context.Context, table string, filter gateway.Filter) error {
	f.record(Invocation{Op: OpDelete, Table: table, Filter: filter})
	return f.DeleteErr
}

func (f *Fake) Call(_ context.Context, accessToken, fn string, args map[string]any) (json.RawMessage, error) {
	f.record(Invocation{Op: OpCall, AccessToken: accessToken, Fn: fn, Args: args})
	if f.CallErr != nil {
		return nil, f.CallErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if raw, ok := f.Results[fn]; ok {
		return raw, nil
	}
	return json.RawMessage("null"), nil
}

func (f *Fake) Ping(context.Context) error {
	f.record(Invocation{Op: OpPing})
	return f.PingErr
}
