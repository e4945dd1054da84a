package explore

import (
	"context"
	"fmt"

	"github.com/moltstreet/mstctl/internal/util"
)

// CommandKind identifies a row-level mutation.
type CommandKind int

const (
	CancelOrder CommandKind = iota
	ApproveAction
	RejectAction
	DeleteAction
)

func (k CommandKind) String() string {
	switch k {
	case CancelOrder:
		return "cancel-order"
	case ApproveAction:
		return "approve-action"
	case RejectAction:
		return "reject-action"
	case DeleteAction:
		return "delete-action"
	default:
		return fmt.Sprintf("command(%d)", int(k))
	}
}

// RowState tracks a row's command lifecycle.
type RowState int

const (
	RowIdle RowState = iota
	RowPending
	RowFailed
)

// ExecFunc performs one mutation against the exchange API. payload carries
// kind-specific data (the rejection reason, for reject-action).
type ExecFunc func(ctx context.Context, kind CommandKind, rowID, payload string) error

// Dispatcher issues single-row mutation commands while guarding against
// duplicate submissions: a row with a command in flight may not be the target
// of a second one until the first resolves. Commands on distinct rows do not
// serialize against each other.
type Dispatcher struct {
	exec     ExecFunc
	notifier *Notifier
	allowed  map[CommandKind][]string

	rows map[string]RowState
	errs map[string]string
}

// DefaultSourceStatuses returns the statuses each command may be issued from:
// cancel only from open/partial orders, approve/reject/delete only from
// pending actions.
func DefaultSourceStatuses() map[CommandKind][]string {
	return map[CommandKind][]string{
		CancelOrder:   {"open", "partial"},
		ApproveAction: {"pending"},
		RejectAction:  {"pending"},
		DeleteAction:  {"pending"},
	}
}

// NewDispatcher builds a dispatcher around an executor and a notifier. The
// notifier receives an EventRefresh after every successful command so the
// owning screen re-fetches rather than patching local state.
func NewDispatcher(exec ExecFunc, notifier *Notifier) *Dispatcher {
	return &Dispatcher{
		exec:     exec,
		notifier: notifier,
		allowed:  DefaultSourceStatuses(),
		rows:     make(map[string]RowState),
		errs:     make(map[string]string),
	}
}

// State returns the row's command lifecycle state.
func (d *Dispatcher) State(rowID string) RowState {
	return d.rows[rowID]
}

// Busy reports whether a command for the row is in flight. The presentation
// layer disables the row's controls while this is true.
func (d *Dispatcher) Busy(rowID string) bool {
	return d.rows[rowID] == RowPending
}

// FailureMessage returns the last command failure for the row, or "".
func (d *Dispatcher) FailureMessage(rowID string) string {
	return d.errs[rowID]
}

// Allowed reports whether the command may be issued from the given row
// status.
func (d *Dispatcher) Allowed(kind CommandKind, status string) bool {
	for _, s := range d.allowed[kind] {
		if s == status {
			return true
		}
	}
	return false
}

// Begin validates and registers a command without executing it. It rejects —
// before any network call — commands on busy rows and commands whose source
// status is outside the kind's allowed set. On acceptance the row enters the
// busy set.
//
// Interactive screens split Begin/Finish around an asynchronous executor;
// Execute composes them for synchronous callers.
func (d *Dispatcher) Begin(kind CommandKind, rowID, status string) error {
	if d.rows[rowID] == RowPending {
		return fmt.Errorf("%s %s: %w", kind, rowID, util.ErrRowBusy)
	}
	if !d.Allowed(kind, status) {
		return fmt.Errorf("%s not allowed from status %q: %w", kind, status, util.ErrStatusForbidden)
	}
	d.rows[rowID] = RowPending
	delete(d.errs, rowID)
	return nil
}

// Finish resolves a begun command. Success clears the row from the busy set
// and publishes a refresh request; failure marks the row failed (re-issuable)
// and surfaces the error without touching the collection.
func (d *Dispatcher) Finish(kind CommandKind, rowID string, err error) {
	if err != nil {
		d.rows[rowID] = RowFailed
		d.errs[rowID] = err.Error()
		d.notifier.Publish(Event{Kind: EventError, RowID: rowID, Message: fmt.Sprintf("%s failed: %s", kind, err)})
		return
	}
	delete(d.rows, rowID)
	delete(d.errs, rowID)
	d.notifier.Publish(Event{Kind: EventSuccess, RowID: rowID, Message: fmt.Sprintf("%s succeeded", kind)})
	d.notifier.Publish(Event{Kind: EventRefresh, RowID: rowID})
}

// Run calls the executor for a command already accepted by Begin.
func (d *Dispatcher) Run(ctx context.Context, kind CommandKind, rowID, payload string) error {
	return d.exec(ctx, kind, rowID, payload)
}

// Execute issues a command synchronously: Begin, Run, Finish. status is the
// row's current status as displayed.
func (d *Dispatcher) Execute(ctx context.Context, kind CommandKind, rowID, status, payload string) error {
	if err := d.Begin(kind, rowID, status); err != nil {
		return err
	}
	err := d.exec(ctx, kind, rowID, payload)
	d.Finish(kind, rowID, err)
	return err
}
