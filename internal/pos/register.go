// Package pos implements the cart and checkout flow for a single register.
//
// A Register moves through a fixed set of states:
//
//	Idle -> Building -> SelectingPayment -> AwaitingCash | AwaitingConfirm -> Completed -> Idle
//
// Every operation either completes fully or leaves the register untouched;
// validation failures are recoverable and never corrupt the cart.
package pos

import (
	"strconv"
	"strings"
	"time"

	"github.com/tillworks/till/internal/common"
	"github.com/tillworks/till/internal/model"
)

// State identifies where the register is in the checkout flow.
type State int

const (
	// StateIdle means the cart is empty and no checkout is in progress.
	StateIdle State = iota
	// StateBuilding means the cart has at least one line.
	StateBuilding
	// StateSelectingPayment means checkout has begun and a payment method
	// has not yet been chosen.
	StateSelectingPayment
	// StateAwaitingCash means cash was chosen and the received amount has
	// not yet been accepted.
	StateAwaitingCash
	// StateAwaitingConfirm means a non-cash method was chosen; the amount
	// is fixed at the cart total.
	StateAwaitingConfirm
	// StateCompleted means a pending sale exists and is waiting to be
	// finalized into the ledger.
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateBuilding:
		return "building"
	case StateSelectingPayment:
		return "selecting-payment"
	case StateAwaitingCash:
		return "awaiting-cash"
	case StateAwaitingConfirm:
		return "awaiting-confirm"
	case StateCompleted:
		return "completed"
	}
	return "unknown"
}

// Register owns the in-progress cart and the checkout state machine.
// It is not safe for concurrent use; the application drives it from a
// single event loop.
type Register struct {
	now      func() time.Time
	pending  *model.Transaction
	method   model.PaymentMethod
	lines    []model.OrderLine
	received int64
	state    State
}

// NewRegister creates an empty register.
func NewRegister() *Register {
	return &Register{now: time.Now}
}

// State returns the current checkout state.
func (r *Register) State() State {
	return r.state
}

// Lines returns a copy of the current cart lines in insertion order.
func (r *Register) Lines() []model.OrderLine {
	out := make([]model.OrderLine, len(r.lines))
	copy(out, r.lines)
	return out
}

// Method returns the selected payment method, if any.
func (r *Register) Method() model.PaymentMethod {
	return r.method
}

// Pending returns the completed-but-unfinalized sale, or nil.
func (r *Register) Pending() *model.Transaction {
	return r.pending
}

// Subtotal returns the sum of price times quantity over all cart lines.
func (r *Register) Subtotal() int64 {
	var sum int64
	for _, l := range r.lines {
		sum += l.Amount()
	}
	return sum
}

// AddProduct puts one unit of the product in the cart, merging with an
// existing line for the same product ID. Placeholder catalog slots are
// ignored. Adding is only allowed while the cart is editable.
func (r *Register) AddProduct(p model.Product) {
	if p.Placeholder() {
		return
	}
	if r.state != StateIdle && r.state != StateBuilding {
		return
	}
	for i := range r.lines {
		if r.lines[i].ID == p.ID {
			r.lines[i].Quantity++
			r.state = StateBuilding
			return
		}
	}
	r.lines = append(r.lines, model.OrderLine{Product: p, Quantity: 1})
	r.state = StateBuilding
}

// AdjustQuantity changes the quantity of the line with the given product ID
// by delta, clamping at zero. A line that reaches zero is removed; an empty
// cart drops back to Idle.
func (r *Register) AdjustQuantity(id string, delta int) {
	if r.state != StateIdle && r.state != StateBuilding {
		return
	}
	for i := range r.lines {
		if r.lines[i].ID != id {
			continue
		}
		q := r.lines[i].Quantity + delta
		if q <= 0 {
			r.lines = append(r.lines[:i], r.lines[i+1:]...)
		} else {
			r.lines[i].Quantity = q
		}
		break
	}
	if len(r.lines) == 0 {
		r.state = StateIdle
	}
}

// ClearCart empties the cart and cancels any in-progress checkout.
func (r *Register) ClearCart() {
	r.lines = nil
	r.reset(StateIdle)
}

// BeginCheckout starts the payment flow. The cart must be non-empty.
func (r *Register) BeginCheckout() error {
	if len(r.lines) == 0 {
		return common.ErrEmptyCart
	}
	if r.state != StateBuilding {
		return common.ErrInvalidState
	}
	r.state = StateSelectingPayment
	return nil
}

// SelectMethod records the payment method. Cash moves to amount entry;
// the non-cash methods settle at exactly the subtotal and move straight
// to confirmation.
func (r *Register) SelectMethod(m model.PaymentMethod) error {
	if r.state != StateSelectingPayment && r.state != StateAwaitingCash && r.state != StateAwaitingConfirm {
		return common.ErrInvalidState
	}
	if !m.Valid() {
		return common.ErrInvalidMethod
	}
	r.method = m
	if m.IsCash() {
		r.received = 0
		r.state = StateAwaitingCash
	} else {
		r.received = r.Subtotal()
		r.state = StateAwaitingConfirm
	}
	return nil
}

// SubmitCash validates the entered cash amount. Non-numeric input counts
// as zero. An amount below the subtotal fails with ErrInsufficientFunds
// and leaves the register in amount entry.
func (r *Register) SubmitCash(input string) error {
	if r.state != StateAwaitingCash {
		return common.ErrInvalidState
	}
	amount := ParseCashAmount(input)
	if amount < r.Subtotal() {
		return common.ErrInsufficientFunds
	}
	r.received = amount
	return nil
}

// ParseCashAmount interprets user input as a whole amount in the smallest
// currency unit. Unparseable or negative input is treated as zero.
func ParseCashAmount(input string) int64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(input), 64)
	if err != nil || f < 0 {
		return 0
	}
	return int64(f)
}

// Confirm produces the pending sale snapshot. For cash the received amount
// must already have been accepted by SubmitCash; for non-cash methods the
// received amount equals the subtotal and change is zero. The sale is not
// yet part of any ledger; Finalize commits it.
func (r *Register) Confirm() (*model.Transaction, error) {
	if r.state != StateAwaitingCash && r.state != StateAwaitingConfirm {
		return nil, common.ErrInvalidState
	}
	subtotal := r.Subtotal()
	if r.received < subtotal {
		return nil, common.ErrInsufficientFunds
	}

	now := r.now()
	items := make([]model.OrderLine, len(r.lines))
	copy(items, r.lines)

	change := r.received - subtotal
	if change < 0 {
		change = 0
	}

	r.pending = &model.Transaction{
		ID:        model.NewTransactionID(now),
		Timestamp: now.UnixMilli(),
		Items:     items,
		Total:     subtotal,
		Method:    r.method,
		Received:  r.received,
		Change:    change,
	}
	r.state = StateCompleted
	return r.pending, nil
}

// Finalize hands over the pending sale exactly once and resets the
// register to Idle. A second call without a new checkout fails, so a
// sale can never be committed twice.
func (r *Register) Finalize() (*model.Transaction, error) {
	if r.state != StateCompleted || r.pending == nil {
		return nil, common.ErrNoPendingSale
	}
	tx := r.pending
	r.lines = nil
	r.reset(StateIdle)
	return tx, nil
}

// Abort cancels the checkout flow without touching the cart. Any pending
// sale is discarded before it reaches the ledger.
func (r *Register) Abort() {
	if len(r.lines) == 0 {
		r.reset(StateIdle)
		return
	}
	r.reset(StateBuilding)
}

func (r *Register) reset(s State) {
	r.pending = nil
	r.method = ""
	r.received = 0
	r.state = s
}
