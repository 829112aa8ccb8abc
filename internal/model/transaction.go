package model

import (
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"time"
)

// PaymentMethod identifies how a sale was settled.
type PaymentMethod string

// The closed set of supported payment methods.
const (
	PaymentCash   PaymentMethod = "cash"
	PaymentLeke   PaymentMethod = "leke"
	PaymentMobile PaymentMethod = "mobile"
)

// Valid reports whether m is one of the supported methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentLeke, PaymentMobile:
		return true
	}
	return false
}

// IsCash reports whether the method requires a manually entered amount.
// The non-cash methods settle at exactly the order total.
func (m PaymentMethod) IsCash() bool {
	return m == PaymentCash
}

// Transaction is an immutable record of one completed sale. Items are a
// frozen copy of the cart at checkout time. Timestamp is epoch milliseconds
// to match the persisted wire format.
type Transaction struct {
	ID        string        `json:"id"`
	Timestamp int64         `json:"timestamp"`
	Items     []OrderLine   `json:"items"`
	Total     int64         `json:"total"`
	Method    PaymentMethod `json:"paymentMethod"`
	Received  int64         `json:"receivedAmount,omitempty"`
	Change    int64         `json:"changeAmount,omitempty"`
}

// Time returns the creation time of the transaction.
func (t Transaction) Time() time.Time {
	return time.UnixMilli(t.Timestamp)
}

// NewTransactionID derives an identifier from the given time. A short
// random suffix keeps two checkouts completing in the same millisecond
// from colliding.
func NewTransactionID(now time.Time) string {
	var b [2]byte
	_, _ = rand.Read(b[:])
	return "TX-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + hex.EncodeToString(b[:])
}
