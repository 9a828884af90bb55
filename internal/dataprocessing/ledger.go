package dataprocessing

import (
	"context"
	"log/slog"
	"strconv"
	"sync"
	"sync/atomic"

	"tzzbcli/pkg/contracts/domain"
)

// Ledger keeps the running signed position per security code for one
// extraction run. It is shared by all file producers, so every update is
// serialized behind a mutex.
type Ledger struct {
	mu        sync.Mutex
	positions map[string]int64

	logger     *slog.Logger
	mismatches atomic.Int64
}

// NewLedger creates an empty ledger.
func NewLedger(logger *slog.Logger) *Ledger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ledger{
		positions: make(map[string]int64),
		logger:    logger.With(slog.String("component", "ledger")),
	}
}

// Apply accumulates one trade into the security's running position and
// returns the new total. A sell subtracts the magnitude; every other
// quantity-bearing action adds it.
func (l *Ledger) Apply(code string, action domain.TradeAction, magnitude int64) int64 {
	delta := magnitude
	if action == domain.ActionSell {
		delta = -magnitude
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.positions[code] += delta
	return l.positions[code]
}

// Position returns the current running total for a security code.
func (l *Ledger) Position(code string) int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.positions[code]
}

// Mismatches returns how many vendor cross-checks disagreed so far.
func (l *Ledger) Mismatches() int64 {
	return l.mismatches.Load()
}

// Settle finalizes a mapped line into its delivery order: the quantity gets
// its definitive sign, the running balance is attached, and the vendor's
// reported remaining quantity is cross-checked. Lines without a security
// code never touch the ledger.
func (l *Ledger) Settle(ctx context.Context, mapped *MappedLine) domain.DeliveryOrder {
	order := mapped.Order

	if !mapped.HasMagnitude {
		return order
	}

	signed := mapped.Magnitude
	if order.Action == domain.ActionSell {
		signed = -mapped.Magnitude
	}
	order.Quantity = strconv.FormatInt(signed, 10)

	if order.SecurityCode == "" {
		return order
	}

	total := l.Apply(order.SecurityCode, order.Action, mapped.Magnitude)
	order.RunningBalance = strconv.FormatInt(total, 10)

	// Advisory only: the locally computed total is authoritative either way.
	if mapped.HasVendorRemaining && mapped.VendorRemaining != total {
		l.mismatches.Add(1)
		l.logger.WarnContext(ctx, "ledger mismatch",
			slog.String("security_code", order.SecurityCode),
			slog.Int64("vendor_remaining", mapped.VendorRemaining),
			slog.Int64("computed_remaining", total),
			slog.String("date", order.Date))
	}

	return order
}
