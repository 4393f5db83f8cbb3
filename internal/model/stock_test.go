package model

import (
	"testing"

	"go-storage-hub/internal/apperr"
)

func TestItemStockMove(t *testing.T) {
	tests := []struct {
		name     string
		start    ItemStock
		from     StockState
		to       StockState
		quantity int
		wantKind apperr.Kind
		wantErr  bool
	}{
		{
			name:     "storage to clearance",
			start:    ItemStock{InStorage: 10},
			from:     StockStateStorage,
			to:       StockStateClearance,
			quantity: 4,
		},
		{
			name:     "storage to transit full amount",
			start:    ItemStock{InStorage: 3},
			from:     StockStateStorage,
			to:       StockStateTransit,
			quantity: 3,
		},
		{
			name:     "underflow rejected",
			start:    ItemStock{InStorage: 2},
			from:     StockStateStorage,
			to:       StockStateClearance,
			quantity: 3,
			wantErr:  true,
			wantKind: apperr.KindInsufficientQuantity,
		},
		{
			name:     "empty source rejected",
			start:    ItemStock{InClearance: 5},
			from:     StockStateStorage,
			to:       StockStateClearance,
			quantity: 1,
			wantErr:  true,
			wantKind: apperr.KindInsufficientQuantity,
		},
		{
			name:     "zero quantity rejected",
			start:    ItemStock{InStorage: 10},
			from:     StockStateStorage,
			to:       StockStateClearance,
			quantity: 0,
			wantErr:  true,
			wantKind: apperr.KindPreconditionFailed,
		},
		{
			name:     "negative quantity rejected",
			start:    ItemStock{InStorage: 10},
			from:     StockStateStorage,
			to:       StockStateClearance,
			quantity: -2,
			wantErr:  true,
			wantKind: apperr.KindPreconditionFailed,
		},
		{
			name:     "same bucket rejected",
			start:    ItemStock{InStorage: 10},
			from:     StockStateStorage,
			to:       StockStateStorage,
			quantity: 1,
			wantErr:  true,
			wantKind: apperr.KindPreconditionFailed,
		},
		{
			name:     "unknown source state rejected",
			start:    ItemStock{InStorage: 10},
			from:     StockState("limbo"),
			to:       StockStateStorage,
			quantity: 1,
			wantErr:  true,
			wantKind: apperr.KindPreconditionFailed,
		},
		{
			name:     "unknown destination state rejected",
			start:    ItemStock{InStorage: 10},
			from:     StockStateStorage,
			to:       StockState("limbo"),
			quantity: 1,
			wantErr:  true,
			wantKind: apperr.KindPreconditionFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stock := tt.start
			total := stock.InStorage + stock.InClearance + stock.InTransit

			err := stock.Move(tt.from, tt.to, tt.quantity)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if got := apperr.KindOf(err); got != tt.wantKind {
					t.Errorf("error kind = %v, want %v", got, tt.wantKind)
				}
				// Failed move must leave every bucket untouched.
				if stock != tt.start {
					t.Errorf("stock mutated on failed move: %+v", stock)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if got := stock.Balance(tt.from); got != tt.start.Balance(tt.from)-tt.quantity {
				t.Errorf("source balance = %d, want %d", got, tt.start.Balance(tt.from)-tt.quantity)
			}
			if got := stock.Balance(tt.to); got != tt.start.Balance(tt.to)+tt.quantity {
				t.Errorf("destination balance = %d, want %d", got, tt.start.Balance(tt.to)+tt.quantity)
			}
			if sum := stock.InStorage + stock.InClearance + stock.InTransit; sum != total {
				t.Errorf("total changed: got %d, want %d", sum, total)
			}
		})
	}
}

func TestItemStockMoveRoundTrip(t *testing.T) {
	stock := ItemStock{InStorage: 7}

	if err := stock.Move(StockStateStorage, StockStateClearance, 5); err != nil {
		t.Fatalf("move out: %v", err)
	}
	if err := stock.Move(StockStateClearance, StockStateStorage, 5); err != nil {
		t.Fatalf("move back: %v", err)
	}

	if stock.InStorage != 7 || stock.InClearance != 0 || stock.InTransit != 0 {
		t.Errorf("round trip did not restore buckets: %+v", stock)
	}
}

func TestItemStockBucketsNeverNegative(t *testing.T) {
	stock := ItemStock{InStorage: 1, InClearance: 1, InTransit: 1}
	states := []StockState{StockStateStorage, StockStateClearance, StockStateTransit}

	// Drain every bucket in both directions; no sequence of moves may push
	// any counter below zero.
	for _, from := range states {
		for _, to := range states {
			if from == to {
				continue
			}
			_ = stock.Move(from, to, 2)
			_ = stock.Move(from, to, 1)
		}
	}

	if stock.InStorage < 0 || stock.InClearance < 0 || stock.InTransit < 0 {
		t.Errorf("negative bucket after moves: %+v", stock)
	}
	if sum := stock.InStorage + stock.InClearance + stock.InTransit; sum != 3 {
		t.Errorf("total changed: got %d, want 3", sum)
	}
}

func TestItemStockBalanceUnknownState(t *testing.T) {
	stock := ItemStock{InStorage: 5}
	if got := stock.Balance(StockState("limbo")); got != 0 {
		t.Errorf("Balance(unknown) = %d, want 0", got)
	}
}
