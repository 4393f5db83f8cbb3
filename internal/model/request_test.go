package model

import (
	"testing"
	"time"

	"go-storage-hub/internal/apperr"
)

func TestItemRequestGuards(t *testing.T) {
	statuses := []string{IntakeStatusPending, IntakeStatusApproved, IntakeStatusRejected}

	for _, status := range statuses {
		r := &ItemRequest{Status: status}
		wantOK := status == IntakeStatusPending

		if err := r.CanApprove(); (err == nil) != wantOK {
			t.Errorf("CanApprove() with status %q: err = %v, want ok = %v", status, err, wantOK)
		}
		if err := r.CanReject(); (err == nil) != wantOK {
			t.Errorf("CanReject() with status %q: err = %v, want ok = %v", status, err, wantOK)
		}
	}
}

func TestBorrowRequestManagerGate(t *testing.T) {
	allStatuses := []string{
		BorrowStatusPendingManager, BorrowStatusPendingStorage, BorrowStatusActive,
		BorrowStatusRejected, BorrowStatusPendingReturn, BorrowStatusReturned,
		BorrowStatusPending, BorrowStatusApproved,
	}

	for _, status := range allStatuses {
		b := &BorrowRequest{Status: status}
		err := b.CanManagerDecide()
		wantOK := status == BorrowStatusPendingManager
		if (err == nil) != wantOK {
			t.Errorf("CanManagerDecide() with status %q: err = %v, want ok = %v", status, err, wantOK)
		}
		if err != nil && apperr.KindOf(err) != apperr.KindPreconditionFailed {
			t.Errorf("CanManagerDecide() with status %q: kind = %v, want precondition", status, apperr.KindOf(err))
		}
	}
}

func TestBorrowRequestStorageGate(t *testing.T) {
	allStatuses := []string{
		BorrowStatusPendingManager, BorrowStatusPendingStorage, BorrowStatusActive,
		BorrowStatusRejected, BorrowStatusPendingReturn, BorrowStatusReturned,
		BorrowStatusPending, BorrowStatusApproved,
	}

	for _, status := range allStatuses {
		b := &BorrowRequest{Status: status}
		err := b.CanStorageDecide()
		wantOK := status == BorrowStatusPendingStorage
		if (err == nil) != wantOK {
			t.Errorf("CanStorageDecide() with status %q: err = %v, want ok = %v", status, err, wantOK)
		}
	}
}

func TestBorrowRequestLegacyReject(t *testing.T) {
	allStatuses := []string{
		BorrowStatusPending, BorrowStatusApproved, BorrowStatusPendingManager,
		BorrowStatusActive, BorrowStatusRejected,
	}

	for _, status := range allStatuses {
		b := &BorrowRequest{Status: status}
		err := b.CanLegacyReject()
		wantOK := status == BorrowStatusPending
		if (err == nil) != wantOK {
			t.Errorf("CanLegacyReject() with status %q: err = %v, want ok = %v", status, err, wantOK)
		}
	}
}

func TestBorrowRequestReturnFlow(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		borrow  BorrowRequest
		wantErr bool
	}{
		{
			name:   "active borrow can request return",
			borrow: BorrowRequest{Status: BorrowStatusActive},
		},
		{
			name:   "legacy approved borrow can request return",
			borrow: BorrowRequest{Status: BorrowStatusApproved},
		},
		{
			name:    "pending borrow cannot request return",
			borrow:  BorrowRequest{Status: BorrowStatusPendingStorage},
			wantErr: true,
		},
		{
			name:    "returned borrow cannot request return",
			borrow:  BorrowRequest{Status: BorrowStatusReturned},
			wantErr: true,
		},
		{
			name:    "duplicate return request rejected",
			borrow:  BorrowRequest{Status: BorrowStatusActive, ReturnRequestedAt: &now},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.borrow.CanRequestReturn()
			if (err != nil) != tt.wantErr {
				t.Errorf("CanRequestReturn() err = %v, wantErr = %v", err, tt.wantErr)
			}
		})
	}
}

func TestBorrowRequestApproveReturnAndReceive(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name        string
		borrow      BorrowRequest
		wantApprove bool
		wantReceive bool
	}{
		{
			name:        "no return requested",
			borrow:      BorrowRequest{Status: BorrowStatusActive},
			wantApprove: false,
			wantReceive: false,
		},
		{
			name:        "return requested, not yet approved",
			borrow:      BorrowRequest{Status: BorrowStatusPendingReturn, ReturnRequestedAt: &now},
			wantApprove: true,
			wantReceive: false,
		},
		{
			name: "return approved, not yet received",
			borrow: BorrowRequest{
				Status:            BorrowStatusReturned,
				ReturnRequestedAt: &now,
				ReturnApprovedAt:  &now,
			},
			wantApprove: false,
			wantReceive: true,
		},
		{
			name: "already received",
			borrow: BorrowRequest{
				Status:            BorrowStatusReturned,
				ReturnRequestedAt: &now,
				ReturnApprovedAt:  &now,
				ReceivedAt:        &now,
			},
			wantApprove: false,
			wantReceive: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.borrow.CanApproveReturn(); (err == nil) != tt.wantApprove {
				t.Errorf("CanApproveReturn() err = %v, want ok = %v", err, tt.wantApprove)
			}
			if err := tt.borrow.CanReceive(); (err == nil) != tt.wantReceive {
				t.Errorf("CanReceive() err = %v, want ok = %v", err, tt.wantReceive)
			}
		})
	}
}
