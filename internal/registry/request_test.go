package registry

import (
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code    StatusCode
		str     string
		failure bool
	}{
		{InProgress, "InProgress", false},
		{Success, "Success", false},
		{Failure, "Failure", true},
		{Failure + 1, "Unknown", true},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := IsFailure(tt.code); got != tt.failure {
			t.Errorf("IsFailure(%d) = %v, want %v", tt.code, got, tt.failure)
		}
	}
}

func TestRequestComplete(t *testing.T) {
	req := NewRequest[PackageInfo]()
	if req.IsCompleted() || req.Status() != InProgress {
		t.Fatal("new request should be in progress")
	}
	select {
	case <-req.Done():
		t.Fatal("Done closed early")
	default:
	}

	req.Complete(PackageInfo{Name: "a"})
	req.Complete(PackageInfo{Name: "b"})
	req.Fail(&ServiceError{Message: "late"})

	<-req.Done()
	if req.Status() != Success {
		t.Errorf("Status() = %v", req.Status())
	}
	if req.Result().Name != "a" {
		t.Errorf("Result() = %+v, want first completion", req.Result())
	}
	if req.Failure() != nil {
		t.Errorf("Failure() = %v", req.Failure())
	}
}

func TestRequestFail(t *testing.T) {
	req := NewRequest[[]PackageInfo]()
	req.Fail(&ServiceError{Code: ErrNotFound, Message: "gone"})
	req.Complete([]PackageInfo{{Name: "x"}})

	if !req.IsCompleted() || !IsFailure(req.Status()) {
		t.Fatalf("Status() = %v", req.Status())
	}
	if req.Failure().Code != ErrNotFound || req.Failure().Message != "gone" {
		t.Errorf("Failure() = %+v", req.Failure())
	}
	if req.Result() != nil {
		t.Errorf("Result() = %v, want nil", req.Result())
	}
}
