package models

import (
	"reflect"
	"testing"
)

func TestTransitionTable(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		allowed  bool
		manual   bool
	}{
		{OrderStatusRequested, OrderStatusSubmitted, true, false},
		{OrderStatusDraft, OrderStatusSubmitted, true, true},
		{OrderStatusSubmitted, OrderStatusApproved, true, true},
		{OrderStatusSubmitted, OrderStatusRejected, true, true},
		{OrderStatusApproved, OrderStatusShipped, true, true},
		{OrderStatusShipped, OrderStatusReceived, true, false},
		{OrderStatusShipped, OrderStatusRejected, true, false},
		{OrderStatusReceived, OrderStatusInvoiced, true, true},
		{OrderStatusInvoiced, OrderStatusPaid, true, false},

		{OrderStatusRequested, OrderStatusApproved, false, false},
		{OrderStatusSubmitted, OrderStatusShipped, false, false},
		{OrderStatusApproved, OrderStatusRejected, false, false},
		{OrderStatusReceived, OrderStatusPaid, false, false},
		{OrderStatusPaid, OrderStatusInvoiced, false, false},
		{OrderStatusRejected, OrderStatusSubmitted, false, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.allowed {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
		if got := IsManualTransition(tc.from, tc.to); got != tc.manual {
			t.Fatalf("IsManualTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.manual)
		}
	}
}

func TestNextStatuses(t *testing.T) {
	if got := NextStatuses(OrderStatusShipped); !reflect.DeepEqual(got, []OrderStatus{OrderStatusReceived, OrderStatusRejected}) {
		t.Fatalf("NextStatuses(Shipped) = %v", got)
	}
	for _, st := range []OrderStatus{OrderStatusPaid, OrderStatusRejected} {
		if !st.IsTerminal() || len(NextStatuses(st)) != 0 {
			t.Fatalf("%s should be terminal", st)
		}
	}
}

func TestParseEnums(t *testing.T) {
	if r, err := ParseRole("GUDANG"); err != nil || r != RoleWarehouse || r.Department() != "Warehouse" {
		t.Fatalf("ParseRole(GUDANG) = %v, %v", r, err)
	}
	if _, err := ParseRole("gudang"); err == nil {
		t.Fatal("role codes are case sensitive")
	}
	if _, err := ParseOrderStatus("Lost"); err == nil {
		t.Fatal("expected error for unknown status")
	}

	var st OrderStatus
	if err := st.UnmarshalJSON([]byte(`"Invoiced"`)); err != nil || st != OrderStatusInvoiced {
		t.Fatalf("UnmarshalJSON = %v, %v", st, err)
	}
	if err := st.UnmarshalJSON([]byte(`3`)); err == nil {
		t.Fatal("non-string status should fail")
	}
	var r Role
	if err := r.UnmarshalJSON([]byte(`"CEO"`)); err == nil {
		t.Fatal("unknown role should fail")
	}
}
