package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mmdatafocus/procurement_backend/models"
	"github.com/shopspring/decimal"
)

func execute(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute %v: %v\n%s", args, err, errOut.String())
	}
	return out.String()
}

func stockOf(inv []models.InventoryItem, id string) int {
	for _, it := range inv {
		if it.ID == id {
			return it.Stock
		}
	}
	return -1
}

func TestScenarioCommand(t *testing.T) {
	tests := []struct {
		name       string
		args       []string
		wantStatus models.OrderStatus
		journals   int
		raw01Stock int
	}{
		{"full delivery", []string{"scenario"}, models.OrderStatusPaid, 1, 110},
		{"short delivery", []string{"scenario", "--mismatch"}, models.OrderStatusRejected, 0, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var res scenarioResult
			if err := json.Unmarshal([]byte(execute(t, tc.args...)), &res); err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if len(res.Orders) != 1 {
				t.Fatalf("orders = %d, want 1", len(res.Orders))
			}
			order := res.Orders[0]
			if order.Status != tc.wantStatus {
				t.Fatalf("status = %s, want %s", order.Status, tc.wantStatus)
			}
			if !order.TotalAmount.Equal(decimal.NewFromInt(15500000)) {
				t.Fatalf("total = %s", order.TotalAmount)
			}
			if len(res.Journals) != tc.journals {
				t.Fatalf("journals = %d, want %d", len(res.Journals), tc.journals)
			}
			if got := stockOf(res.Inventory, "RAW01"); got != tc.raw01Stock {
				t.Fatalf("RAW01 stock = %d, want %d", got, tc.raw01Stock)
			}
		})
	}
}

func TestScenarioUnknownSupplier(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"scenario", "--supplier", "SUP42"})
	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown supplier")
	}
}

func TestCatalogCommand(t *testing.T) {
	out := execute(t, "catalog")
	for _, want := range []string{"Laptop High-End", "Rp 15,000,000", "PT. Tech Solution", "CV. Maju Hardware"} {
		if !strings.Contains(out, want) {
			t.Fatalf("catalog output missing %q:\n%s", want, out)
		}
	}
}

func TestAuditCommandHonoursFeatureFlag(t *testing.T) {
	t.Setenv("AUDITOR_ENABLED", "false")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"audit"})
	if err := cmd.Execute(); !errors.Is(err, errAuditorDisabled) {
		t.Fatalf("expected disabled auditor error, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("disabled audit must not print: %q", out.String())
	}
}

func TestCatalogCommandReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte("items:\n  - id: X1\n    name: Solder Wire\n    price: \"Rp 12,500\"\n    stock: 3\n    safety_stock: 5\n    unit: Roll\nsuppliers:\n  - id: SUP07\n    name: PT. Sumber Timah\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}
	out := execute(t, "catalog", "--catalog", path)
	for _, want := range []string{"Solder Wire", "Rp 12,500", "PT. Sumber Timah"} {
		if !strings.Contains(out, want) {
			t.Fatalf("catalog output missing %q:\n%s", want, out)
		}
	}
}
