package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordPurchase(t *testing.T) {
	beforeSold := testutil.ToFloat64(TicketsSold)
	beforeOK := testutil.ToFloat64(PurchaseAttempts.WithLabelValues(OutcomeSuccess))
	beforeAge := testutil.ToFloat64(PurchaseAttempts.WithLabelValues(OutcomeUnderAge))

	RecordPurchase(OutcomeSuccess, 3)
	RecordPurchase(OutcomeUnderAge, 2)

	if got := testutil.ToFloat64(TicketsSold) - beforeSold; got != 3 {
		t.Fatalf("expected 3 tickets sold, got %v", got)
	}
	if got := testutil.ToFloat64(PurchaseAttempts.WithLabelValues(OutcomeSuccess)) - beforeOK; got != 1 {
		t.Fatalf("expected one success, got %v", got)
	}
	if got := testutil.ToFloat64(PurchaseAttempts.WithLabelValues(OutcomeUnderAge)) - beforeAge; got != 1 {
		t.Fatalf("expected one under_age, got %v", got)
	}
}
