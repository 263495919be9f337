package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/David200308/expense-web/internal/core"
)

// mkRecord builds a record for aggregation tests; owner and id are not
// relevant to the math.
func mkRecord(amount, category, date string) core.ExpenseRecord {
	occurred, err := time.Parse(core.DateLayout, date)
	if err != nil {
		panic(err)
	}
	return core.ExpenseRecord{
		ID:          uuid.New(),
		OwnerID:     uuid.Nil,
		Amount:      core.CoerceAmount(amount),
		Description: category + " expense",
		Category:    category,
		OccurredOn:  occurred,
	}
}

func assertApprox(t *testing.T, got decimal.Decimal, want string) {
	t.Helper()
	w := decimal.RequireFromString(want)
	if got.Sub(w).Abs().GreaterThan(decimal.New(1, -6)) {
		t.Fatalf("got %s, want ≈%s", got, want)
	}
}

type fakeStore struct {
	records []core.ExpenseRecord
	err     error

	lastOwner    uuid.UUID
	lastInterval Interval
}

func (f *fakeStore) FindRecords(ctx context.Context, ownerID uuid.UUID, interval Interval) ([]core.ExpenseRecord, error) {
	f.lastOwner = ownerID
	f.lastInterval = interval
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func testEngine(store RecordFinder) *Engine {
	e := NewEngine(store)
	e.now = func() time.Time {
		return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	}
	return e
}

func TestGenerateReportScenario(t *testing.T) {
	store := &fakeStore{records: []core.ExpenseRecord{
		// Unordered on purpose; the engine sorts by date.
		mkRecord("120.75", "Food", "2024-02-01"),
		mkRecord("25.50", "Food", "2024-01-15"),
		mkRecord("45.00", "Transport", "2024-01-16"),
	}}
	engine := testEngine(store)

	report, err := engine.GenerateReport(context.Background(), Filters{
		OwnerID:     uuid.New(),
		Granularity: core.Month,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	if report.Summary.RecordCount != 3 {
		t.Fatalf("recordCount = %d", report.Summary.RecordCount)
	}
	if report.Summary.TotalAmount.String() != "191.25" {
		t.Fatalf("totalAmount = %s", report.Summary.TotalAmount)
	}
	if report.Summary.AverageAmount.String() != "63.75" {
		t.Fatalf("averageAmount = %s", report.Summary.AverageAmount)
	}

	if len(report.CategoryBreakdown) != 2 || report.CategoryBreakdown[0].Category != "Food" {
		t.Fatalf("breakdown: %+v", report.CategoryBreakdown)
	}
	assertApprox(t, report.CategoryBreakdown[0].PercentageOfTotal, "76.470588235294117647")
	assertApprox(t, report.CategoryBreakdown[1].PercentageOfTotal, "23.529411764705882353")

	if len(report.TimeSeries) != 2 {
		t.Fatalf("series: %+v", report.TimeSeries)
	}
	if report.TimeSeries[0].BucketKey != "2024-01" || report.TimeSeries[0].TotalAmount.String() != "70.5" {
		t.Fatalf("first bucket: %+v", report.TimeSeries[0])
	}
	if report.TimeSeries[1].BucketKey != "2024-02" || report.TimeSeries[1].TotalAmount.String() != "120.75" {
		t.Fatalf("second bucket: %+v", report.TimeSeries[1])
	}

	assertApprox(t, report.Trends.PeriodOverPeriodPercent, "71.276595744680851064")
	if report.Trends.TopCategory != "Food" || report.Trends.TopCategoryAmount.String() != "146.25" {
		t.Fatalf("trends: %+v", report.Trends)
	}
}

func TestGenerateReportSumInvariants(t *testing.T) {
	store := &fakeStore{records: []core.ExpenseRecord{
		mkRecord("19.99", "Food", "2024-01-02"),
		mkRecord("3.50", "Cafe", "2024-01-02"),
		mkRecord("100.00", "Rent", "2024-02-01"),
		mkRecord("0.01", "Cafe", "2024-03-09"),
	}}
	engine := testEngine(store)

	report, err := engine.GenerateReport(context.Background(), Filters{OwnerID: uuid.New()})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	catSum := decimal.Zero
	pctSum := decimal.Zero
	for _, c := range report.CategoryBreakdown {
		catSum = catSum.Add(c.TotalAmount)
		pctSum = pctSum.Add(c.PercentageOfTotal)
	}
	if !catSum.Equal(report.Summary.TotalAmount) {
		t.Fatalf("category totals %s != summary total %s", catSum, report.Summary.TotalAmount)
	}
	assertApprox(t, pctSum, "100")

	countSum := 0
	for _, p := range report.TimeSeries {
		countSum += p.Count
	}
	if countSum != report.Summary.RecordCount {
		t.Fatalf("series counts %d != recordCount %d", countSum, report.Summary.RecordCount)
	}
}

func TestGenerateReportEmptySelection(t *testing.T) {
	engine := testEngine(&fakeStore{})
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	report, err := engine.GenerateReport(context.Background(), Filters{
		OwnerID:     uuid.New(),
		StartDate:   &start,
		Granularity: core.Day,
	})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}

	want, _ := json.Marshal(core.EmptyReport())
	got, _ := json.Marshal(report)
	if string(got) != string(want) {
		t.Fatalf("empty report mismatch:\n got %s\nwant %s", got, want)
	}
}

func TestGenerateReportIdempotent(t *testing.T) {
	store := &fakeStore{records: []core.ExpenseRecord{
		mkRecord("12.00", "Food", "2024-01-01"),
		mkRecord("12.00", "Cafe", "2024-01-15"),
		mkRecord("7.30", "Food", "2024-02-02"),
	}}
	engine := testEngine(store)
	filters := Filters{OwnerID: uuid.New(), Granularity: core.Month}

	first, err := engine.GenerateReport(context.Background(), filters)
	if err != nil {
		t.Fatalf("first call: %v", err)
	}
	second, err := engine.GenerateReport(context.Background(), filters)
	if err != nil {
		t.Fatalf("second call: %v", err)
	}

	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if string(a) != string(b) {
		t.Fatalf("reports differ between identical calls:\n%s\n%s", a, b)
	}
}

func TestGenerateReportStoreErrorPropagates(t *testing.T) {
	storeErr := errors.New("store unreachable")
	engine := testEngine(&fakeStore{err: storeErr})

	_, err := engine.GenerateReport(context.Background(), Filters{OwnerID: uuid.New()})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected wrapped store error, got %v", err)
	}
}

func TestGenerateReportDefaultsToMonthly(t *testing.T) {
	store := &fakeStore{records: []core.ExpenseRecord{
		mkRecord("1.00", "A", "2024-01-01"),
		mkRecord("1.00", "A", "2024-01-20"),
	}}
	engine := testEngine(store)

	report, err := engine.GenerateReport(context.Background(), Filters{OwnerID: uuid.New()})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if len(report.TimeSeries) != 1 || report.TimeSeries[0].BucketKey != "2024-01" {
		t.Fatalf("expected one monthly bucket, got %+v", report.TimeSeries)
	}
}

func TestGenerateReportUsesResolvedRange(t *testing.T) {
	store := &fakeStore{}
	engine := testEngine(store)
	owner := uuid.New()

	_, err := engine.GenerateReport(context.Background(), Filters{OwnerID: owner})
	if err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if store.lastOwner != owner {
		t.Fatalf("owner passed to store = %s", store.lastOwner)
	}
	wantStart := time.Date(2023, 6, 15, 12, 0, 0, 0, time.UTC)
	if !store.lastInterval.Start.Equal(wantStart) {
		t.Fatalf("interval start = %v, want %v", store.lastInterval.Start, wantStart)
	}
}

func TestGenerateReportDoesNotMutateStoreSlice(t *testing.T) {
	records := []core.ExpenseRecord{
		mkRecord("2.00", "B", "2024-02-01"),
		mkRecord("1.00", "A", "2024-01-01"),
	}
	engine := testEngine(&fakeStore{records: records})

	if _, err := engine.GenerateReport(context.Background(), Filters{OwnerID: uuid.New()}); err != nil {
		t.Fatalf("GenerateReport: %v", err)
	}
	if records[0].Category != "B" || records[1].Category != "A" {
		t.Fatalf("store slice was reordered: %v", records)
	}
}
