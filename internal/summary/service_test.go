package summary_test

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	"github.com/kab1012/budget-tracker/internal/summary"
)

func TestSummary(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Summary Suite")
}

type monthKey struct {
	userID int64
	txType string
	from   time.Time
}

type mockTransactionSummer struct {
	sums map[monthKey]decimal.Decimal
	err  error
}

func (m *mockTransactionSummer) SumByTypeInMonth(userID int64, transactionType string, from, to time.Time) (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.sums[monthKey{userID, transactionType, from}], nil
}

type mockBudgetSummer struct {
	sums map[monthKey]decimal.Decimal
	err  error
}

func (m *mockBudgetSummer) SumInMonth(userID int64, from, to time.Time) (decimal.Decimal, error) {
	if m.err != nil {
		return decimal.Zero, m.err
	}
	return m.sums[monthKey{userID: userID, from: from}], nil
}

var _ = Describe("SummaryService", func() {
	var (
		service      *summary.Service
		transactions *mockTransactionSummer
		budgets      *mockBudgetSummer
	)

	march := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	BeforeEach(func() {
		transactions = &mockTransactionSummer{sums: make(map[monthKey]decimal.Decimal)}
		budgets = &mockBudgetSummer{sums: make(map[monthKey]decimal.Decimal)}
		service = summary.NewService(transactions, budgets)
	})

	Describe("Summarize", func() {
		It("should derive balance and budget headroom for the month", func() {
			transactions.sums[monthKey{42, "income", march}] = decimal.RequireFromString("1500.00")
			transactions.sums[monthKey{42, "expense", march}] = decimal.RequireFromString("200.50")
			budgets.sums[monthKey{userID: 42, from: march}] = decimal.RequireFromString("500.00")

			result, err := service.Summarize(42, time.Date(2024, 3, 18, 14, 30, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalIncome.StringFixed(2)).To(Equal("1500.00"))
			Expect(result.TotalExpenses.StringFixed(2)).To(Equal("200.50"))
			Expect(result.Balance.StringFixed(2)).To(Equal("1299.50"))
			Expect(result.MonthlyBudget.StringFixed(2)).To(Equal("500.00"))
			Expect(result.BudgetVsActual.StringFixed(2)).To(Equal("299.50"))
		})

		It("should query the calendar month containing the reference time", func() {
			// Sums registered for April must not leak into a March summary.
			april := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
			transactions.sums[monthKey{42, "expense", april}] = decimal.RequireFromString("400.00")

			result, err := service.Summarize(42, time.Date(2024, 3, 31, 23, 59, 0, 0, time.UTC))

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalExpenses.StringFixed(2)).To(Equal("0.00"))
		})

		It("should go negative when spending exceeds the budget", func() {
			transactions.sums[monthKey{42, "expense", march}] = decimal.RequireFromString("600.00")
			budgets.sums[monthKey{userID: 42, from: march}] = decimal.RequireFromString("500.00")

			result, err := service.Summarize(42, march)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.BudgetVsActual.StringFixed(2)).To(Equal("-100.00"))
			Expect(result.Balance.StringFixed(2)).To(Equal("-600.00"))
		})

		It("should report all zeros for an empty month", func() {
			result, err := service.Summarize(42, march)

			Expect(err).ToNot(HaveOccurred())
			resp := result.ToResponse()
			Expect(resp.TotalIncome).To(Equal("0.00"))
			Expect(resp.TotalExpenses).To(Equal("0.00"))
			Expect(resp.Balance).To(Equal("0.00"))
			Expect(resp.MonthlyBudget).To(Equal("0.00"))
			Expect(resp.BudgetVsActual).To(Equal("0.00"))
		})

		It("should serialize under the documented field names", func() {
			budgets.sums[monthKey{userID: 42, from: march}] = decimal.RequireFromString("500.00")

			result, err := service.Summarize(42, march)
			Expect(err).ToNot(HaveOccurred())

			body, err := json.Marshal(result.ToResponse())
			Expect(err).ToNot(HaveOccurred())

			var fields map[string]string
			Expect(json.Unmarshal(body, &fields)).To(Succeed())
			Expect(fields).To(HaveKeyWithValue("monthly_budget", "500.00"))
			Expect(fields).To(HaveKey("total_income"))
			Expect(fields).To(HaveKey("total_expenses"))
			Expect(fields).To(HaveKey("balance"))
			Expect(fields).To(HaveKey("budget_vs_actual"))
		})

		It("should sum without floating point drift", func() {
			transactions.sums[monthKey{42, "expense", march}] = decimal.RequireFromString("0.10").Add(decimal.RequireFromString("0.20"))

			result, err := service.Summarize(42, march)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.TotalExpenses.StringFixed(2)).To(Equal("0.30"))
		})

		It("should surface store failures", func() {
			transactions.err = errors.New("connection reset")

			result, err := service.Summarize(42, march)

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})
})
