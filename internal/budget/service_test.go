package budget_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	apperrors "github.com/kab1012/budget-tracker/internal"
	"github.com/kab1012/budget-tracker/internal/budget"
	budgetDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/budget"
)

func TestBudget(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Suite")
}

type mockBudgetRepository struct {
	budgets       map[int64]*budgetDatamodel.Budget
	categoryNames map[int64]map[int64]string
	nextID        int64
}

func newMockBudgetRepository() *mockBudgetRepository {
	return &mockBudgetRepository{
		budgets:       make(map[int64]*budgetDatamodel.Budget),
		categoryNames: make(map[int64]map[int64]string),
		nextID:        1,
	}
}

func (m *mockBudgetRepository) ownCategory(userID, categoryID int64, name string) {
	if m.categoryNames[userID] == nil {
		m.categoryNames[userID] = make(map[int64]string)
	}
	m.categoryNames[userID][categoryID] = name
}

func (m *mockBudgetRepository) GetAll(userID int64, query budget.ListQuery) ([]*budgetDatamodel.Budget, error) {
	result := make([]*budgetDatamodel.Budget, 0)
	for _, b := range m.budgets {
		if b.UserID == userID {
			result = append(result, b)
		}
	}
	return result, nil
}

func (m *mockBudgetRepository) GetByID(userID, id int64) (*budgetDatamodel.Budget, error) {
	b, exists := m.budgets[id]
	if !exists || b.UserID != userID {
		return nil, nil
	}
	return b, nil
}

func (m *mockBudgetRepository) Create(b *budgetDatamodel.Budget) error {
	b.ID = m.nextID
	m.nextID++
	m.budgets[b.ID] = b
	return nil
}

func (m *mockBudgetRepository) Update(b *budgetDatamodel.Budget) error {
	m.budgets[b.ID] = b
	return nil
}

func (m *mockBudgetRepository) Delete(userID, id int64) error {
	b, exists := m.budgets[id]
	if exists && b.UserID == userID {
		delete(m.budgets, id)
	}
	return nil
}

func (m *mockBudgetRepository) CategoryNames(userID int64) (map[int64]string, error) {
	names := m.categoryNames[userID]
	if names == nil {
		return map[int64]string{}, nil
	}
	return names, nil
}

func amountOf(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

var _ = Describe("BudgetService", func() {
	var (
		service  *budget.Service
		mockRepo *mockBudgetRepository
	)

	BeforeEach(func() {
		mockRepo = newMockBudgetRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = budget.NewService(mockRepo, testLogger)
	})

	Describe("Create", func() {
		BeforeEach(func() {
			mockRepo.ownCategory(42, 1, "Groceries")
		})

		It("should normalize the month to its first day", func() {
			result, err := service.Create(42, budget.CreateBudgetDTO{
				CategoryID: 1,
				Amount:     amountOf("400.00"),
				Month:      "2024-03-15",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Month).To(Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
			Expect(result.CategoryName).To(Equal("Groceries"))
		})

		It("should allow a second budget for the same category and month", func() {
			dto := budget.CreateBudgetDTO{
				CategoryID: 1,
				Amount:     amountOf("100.00"),
				Month:      "2024-03-01",
			}

			first, err := service.Create(42, dto)
			Expect(err).ToNot(HaveOccurred())
			second, err := service.Create(42, dto)
			Expect(err).ToNot(HaveOccurred())
			Expect(second.ID).ToNot(Equal(first.ID))
		})

		It("should reject a category owned by another user", func() {
			mockRepo.ownCategory(7, 2, "Their Category")

			result, err := service.Create(42, budget.CreateBudgetDTO{
				CategoryID: 2,
				Amount:     amountOf("400.00"),
				Month:      "2024-03-01",
			})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
			Expect(result).To(BeNil())
		})

		It("should reject a malformed month", func() {
			result, err := service.Create(42, budget.CreateBudgetDTO{
				CategoryID: 1,
				Amount:     amountOf("400.00"),
				Month:      "March 2024",
			})

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should reject a negative amount", func() {
			result, err := service.Create(42, budget.CreateBudgetDTO{
				CategoryID: 1,
				Amount:     amountOf("-1.00"),
				Month:      "2024-03-01",
			})

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.ownCategory(42, 1, "Groceries")
			mockRepo.budgets[3] = &budgetDatamodel.Budget{
				ID: 3, UserID: 42, CategoryID: 1,
				Amount: decimal.RequireFromString("400.00"),
				Month:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			}
		})

		It("should apply only the provided fields", func() {
			result, err := service.Update(42, 3, budget.UpdateBudgetDTO{
				Amount: amountOf("450.00"),
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Amount.StringFixed(2)).To(Equal("450.00"))
			Expect(result.Month).To(Equal(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("should normalize an updated month", func() {
			month := "2024-05-20"
			result, err := service.Update(42, 3, budget.UpdateBudgetDTO{Month: &month})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Month).To(Equal(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)))
		})

		It("should return not found for another user's budget", func() {
			result, err := service.Update(7, 3, budget.UpdateBudgetDTO{Amount: amountOf("1.00")})

			Expect(err).To(Equal(apperrors.ErrBudgetNotFound))
			Expect(result).To(BeNil())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.budgets[3] = &budgetDatamodel.Budget{ID: 3, UserID: 42, CategoryID: 1}
		})

		It("should delete the owner's budget", func() {
			Expect(service.Delete(42, 3)).To(Succeed())
			Expect(mockRepo.budgets).ToNot(HaveKey(int64(3)))
		})

		It("should return not found for another user's budget", func() {
			Expect(service.Delete(7, 3)).To(Equal(apperrors.ErrBudgetNotFound))
		})
	})

	Describe("List", func() {
		It("should decorate each budget with its category name", func() {
			mockRepo.ownCategory(42, 1, "Groceries")
			mockRepo.budgets[3] = &budgetDatamodel.Budget{
				ID: 3, UserID: 42, CategoryID: 1,
				Amount: decimal.RequireFromString("400.00"),
			}
			mockRepo.budgets[4] = &budgetDatamodel.Budget{
				ID: 4, UserID: 7, CategoryID: 1,
				Amount: decimal.RequireFromString("900.00"),
			}

			result, err := service.List(42, budget.ListQuery{})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].CategoryName).To(Equal("Groceries"))
		})
	})
})
