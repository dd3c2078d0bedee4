package transaction_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/shopspring/decimal"

	apperrors "github.com/kab1012/budget-tracker/internal"
	transactionDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/transaction"
	"github.com/kab1012/budget-tracker/internal/transaction"
)

func TestTransaction(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transaction Suite")
}

type mockTransactionRepository struct {
	transactions  map[int64]*transactionDatamodel.Transaction
	categoryNames map[int64]map[int64]string
	createError   error
	getError      error
	nextID        int64
}

func newMockTransactionRepository() *mockTransactionRepository {
	return &mockTransactionRepository{
		transactions:  make(map[int64]*transactionDatamodel.Transaction),
		categoryNames: make(map[int64]map[int64]string),
		nextID:        1,
	}
}

func (m *mockTransactionRepository) ownCategory(userID, categoryID int64, name string) {
	if m.categoryNames[userID] == nil {
		m.categoryNames[userID] = make(map[int64]string)
	}
	m.categoryNames[userID][categoryID] = name
}

func (m *mockTransactionRepository) GetAll(userID int64, query transaction.ListQuery) ([]*transactionDatamodel.Transaction, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*transactionDatamodel.Transaction, 0)
	for _, t := range m.transactions {
		if t.UserID == userID {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTransactionRepository) GetByID(userID, id int64) (*transactionDatamodel.Transaction, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	t, exists := m.transactions[id]
	if !exists || t.UserID != userID {
		return nil, nil
	}
	return t, nil
}

func (m *mockTransactionRepository) Create(t *transactionDatamodel.Transaction) error {
	if m.createError != nil {
		return m.createError
	}
	t.ID = m.nextID
	m.nextID++
	m.transactions[t.ID] = t
	return nil
}

func (m *mockTransactionRepository) Update(t *transactionDatamodel.Transaction) error {
	m.transactions[t.ID] = t
	return nil
}

func (m *mockTransactionRepository) Delete(userID, id int64) error {
	t, exists := m.transactions[id]
	if exists && t.UserID == userID {
		delete(m.transactions, id)
	}
	return nil
}

func (m *mockTransactionRepository) CategoryNames(userID int64) (map[int64]string, error) {
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

func fieldErrors(err error) []apperrors.ValidationError {
	appErr, ok := apperrors.IsAppError(err)
	Expect(ok).To(BeTrue())
	details, ok := appErr.Details.(apperrors.ValidationErrors)
	Expect(ok).To(BeTrue())
	return details.Errors
}

var _ = Describe("TransactionService", func() {
	var (
		service  *transaction.Service
		mockRepo *mockTransactionRepository
	)

	BeforeEach(func() {
		mockRepo = newMockTransactionRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = transaction.NewService(mockRepo, testLogger)
	})

	Describe("Create", func() {
		BeforeEach(func() {
			mockRepo.ownCategory(42, 1, "Groceries")
		})

		It("should record a transaction with its category name attached", func() {
			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      1,
				Amount:          amountOf("125.50"),
				TransactionType: transaction.TypeExpense,
				Description:     "weekly shop",
				Date:            "2024-03-05",
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.CategoryName).To(Equal("Groceries"))
			Expect(result.Amount.StringFixed(2)).To(Equal("125.50"))
			Expect(result.Date.Format(transaction.DateFormat)).To(Equal("2024-03-05"))
			Expect(mockRepo.transactions[result.ID].UserID).To(Equal(int64(42)))
		})

		It("should reject an unknown transaction type", func() {
			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      1,
				Amount:          amountOf("10.00"),
				TransactionType: "transfer",
				Date:            "2024-03-05",
			})

			Expect(err).To(HaveOccurred())
			errs := fieldErrors(err)
			Expect(errs).To(HaveLen(1))
			Expect(errs[0].Field).To(Equal("transaction_type"))
			Expect(result).To(BeNil())
		})

		It("should reject a negative amount", func() {
			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      1,
				Amount:          amountOf("-5.00"),
				TransactionType: transaction.TypeExpense,
				Date:            "2024-03-05",
			})

			Expect(err).To(HaveOccurred())
			Expect(fieldErrors(err)[0].Field).To(Equal("amount"))
			Expect(result).To(BeNil())
		})

		It("should reject an amount with more than two decimal places", func() {
			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      1,
				Amount:          amountOf("10.005"),
				TransactionType: transaction.TypeExpense,
				Date:            "2024-03-05",
			})

			Expect(err).To(HaveOccurred())
			Expect(fieldErrors(err)[0].Field).To(Equal("amount"))
			Expect(result).To(BeNil())
		})

		It("should reject an amount wider than ten digits", func() {
			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      1,
				Amount:          amountOf("123456789.01"),
				TransactionType: transaction.TypeExpense,
				Date:            "2024-03-05",
			})

			Expect(err).To(HaveOccurred())
			Expect(fieldErrors(err)[0].Field).To(Equal("amount"))
			Expect(result).To(BeNil())
		})

		It("should reject a malformed date", func() {
			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      1,
				Amount:          amountOf("10.00"),
				TransactionType: transaction.TypeExpense,
				Date:            "05/03/2024",
			})

			Expect(err).To(HaveOccurred())
			Expect(fieldErrors(err)[0].Field).To(Equal("date"))
			Expect(result).To(BeNil())
		})

		It("should reject a category owned by another user", func() {
			mockRepo.ownCategory(7, 2, "Their Category")

			result, err := service.Create(42, transaction.CreateTransactionDTO{
				CategoryID:      2,
				Amount:          amountOf("10.00"),
				TransactionType: transaction.TypeExpense,
				Date:            "2024-03-05",
			})

			Expect(err).To(HaveOccurred())
			errs := fieldErrors(err)
			Expect(errs[0].Field).To(Equal("category"))
			Expect(errs[0].Message).To(Equal("category does not exist"))
			Expect(result).To(BeNil())
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			mockRepo.ownCategory(42, 1, "Groceries")
			mockRepo.transactions[5] = &transactionDatamodel.Transaction{
				ID: 5, UserID: 42, CategoryID: 1,
				Amount:          decimal.RequireFromString("99.99"),
				TransactionType: transaction.TypeExpense,
				Date:            time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			}
		})

		It("should return the owner's transaction", func() {
			result, err := service.Get(42, 5)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Amount.StringFixed(2)).To(Equal("99.99"))
			Expect(result.CategoryName).To(Equal("Groceries"))
		})

		It("should return not found for another user's transaction", func() {
			result, err := service.Get(7, 5)

			Expect(err).To(Equal(apperrors.ErrTransactionNotFound))
			Expect(result).To(BeNil())
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.ownCategory(42, 1, "Groceries")
			mockRepo.ownCategory(42, 2, "Dining")
			mockRepo.transactions[5] = &transactionDatamodel.Transaction{
				ID: 5, UserID: 42, CategoryID: 1,
				Amount:          decimal.RequireFromString("99.99"),
				TransactionType: transaction.TypeExpense,
				Description:     "old",
				Date:            time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
			}
		})

		It("should apply only the provided fields", func() {
			desc := "dinner out"
			catID := int64(2)

			result, err := service.Update(42, 5, transaction.UpdateTransactionDTO{
				CategoryID:  &catID,
				Description: &desc,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.CategoryID).To(Equal(int64(2)))
			Expect(result.CategoryName).To(Equal("Dining"))
			Expect(result.Description).To(Equal("dinner out"))
			Expect(result.Amount.StringFixed(2)).To(Equal("99.99"))
		})

		It("should reject switching to a category the caller does not own", func() {
			catID := int64(99)

			result, err := service.Update(42, 5, transaction.UpdateTransactionDTO{
				CategoryID: &catID,
			})

			Expect(err).To(HaveOccurred())
			Expect(fieldErrors(err)[0].Field).To(Equal("category"))
			Expect(result).To(BeNil())
		})

		It("should return not found when updating another user's transaction", func() {
			desc := "nope"

			result, err := service.Update(7, 5, transaction.UpdateTransactionDTO{Description: &desc})

			Expect(err).To(Equal(apperrors.ErrTransactionNotFound))
			Expect(result).To(BeNil())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.transactions[5] = &transactionDatamodel.Transaction{ID: 5, UserID: 42, CategoryID: 1}
		})

		It("should delete the owner's transaction", func() {
			Expect(service.Delete(42, 5)).To(Succeed())
			Expect(mockRepo.transactions).ToNot(HaveKey(int64(5)))
		})

		It("should return not found afterwards", func() {
			Expect(service.Delete(42, 5)).To(Succeed())
			Expect(service.Delete(42, 5)).To(Equal(apperrors.ErrTransactionNotFound))
		})

		It("should return not found for another user's transaction", func() {
			Expect(service.Delete(7, 5)).To(Equal(apperrors.ErrTransactionNotFound))
		})
	})

	Describe("List", func() {
		It("should decorate each row with its category name", func() {
			mockRepo.ownCategory(42, 1, "Groceries")
			mockRepo.transactions[5] = &transactionDatamodel.Transaction{
				ID: 5, UserID: 42, CategoryID: 1,
				Amount: decimal.RequireFromString("10.00"),
			}
			mockRepo.transactions[6] = &transactionDatamodel.Transaction{
				ID: 6, UserID: 7, CategoryID: 1,
				Amount: decimal.RequireFromString("20.00"),
			}

			result, err := service.List(42, transaction.ListQuery{})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].CategoryName).To(Equal("Groceries"))
		})
	})
})
