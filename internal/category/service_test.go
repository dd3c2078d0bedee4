package category_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/kab1012/budget-tracker/internal"
	"github.com/kab1012/budget-tracker/internal/category"
	categoryDatamodel "github.com/kab1012/budget-tracker/internal/core/datamodel/category"
)

func TestCategory(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Suite")
}

type mockCategoryRepository struct {
	categories  map[int64]*categoryDatamodel.Category
	dependents  map[int64]int64
	createError error
	getError    error
	updateError error
	deleteError error
	nextID      int64
}

func newMockCategoryRepository() *mockCategoryRepository {
	return &mockCategoryRepository{
		categories: make(map[int64]*categoryDatamodel.Category),
		dependents: make(map[int64]int64),
		nextID:     1,
	}
}

func (m *mockCategoryRepository) GetAll(userID int64, query category.ListQuery) ([]*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	result := make([]*categoryDatamodel.Category, 0)
	for _, c := range m.categories {
		if c.UserID == userID {
			result = append(result, c)
		}
	}
	return result, nil
}

func (m *mockCategoryRepository) GetByID(userID, id int64) (*categoryDatamodel.Category, error) {
	if m.getError != nil {
		return nil, m.getError
	}
	c, exists := m.categories[id]
	if !exists || c.UserID != userID {
		return nil, nil
	}
	return c, nil
}

func (m *mockCategoryRepository) Create(c *categoryDatamodel.Category) error {
	if m.createError != nil {
		return m.createError
	}
	c.ID = m.nextID
	m.nextID++
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepository) Update(c *categoryDatamodel.Category) error {
	if m.updateError != nil {
		return m.updateError
	}
	m.categories[c.ID] = c
	return nil
}

func (m *mockCategoryRepository) Delete(userID, id int64) error {
	if m.deleteError != nil {
		return m.deleteError
	}
	c, exists := m.categories[id]
	if exists && c.UserID == userID {
		delete(m.categories, id)
	}
	return nil
}

func (m *mockCategoryRepository) CountDependents(userID, categoryID int64) (int64, error) {
	return m.dependents[categoryID], nil
}

var _ = Describe("CategoryService", func() {
	var (
		service  *category.Service
		mockRepo *mockCategoryRepository
	)

	BeforeEach(func() {
		mockRepo = newMockCategoryRepository()
		testLogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = category.NewService(mockRepo, testLogger)
	})

	Describe("Create", func() {
		It("should create a category owned by the caller", func() {
			result, err := service.Create(42, category.CreateCategoryDTO{Name: "Groceries"})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.ID).To(BeNumerically(">", 0))
			Expect(result.Name).To(Equal("Groceries"))
			Expect(mockRepo.categories[result.ID].UserID).To(Equal(int64(42)))
		})

		It("should trim surrounding whitespace from the name", func() {
			result, err := service.Create(42, category.CreateCategoryDTO{Name: "  Rent  "})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Rent"))
		})

		It("should reject an empty name", func() {
			result, err := service.Create(42, category.CreateCategoryDTO{Name: "   "})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeValidation))
			Expect(result).To(BeNil())
		})

		It("should reject a name longer than 100 characters", func() {
			long := make([]byte, 101)
			for i := range long {
				long[i] = 'a'
			}

			result, err := service.Create(42, category.CreateCategoryDTO{Name: string(long)})

			Expect(err).To(HaveOccurred())
			Expect(result).To(BeNil())
		})

		It("should surface repository failures as internal errors", func() {
			mockRepo.createError = errors.New("database down")

			result, err := service.Create(42, category.CreateCategoryDTO{Name: "Groceries"})

			Expect(err).To(HaveOccurred())
			appErr, ok := apperrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(apperrors.ErrorTypeInternal))
			Expect(result).To(BeNil())
		})
	})

	Describe("Get", func() {
		BeforeEach(func() {
			mockRepo.categories[1] = &categoryDatamodel.Category{
				ID: 1, UserID: 42, Name: "Groceries",
				CreatedAt: time.Now(), UpdatedAt: time.Now(),
			}
		})

		It("should return the category for its owner", func() {
			result, err := service.Get(42, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Groceries"))
		})

		It("should return not found for another user's category", func() {
			result, err := service.Get(7, 1)

			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
			Expect(result).To(BeNil())
		})

		It("should return not found for a missing id", func() {
			result, err := service.Get(42, 999)

			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
			Expect(result).To(BeNil())
		})
	})

	Describe("List", func() {
		It("should only return the caller's categories", func() {
			mockRepo.categories[1] = &categoryDatamodel.Category{ID: 1, UserID: 42, Name: "Groceries"}
			mockRepo.categories[2] = &categoryDatamodel.Category{ID: 2, UserID: 7, Name: "Secret"}

			result, err := service.List(42, category.ListQuery{})

			Expect(err).ToNot(HaveOccurred())
			Expect(result).To(HaveLen(1))
			Expect(result[0].Name).To(Equal("Groceries"))
		})
	})

	Describe("Update", func() {
		BeforeEach(func() {
			mockRepo.categories[1] = &categoryDatamodel.Category{ID: 1, UserID: 42, Name: "Groceries"}
		})

		It("should rename the category", func() {
			name := "Food"
			result, err := service.Update(42, 1, category.UpdateCategoryDTO{Name: &name})

			Expect(err).ToNot(HaveOccurred())
			Expect(result.Name).To(Equal("Food"))
			Expect(mockRepo.categories[1].Name).To(Equal("Food"))
		})

		It("should return not found when updating another user's category", func() {
			name := "Food"
			result, err := service.Update(7, 1, category.UpdateCategoryDTO{Name: &name})

			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
			Expect(result).To(BeNil())
		})
	})

	Describe("Delete", func() {
		BeforeEach(func() {
			mockRepo.categories[1] = &categoryDatamodel.Category{ID: 1, UserID: 42, Name: "Groceries"}
		})

		It("should delete a category with no dependents", func() {
			err := service.Delete(42, 1)

			Expect(err).ToNot(HaveOccurred())
			Expect(mockRepo.categories).ToNot(HaveKey(int64(1)))
		})

		It("should refuse to delete a category with transactions or budgets", func() {
			mockRepo.dependents[1] = 3

			err := service.Delete(42, 1)

			Expect(err).To(Equal(apperrors.ErrCategoryInUse))
			Expect(mockRepo.categories).To(HaveKey(int64(1)))
		})

		It("should return not found when deleting another user's category", func() {
			err := service.Delete(7, 1)

			Expect(err).To(Equal(apperrors.ErrCategoryNotFound))
		})
	})
})
