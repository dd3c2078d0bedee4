package category

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	errors "github.com/kab1012/budget-tracker/internal"
	"github.com/kab1012/budget-tracker/internal/core/common/validation"
)

type CategoryResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CategoriesResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

type CreateCategoryDTO struct {
	Name string `json:"name"`
}

func (dto *CreateCategoryDTO) Validate() *errors.AppError {
	dto.Name = strings.TrimSpace(dto.Name)

	v := validation.NewValidator()
	v.Field("name", dto.Name).Required().MaxLength(100)
	return v.Validate()
}

type UpdateCategoryDTO struct {
	Name *string `json:"name"`
}

func (dto *UpdateCategoryDTO) Validate() *errors.AppError {
	if dto.Name == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*dto.Name)
	dto.Name = &trimmed

	v := validation.NewValidator()
	v.Field("name", trimmed).Required().MaxLength(100)
	return v.Validate()
}

// orderings maps the query-facing ordering names onto columns. Anything
// not listed here is rejected before a query is built.
var orderings = map[string]string{
	"name":       "name",
	"created_at": "created_at",
}

type ListQuery struct {
	Search  string
	OrderBy string
}

func ParseListQuery(values url.Values) (ListQuery, *errors.AppError) {
	q := ListQuery{
		Search:  strings.TrimSpace(values.Get("search")),
		OrderBy: "name ASC",
	}

	if ordering := values.Get("ordering"); ordering != "" {
		direction := "ASC"
		field := ordering
		if strings.HasPrefix(ordering, "-") {
			direction = "DESC"
			field = ordering[1:]
		}
		column, ok := orderings[field]
		if !ok {
			return q, errors.NewValidationFieldError("ordering",
				fmt.Sprintf("cannot order categories by %q", field), errors.ErrCodeInvalidQuery)
		}
		q.OrderBy = column + " " + direction
	}

	return q, nil
}
