package service

import (
	"context"
	"regexp"

	"reminder-organizer/internal/model"
	"reminder-organizer/internal/repository"
)

var colorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// CategoryInput carries the fields for creating a category.
type CategoryInput struct {
	Name  string
	Color string
	Icon  *string
}

// CategoryPatch is a partial category update; nil fields stay unchanged.
// An empty icon clears it.
type CategoryPatch struct {
	Name  *string
	Color *string
	Icon  *string
}

// CategoryService wraps category CRUD with validation and ownership checks.
type CategoryService struct {
	categories *repository.CategoryRepository
}

func NewCategoryService(categories *repository.CategoryRepository) *CategoryService {
	return &CategoryService{categories: categories}
}

func (s *CategoryService) List(ctx context.Context, userID string) ([]model.Category, error) {
	return s.categories.ListByUser(ctx, userID)
}

func (s *CategoryService) Create(ctx context.Context, userID string, input CategoryInput) (*model.Category, error) {
	if err := validateCategoryName(input.Name); err != nil {
		return nil, err
	}
	if err := validateColor(input.Color); err != nil {
		return nil, err
	}

	category := &model.Category{
		UserID: userID,
		Name:   input.Name,
		Color:  input.Color,
		Icon:   normalizeIcon(input.Icon),
	}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, userID, id string, patch CategoryPatch) (*model.Category, error) {
	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}

	if patch.Name != nil {
		if err := validateCategoryName(*patch.Name); err != nil {
			return nil, err
		}
		category.Name = *patch.Name
	}
	if patch.Color != nil {
		if err := validateColor(*patch.Color); err != nil {
			return nil, err
		}
		category.Color = *patch.Color
	}
	if patch.Icon != nil {
		category.Icon = normalizeIcon(patch.Icon)
	}

	if err := s.categories.Save(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id string) error {
	category, err := s.categories.FindByID(ctx, userID, id)
	if err != nil {
		return err
	}
	if category == nil {
		return ErrNotFound
	}
	return s.categories.Delete(ctx, userID, id)
}

func validateCategoryName(name string) error {
	if name == "" || len(name) > 100 {
		return invalid("name", "name must be between 1 and 100 characters")
	}
	return nil
}

func validateColor(color string) error {
	if !colorPattern.MatchString(color) {
		return invalid("color", "color must be a hex value like #RRGGBB")
	}
	return nil
}

func normalizeIcon(icon *string) *string {
	if icon == nil || *icon == "" {
		return nil
	}
	return icon
}
