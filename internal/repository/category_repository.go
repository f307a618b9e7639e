package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"reminder-organizer/internal/model"
)

// CategoryRepository manages reminder categories. Every query is scoped to
// an owner id; there is no cross-user access path.
type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Create(category).Error; err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

func (r *CategoryRepository) ListByUser(ctx context.Context, userID string) ([]model.Category, error) {
	var categories []model.Category
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// FindByID returns the category only when it belongs to userID; a foreign
// row looks the same as a missing one.
func (r *CategoryRepository) FindByID(ctx context.Context, userID, id string) (*model.Category, error) {
	var category model.Category
	err := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).First(&category).Error
	switch {
	case err == nil:
		return &category, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, nil
	default:
		return nil, fmt.Errorf("find category: %w", err)
	}
}

func (r *CategoryRepository) Save(ctx context.Context, category *model.Category) error {
	if err := r.db.WithContext(ctx).Save(category).Error; err != nil {
		return fmt.Errorf("save category: %w", err)
	}
	return nil
}

// Delete removes a category and nulls the reference on its reminders.
// Reminders themselves survive the delete.
func (r *CategoryRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Reminder{}).
			Where("user_id = ? AND category_id = ?", userID, id).
			Update("category_id", nil).Error; err != nil {
			return fmt.Errorf("detach reminders: %w", err)
		}
		if err := tx.Where("user_id = ? AND id = ?", userID, id).
			Delete(&model.Category{}).Error; err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		return nil
	})
}
