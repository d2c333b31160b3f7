package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/HenriqueBragaMoreira/gesture-pro/internal/apperr"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/model"
	"github.com/HenriqueBragaMoreira/gesture-pro/internal/repository"
)

type ListCategoriesParams struct {
	Offset int32
	Limit  int32
	Name   string
}

type CategoryService interface {
	CreateCategory(ctx context.Context, name string) (model.Category, error)
	GetCategory(ctx context.Context, id int64) (model.Category, error)
	ListCategories(ctx context.Context, params ListCategoriesParams) ([]model.Category, int64, error)
	UpdateCategoryName(ctx context.Context, id int64, name string) (model.Category, error)
}

type categoryService struct {
	categoryRepo repository.CategoryRepository
}

func NewCategoryService(categoryRepo repository.CategoryRepository) CategoryService {
	return &categoryService{categoryRepo: categoryRepo}
}

func (s *categoryService) CreateCategory(ctx context.Context, name string) (model.Category, error) {
	// Advisory pre-check only; the unique index is the authority and a
	// losing race surfaces as the same conflict error from Create.
	if _, err := s.categoryRepo.GetByName(ctx, name); err == nil {
		return model.Category{}, apperr.ErrCategoryNameTaken
	} else if !errors.Is(err, apperr.ErrCategoryNotFound) {
		return model.Category{}, fmt.Errorf("check category name: %w", err)
	}

	category, err := s.categoryRepo.Create(ctx, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("create category: %w", err)
	}

	return category, nil
}

func (s *categoryService) GetCategory(ctx context.Context, id int64) (model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return model.Category{}, fmt.Errorf("get category: %w", err)
	}

	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, params ListCategoriesParams) ([]model.Category, int64, error) {
	categories, total, err := s.categoryRepo.List(ctx, repository.ListCategoriesParams{
		Offset: params.Offset,
		Limit:  params.Limit,
		Name:   params.Name,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list categories: %w", err)
	}

	return categories, total, nil
}

func (s *categoryService) UpdateCategoryName(ctx context.Context, id int64, name string) (model.Category, error) {
	if existing, err := s.categoryRepo.GetByName(ctx, name); err == nil {
		if existing.ID == id {
			// Renaming to the current name is a no-op update.
			return existing, nil
		}
		return model.Category{}, apperr.ErrCategoryNameTaken
	} else if !errors.Is(err, apperr.ErrCategoryNotFound) {
		return model.Category{}, fmt.Errorf("check category name: %w", err)
	}

	category, err := s.categoryRepo.UpdateName(ctx, id, name)
	if err != nil {
		return model.Category{}, fmt.Errorf("update category name: %w", err)
	}

	return category, nil
}
