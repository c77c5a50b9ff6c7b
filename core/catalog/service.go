package catalog

import (
	"context"
	"errors"
	"time"
)

var (
	// errors
	ErrNotFound   = errors.New("not found")
	ErrSlugExists = errors.New("a category with this slug already exists")
)

type (
	Repository interface {
		// categories
		QueryAllCategories(ctx context.Context) ([]Category, error)
		GetCategoryByID(ctx context.Context, id int) (Category, error)
		GetCategoryBySlug(ctx context.Context, slug string) (Category, error)
		CreateCategory(ctx context.Context, cat Category) (Category, error)
		UpdateCategory(ctx context.Context, cat Category) (Category, error)
		DeleteCategoriesByID(ctx context.Context, ids ...int) error

		// courses
		QueryAllCourses(ctx context.Context) ([]Course, error)
		GetCourseByID(ctx context.Context, id int) (Course, error)
		GetCoursesByCategorySlug(ctx context.Context, slug string) ([]Course, error)
		CreateCourse(ctx context.Context, crs Course) (Course, error)
		UpdateCourse(ctx context.Context, crs Course) (Course, error)
		DeleteCoursesByID(ctx context.Context, ids ...int) error

		// modules
		ReplaceCourseModules(ctx context.Context, courseID int, mods []CourseModule) ([]CourseModule, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Categories

func (svc *Service) QueryCategories(ctx context.Context) ([]Category, error) {
	return svc.repo.QueryAllCategories(ctx)
}

func (svc *Service) GetCategoryByID(ctx context.Context, id int) (Category, error) {
	return svc.repo.GetCategoryByID(ctx, id)
}

func (svc *Service) GetCategoryBySlug(ctx context.Context, slug string) (Category, error) {
	return svc.repo.GetCategoryBySlug(ctx, slug)
}

func (svc *Service) CreateCategory(ctx context.Context, nc NewCategory) (Category, error) {
	now := time.Now().UTC()
	cat := Category{
		Name:        nc.Name,
		Slug:        nc.Slug,
		Description: nc.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	return svc.repo.CreateCategory(ctx, cat)
}

func (svc *Service) UpdateCategory(ctx context.Context, id int, uc UpdateCategory) (Category, error) {
	cat := Category{
		ID:          id,
		Name:        uc.Name,
		Slug:        uc.Slug,
		Description: uc.Description,
		UpdatedAt:   time.Now().UTC(),
	}
	return svc.repo.UpdateCategory(ctx, cat)
}

func (svc *Service) DeleteCategories(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteCategoriesByID(ctx, ids...)
}

// Courses

func (svc *Service) QueryCourses(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryAllCourses(ctx)
}

// GetCourseByID resolves a course with its curriculum modules.
func (svc *Service) GetCourseByID(ctx context.Context, id int) (Course, error) {
	return svc.repo.GetCourseByID(ctx, id)
}

func (svc *Service) GetCoursesByCategory(ctx context.Context, slug string) ([]Course, error) {
	return svc.repo.GetCoursesByCategorySlug(ctx, slug)
}

func (svc *Service) CreateCourse(ctx context.Context, nc NewCourse) (Course, error) {
	cat, err := svc.repo.GetCategoryByID(ctx, nc.CategoryID)
	if err != nil {
		return Course{}, err
	}

	now := time.Now().UTC()
	crs := Course{
		CategoryID:    cat.ID,
		CategorySlug:  cat.Slug,
		Title:         nc.Title,
		Description:   nc.Description,
		Price:         nc.Price,
		DiscountPrice: nc.DiscountPrice,
		Duration:      nc.Duration,
		Level:         nc.Level,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	crs, err = svc.repo.CreateCourse(ctx, crs)
	if err != nil {
		return Course{}, err
	}

	if len(nc.Modules) > 0 {
		mods := make([]CourseModule, 0, len(nc.Modules))
		for _, nm := range nc.Modules {
			mods = append(mods, CourseModule{
				CourseID: crs.ID,
				Position: nm.Position,
				Title:    nm.Title,
				Summary:  nm.Summary,
			})
		}
		if crs.Modules, err = svc.repo.ReplaceCourseModules(ctx, crs.ID, mods); err != nil {
			return Course{}, err
		}
	}
	return crs, nil
}

func (svc *Service) UpdateCourse(ctx context.Context, id int, uc UpdateCourse) (Course, error) {
	orig, err := svc.repo.GetCourseByID(ctx, id)
	if err != nil {
		return Course{}, err
	}

	cat, err := svc.repo.GetCategoryByID(ctx, uc.CategoryID)
	if err != nil {
		return Course{}, err
	}

	crs := Course{
		ID:            id,
		CategoryID:    cat.ID,
		CategorySlug:  cat.Slug,
		Title:         uc.Title,
		Description:   uc.Description,
		Price:         orig.Price,
		DiscountPrice: uc.DiscountPrice,
		Duration:      uc.Duration,
		Level:         uc.Level,
		UpdatedAt:     time.Now().UTC(),
	}
	if uc.Price != nil {
		crs.Price = *uc.Price
	}
	return svc.repo.UpdateCourse(ctx, crs)
}

func (svc *Service) DeleteCourses(ctx context.Context, ids ...int) error {
	return svc.repo.DeleteCoursesByID(ctx, ids...)
}

func (svc *Service) ReplaceModules(ctx context.Context, courseID int, mods []NewCourseModule) ([]CourseModule, error) {
	if _, err := svc.repo.GetCourseByID(ctx, courseID); err != nil {
		return nil, err
	}
	rows := make([]CourseModule, 0, len(mods))
	for _, nm := range mods {
		rows = append(rows, CourseModule{
			CourseID: courseID,
			Position: nm.Position,
			Title:    nm.Title,
			Summary:  nm.Summary,
		})
	}
	return svc.repo.ReplaceCourseModules(ctx, courseID, rows)
}
