package inmemdb

import (
	"context"
	"sort"

	"github.com/chuodata/usajili/core/catalog"
)

type catalogRepository struct {
	categories *categoryTable
	courses    *courseTable
}

var _ catalog.Repository = (*catalogRepository)(nil)

func NewCatalogRepository(db *DB) *catalogRepository {
	return &catalogRepository{categories: db.category, courses: db.course}
}

// Categories

func (repo *catalogRepository) queryCategories() []catalog.Category {
	cats := make([]catalog.Category, 0, len(repo.categories.table))
	for _, cat := range repo.categories.table {
		cats = append(cats, *cat)
	}
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
	return cats
}

func (repo *catalogRepository) QueryAllCategories(_ context.Context) ([]catalog.Category, error) {
	repo.categories.mutex.RLock()
	defer repo.categories.mutex.RUnlock()
	return repo.queryCategories(), nil
}

func (repo *catalogRepository) GetCategoryByID(_ context.Context, id int) (catalog.Category, error) {
	repo.categories.mutex.RLock()
	defer repo.categories.mutex.RUnlock()

	if cat, ok := repo.categories.table[id]; ok {
		return *cat, nil
	}
	return catalog.Category{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetCategoryBySlug(_ context.Context, slug string) (catalog.Category, error) {
	repo.categories.mutex.RLock()
	defer repo.categories.mutex.RUnlock()

	for _, cat := range repo.categories.table {
		if cat.Slug == slug {
			return *cat, nil
		}
	}
	return catalog.Category{}, catalog.ErrNotFound
}

func (repo *catalogRepository) CreateCategory(_ context.Context, cat catalog.Category) (catalog.Category, error) {
	repo.categories.mutex.Lock()
	defer repo.categories.mutex.Unlock()

	for _, existing := range repo.categories.table {
		if existing.Slug == cat.Slug {
			return catalog.Category{}, catalog.ErrSlugExists
		}
	}
	repo.categories.seq++
	cat.ID = repo.categories.seq
	repo.categories.table[cat.ID] = &cat
	return cat, nil
}

func (repo *catalogRepository) UpdateCategory(_ context.Context, cat catalog.Category) (catalog.Category, error) {
	repo.categories.mutex.Lock()
	defer repo.categories.mutex.Unlock()

	orig, ok := repo.categories.table[cat.ID]
	if !ok {
		return catalog.Category{}, catalog.ErrNotFound
	}
	for _, existing := range repo.categories.table {
		if existing.Slug == cat.Slug && existing.ID != cat.ID {
			return catalog.Category{}, catalog.ErrSlugExists
		}
	}
	cat.CreatedAt = orig.CreatedAt
	repo.categories.table[cat.ID] = &cat
	return cat, nil
}

func (repo *catalogRepository) DeleteCategoriesByID(_ context.Context, ids ...int) error {
	repo.categories.mutex.Lock()
	defer repo.categories.mutex.Unlock()

	for _, id := range ids {
		delete(repo.categories.table, id)
	}
	return nil
}

// Courses

func (repo *catalogRepository) withModules(crs catalog.Course) catalog.Course {
	mods := repo.courses.modules[crs.ID]
	if len(mods) > 0 {
		crs.Modules = append([]catalog.CourseModule(nil), mods...)
		sort.Slice(crs.Modules, func(i, j int) bool { return crs.Modules[i].Position < crs.Modules[j].Position })
	}
	return crs
}

func (repo *catalogRepository) queryCourses() []catalog.Course {
	courses := make([]catalog.Course, 0, len(repo.courses.table))
	for _, crs := range repo.courses.table {
		courses = append(courses, repo.withModules(*crs))
	}
	sort.Slice(courses, func(i, j int) bool { return courses[i].ID < courses[j].ID })
	return courses
}

func (repo *catalogRepository) QueryAllCourses(_ context.Context) ([]catalog.Course, error) {
	repo.courses.mutex.RLock()
	defer repo.courses.mutex.RUnlock()
	return repo.queryCourses(), nil
}

func (repo *catalogRepository) GetCourseByID(_ context.Context, id int) (catalog.Course, error) {
	repo.courses.mutex.RLock()
	defer repo.courses.mutex.RUnlock()

	if crs, ok := repo.courses.table[id]; ok {
		return repo.withModules(*crs), nil
	}
	return catalog.Course{}, catalog.ErrNotFound
}

func (repo *catalogRepository) GetCoursesByCategorySlug(_ context.Context, slug string) ([]catalog.Course, error) {
	repo.courses.mutex.RLock()
	defer repo.courses.mutex.RUnlock()

	courses := make([]catalog.Course, 0)
	for _, crs := range repo.queryCourses() {
		if crs.CategorySlug == slug {
			courses = append(courses, crs)
		}
	}
	return courses, nil
}

func (repo *catalogRepository) CreateCourse(_ context.Context, crs catalog.Course) (catalog.Course, error) {
	repo.courses.mutex.Lock()
	defer repo.courses.mutex.Unlock()

	repo.courses.seq++
	crs.ID = repo.courses.seq
	repo.courses.table[crs.ID] = &crs
	return crs, nil
}

func (repo *catalogRepository) UpdateCourse(_ context.Context, crs catalog.Course) (catalog.Course, error) {
	repo.courses.mutex.Lock()
	defer repo.courses.mutex.Unlock()

	orig, ok := repo.courses.table[crs.ID]
	if !ok {
		return catalog.Course{}, catalog.ErrNotFound
	}
	crs.CreatedAt = orig.CreatedAt
	repo.courses.table[crs.ID] = &crs
	return repo.withModules(crs), nil
}

func (repo *catalogRepository) DeleteCoursesByID(_ context.Context, ids ...int) error {
	repo.courses.mutex.Lock()
	defer repo.courses.mutex.Unlock()

	for _, id := range ids {
		delete(repo.courses.table, id)
		delete(repo.courses.modules, id)
	}
	return nil
}

func (repo *catalogRepository) ReplaceCourseModules(_ context.Context, courseID int, mods []catalog.CourseModule) ([]catalog.CourseModule, error) {
	repo.courses.mutex.Lock()
	defer repo.courses.mutex.Unlock()

	if _, ok := repo.courses.table[courseID]; !ok {
		return nil, catalog.ErrNotFound
	}
	rows := make([]catalog.CourseModule, 0, len(mods))
	for _, mod := range mods {
		repo.courses.modSeq++
		mod.ID = repo.courses.modSeq
		mod.CourseID = courseID
		rows = append(rows, mod)
	}
	repo.courses.modules[courseID] = rows
	return rows, nil
}
