package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/chuodata/usajili/core/catalog"
)

type catalogRepository struct {
	db *sqlx.DB
}

var _ catalog.Repository = (*catalogRepository)(nil) // interface compliance check

func NewCatalogRepository(db *sqlx.DB) *catalogRepository {
	return &catalogRepository{db: db}
}

type categoryRow struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row categoryRow) category() catalog.Category {
	return catalog.Category{
		ID:          row.ID,
		Name:        row.Name,
		Slug:        row.Slug,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}

type courseRow struct {
	ID            int          `db:"id"`
	CategoryID    int          `db:"category_id"`
	CategorySlug  string       `db:"category_slug"`
	Title         string       `db:"title"`
	Description   string       `db:"description"`
	Price         float64      `db:"price"`
	DiscountPrice null.Float64 `db:"discount_price"`
	Duration      string       `db:"duration"`
	Level         string       `db:"level"`
	CreatedAt     time.Time    `db:"created_at"`
	UpdatedAt     time.Time    `db:"updated_at"`
}

func (row courseRow) course() catalog.Course {
	return catalog.Course{
		ID:            row.ID,
		CategoryID:    row.CategoryID,
		CategorySlug:  row.CategorySlug,
		Title:         row.Title,
		Description:   row.Description,
		Price:         row.Price,
		DiscountPrice: row.DiscountPrice.Ptr(),
		Duration:      row.Duration,
		Level:         row.Level,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

type courseModuleRow struct {
	ID       int    `db:"id"`
	CourseID int    `db:"course_id"`
	Position int    `db:"position"`
	Title    string `db:"title"`
	Summary  string `db:"summary"`
}

const courseSelect = `
SELECT c.id, c.category_id, cat.slug AS category_slug, c.title, c.description,
       c.price, c.discount_price, c.duration, c.level, c.created_at, c.updated_at
FROM course c
JOIN category cat ON cat.id = c.category_id`

// trapNoRowsErr maps psql "no rows" to catalog.ErrNotFound.
func trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return catalog.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

// isUniqueViolation reports a psql unique_violation.
func isUniqueViolation(err error) bool {
	if pqErr, ok := err.(*pq.Error); ok {
		return pqErr.Code == "23505"
	}
	return false
}

// Categories

func (repo catalogRepository) QueryAllCategories(ctx context.Context) ([]catalog.Category, error) {
	var rows []categoryRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT * FROM category ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying categories")
	}
	cats := make([]catalog.Category, 0, len(rows))
	for _, row := range rows {
		cats = append(cats, row.category())
	}
	return cats, nil
}

func (repo catalogRepository) GetCategoryByID(ctx context.Context, id int) (catalog.Category, error) {
	var row categoryRow
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM category WHERE id = $1", id); err != nil {
		return catalog.Category{}, trapNoRowsErr(err, "getting category by id")
	}
	return row.category(), nil
}

func (repo catalogRepository) GetCategoryBySlug(ctx context.Context, slug string) (catalog.Category, error) {
	var row categoryRow
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM category WHERE slug = $1", slug); err != nil {
		return catalog.Category{}, trapNoRowsErr(err, "getting category by slug")
	}
	return row.category(), nil
}

func (repo catalogRepository) CreateCategory(ctx context.Context, cat catalog.Category) (catalog.Category, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO category (name, slug, description, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		cat.Name, cat.Slug, cat.Description, cat.CreatedAt, cat.UpdatedAt,
	).Scan(&cat.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Category{}, catalog.ErrSlugExists
		}
		return catalog.Category{}, errors.Wrap(err, "creating category")
	}
	return cat, nil
}

func (repo catalogRepository) UpdateCategory(ctx context.Context, cat catalog.Category) (catalog.Category, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE category SET name = $1, slug = $2, description = $3, updated_at = $4 WHERE id = $5`,
		cat.Name, cat.Slug, cat.Description, cat.UpdatedAt, cat.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return catalog.Category{}, catalog.ErrSlugExists
		}
		return catalog.Category{}, errors.Wrap(err, "updating category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Category{}, catalog.ErrNotFound
	}
	return repo.GetCategoryByID(ctx, cat.ID)
}

func (repo catalogRepository) DeleteCategoriesByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.ExecContext(ctx, "DELETE FROM category WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting categories")
}

// Courses

func (repo catalogRepository) QueryAllCourses(ctx context.Context) ([]catalog.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, courseSelect+" ORDER BY c.id"); err != nil {
		return nil, errors.Wrap(err, "querying courses")
	}
	return repo.attachModules(ctx, rows)
}

func (repo catalogRepository) GetCourseByID(ctx context.Context, id int) (catalog.Course, error) {
	var row courseRow
	if err := repo.db.GetContext(ctx, &row, courseSelect+" WHERE c.id = $1", id); err != nil {
		return catalog.Course{}, trapNoRowsErr(err, "getting course by id")
	}
	courses, err := repo.attachModules(ctx, []courseRow{row})
	if err != nil {
		return catalog.Course{}, err
	}
	return courses[0], nil
}

func (repo catalogRepository) GetCoursesByCategorySlug(ctx context.Context, slug string) ([]catalog.Course, error) {
	var rows []courseRow
	if err := repo.db.SelectContext(ctx, &rows, courseSelect+" WHERE cat.slug = $1 ORDER BY c.id", slug); err != nil {
		return nil, errors.Wrap(err, "querying courses by category")
	}
	return repo.attachModules(ctx, rows)
}

func (repo catalogRepository) attachModules(ctx context.Context, rows []courseRow) ([]catalog.Course, error) {
	courses := make([]catalog.Course, 0, len(rows))
	if len(rows) == 0 {
		return courses, nil
	}

	ids := make([]int, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	var modRows []courseModuleRow
	err := repo.db.SelectContext(ctx, &modRows,
		"SELECT * FROM course_module WHERE course_id = ANY($1) ORDER BY course_id, position", pq.Array(ids))
	if err != nil {
		return nil, errors.Wrap(err, "querying course modules")
	}

	modsByCourse := make(map[int][]catalog.CourseModule, len(rows))
	for _, mr := range modRows {
		modsByCourse[mr.CourseID] = append(modsByCourse[mr.CourseID], catalog.CourseModule(mr))
	}
	for _, row := range rows {
		crs := row.course()
		crs.Modules = modsByCourse[row.ID]
		courses = append(courses, crs)
	}
	return courses, nil
}

func (repo catalogRepository) CreateCourse(ctx context.Context, crs catalog.Course) (catalog.Course, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO course (category_id, title, description, price, discount_price, duration, level, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		crs.CategoryID, crs.Title, crs.Description, crs.Price, null.Float64FromPtr(crs.DiscountPrice),
		crs.Duration, crs.Level, crs.CreatedAt, crs.UpdatedAt,
	).Scan(&crs.ID)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "creating course")
	}
	return crs, nil
}

func (repo catalogRepository) UpdateCourse(ctx context.Context, crs catalog.Course) (catalog.Course, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE course SET category_id = $1, title = $2, description = $3, price = $4,
		        discount_price = $5, duration = $6, level = $7, updated_at = $8
		 WHERE id = $9`,
		crs.CategoryID, crs.Title, crs.Description, crs.Price, null.Float64FromPtr(crs.DiscountPrice),
		crs.Duration, crs.Level, crs.UpdatedAt, crs.ID,
	)
	if err != nil {
		return catalog.Course{}, errors.Wrap(err, "updating course")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return catalog.Course{}, catalog.ErrNotFound
	}
	return repo.GetCourseByID(ctx, crs.ID)
}

func (repo catalogRepository) DeleteCoursesByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.ExecContext(ctx, "DELETE FROM course WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting courses")
}

func (repo catalogRepository) ReplaceCourseModules(ctx context.Context, courseID int, mods []catalog.CourseModule) ([]catalog.CourseModule, error) {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, "DELETE FROM course_module WHERE course_id = $1", courseID); err != nil {
		return nil, errors.Wrap(err, "clearing course modules")
	}

	rows := make([]catalog.CourseModule, 0, len(mods))
	for _, mod := range mods {
		mod.CourseID = courseID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO course_module (course_id, position, title, summary)
			 VALUES ($1, $2, $3, $4) RETURNING id`,
			mod.CourseID, mod.Position, mod.Title, mod.Summary,
		).Scan(&mod.ID)
		if err != nil {
			return nil, errors.Wrap(err, "inserting course module")
		}
		rows = append(rows, mod)
	}

	if err = tx.Commit(); err != nil {
		return nil, errors.Wrap(err, "committing course modules")
	}
	return rows, nil
}
