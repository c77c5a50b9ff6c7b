package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core/testimonial"
)

type testimonialRepository struct {
	db *sqlx.DB
}

var _ testimonial.Repository = (*testimonialRepository)(nil) // interface compliance check

func NewTestimonialRepository(db *sqlx.DB) *testimonialRepository {
	return &testimonialRepository{db: db}
}

type testimonialRow struct {
	ID          int       `db:"id"`
	Author      string    `db:"author"`
	Role        string    `db:"role"`
	Quote       string    `db:"quote"`
	Rating      int       `db:"rating"`
	IsPublished bool      `db:"is_published"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (row testimonialRow) testimonial() testimonial.Testimonial {
	return testimonial.Testimonial(row)
}

func (repo testimonialRepository) query(ctx context.Context, query string, args ...interface{}) ([]testimonial.Testimonial, error) {
	var rows []testimonialRow
	if err := repo.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "querying testimonials")
	}
	tsts := make([]testimonial.Testimonial, 0, len(rows))
	for _, row := range rows {
		tsts = append(tsts, row.testimonial())
	}
	return tsts, nil
}

func (repo testimonialRepository) QueryAllTestimonials(ctx context.Context) ([]testimonial.Testimonial, error) {
	return repo.query(ctx, "SELECT * FROM testimonial ORDER BY id")
}

func (repo testimonialRepository) QueryPublishedTestimonials(ctx context.Context) ([]testimonial.Testimonial, error) {
	return repo.query(ctx, "SELECT * FROM testimonial WHERE is_published ORDER BY id")
}

func (repo testimonialRepository) GetTestimonialByID(ctx context.Context, id int) (testimonial.Testimonial, error) {
	var row testimonialRow
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM testimonial WHERE id = $1", id); err != nil {
		if err == sql.ErrNoRows {
			return testimonial.Testimonial{}, testimonial.ErrNotFound
		}
		return testimonial.Testimonial{}, errors.Wrap(err, "getting testimonial by id")
	}
	return row.testimonial(), nil
}

func (repo testimonialRepository) CreateTestimonial(ctx context.Context, tst testimonial.Testimonial) (testimonial.Testimonial, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO testimonial (author, role, quote, rating, is_published, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		tst.Author, tst.Role, tst.Quote, tst.Rating, tst.IsPublished, tst.CreatedAt, tst.UpdatedAt,
	).Scan(&tst.ID)
	if err != nil {
		return testimonial.Testimonial{}, errors.Wrap(err, "creating testimonial")
	}
	return tst, nil
}

func (repo testimonialRepository) UpdateTestimonial(ctx context.Context, tst testimonial.Testimonial) (testimonial.Testimonial, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE testimonial SET author = $1, role = $2, quote = $3, rating = $4,
		        is_published = $5, updated_at = $6
		 WHERE id = $7`,
		tst.Author, tst.Role, tst.Quote, tst.Rating, tst.IsPublished, tst.UpdatedAt, tst.ID,
	)
	if err != nil {
		return testimonial.Testimonial{}, errors.Wrap(err, "updating testimonial")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return testimonial.Testimonial{}, testimonial.ErrNotFound
	}
	return repo.GetTestimonialByID(ctx, tst.ID)
}

func (repo testimonialRepository) DeleteTestimonialsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.ExecContext(ctx, "DELETE FROM testimonial WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting testimonials")
}
