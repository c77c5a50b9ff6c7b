package sqlxrepos

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/chuodata/usajili/core/coupon"
)

type couponRepository struct {
	db *sqlx.DB
}

var _ coupon.Repository = (*couponRepository)(nil) // interface compliance check

func NewCouponRepository(db *sqlx.DB) *couponRepository {
	return &couponRepository{db: db}
}

type couponRow struct {
	ID        int          `db:"id"`
	Code      string       `db:"code"`
	Type      string       `db:"type"`
	Value     float64      `db:"value"`
	CourseID  null.Int     `db:"course_id"`
	ExpiresAt null.Time    `db:"expires_at"`
	MinPrice  null.Float64 `db:"min_price"`
	CreatedAt time.Time    `db:"created_at"`
	UpdatedAt time.Time    `db:"updated_at"`
}

func (row couponRow) coupon() coupon.Coupon {
	cpn := coupon.Coupon{
		ID:        row.ID,
		Code:      row.Code,
		Type:      row.Type,
		Value:     row.Value,
		CourseID:  row.CourseID.Ptr(),
		MinPrice:  row.MinPrice.Ptr(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
	if row.ExpiresAt.Valid {
		t := row.ExpiresAt.Time
		cpn.ExpiresAt = &t
	}
	return cpn
}

func nullTimeFromPtr(t *time.Time) null.Time {
	if t == nil {
		return null.Time{}
	}
	return null.TimeFrom(*t)
}

func (repo couponRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return coupon.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo couponRepository) GetCouponByCode(ctx context.Context, code string) (coupon.Coupon, error) {
	var row couponRow
	// exact, case-sensitive match
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM coupon WHERE code = $1", code); err != nil {
		return coupon.Coupon{}, repo.trapNoRowsErr(err, "getting coupon by code")
	}
	return row.coupon(), nil
}

func (repo couponRepository) QueryAllCoupons(ctx context.Context) ([]coupon.Coupon, error) {
	var rows []couponRow
	if err := repo.db.SelectContext(ctx, &rows, "SELECT * FROM coupon ORDER BY id"); err != nil {
		return nil, errors.Wrap(err, "querying coupons")
	}
	cpns := make([]coupon.Coupon, 0, len(rows))
	for _, row := range rows {
		cpns = append(cpns, row.coupon())
	}
	return cpns, nil
}

func (repo couponRepository) GetCouponByID(ctx context.Context, id int) (coupon.Coupon, error) {
	var row couponRow
	if err := repo.db.GetContext(ctx, &row, "SELECT * FROM coupon WHERE id = $1", id); err != nil {
		return coupon.Coupon{}, repo.trapNoRowsErr(err, "getting coupon by id")
	}
	return row.coupon(), nil
}

func (repo couponRepository) CreateCoupon(ctx context.Context, cpn coupon.Coupon) (coupon.Coupon, error) {
	err := repo.db.QueryRowContext(ctx,
		`INSERT INTO coupon (code, type, value, course_id, expires_at, min_price, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`,
		cpn.Code, cpn.Type, cpn.Value, null.IntFromPtr(cpn.CourseID),
		nullTimeFromPtr(cpn.ExpiresAt), null.Float64FromPtr(cpn.MinPrice),
		cpn.CreatedAt, cpn.UpdatedAt,
	).Scan(&cpn.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return coupon.Coupon{}, coupon.ErrCodeExists
		}
		return coupon.Coupon{}, errors.Wrap(err, "creating coupon")
	}
	return cpn, nil
}

func (repo couponRepository) UpdateCoupon(ctx context.Context, cpn coupon.Coupon) (coupon.Coupon, error) {
	res, err := repo.db.ExecContext(ctx,
		`UPDATE coupon SET code = $1, type = $2, value = $3, course_id = $4,
		        expires_at = $5, min_price = $6, updated_at = $7
		 WHERE id = $8`,
		cpn.Code, cpn.Type, cpn.Value, null.IntFromPtr(cpn.CourseID),
		nullTimeFromPtr(cpn.ExpiresAt), null.Float64FromPtr(cpn.MinPrice),
		cpn.UpdatedAt, cpn.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return coupon.Coupon{}, coupon.ErrCodeExists
		}
		return coupon.Coupon{}, errors.Wrap(err, "updating coupon")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	return repo.GetCouponByID(ctx, cpn.ID)
}

func (repo couponRepository) DeleteCouponsByID(ctx context.Context, ids ...int) error {
	if len(ids) == 0 {
		return nil
	}
	_, err := repo.db.ExecContext(ctx, "DELETE FROM coupon WHERE id = ANY($1)", pq.Array(ids))
	return errors.Wrap(err, "deleting coupons")
}
