package inmemdb

import (
	"context"
	"sort"

	"github.com/chuodata/usajili/core/coupon"
)

type couponRepository struct {
	db *couponTable
}

var _ coupon.Repository = (*couponRepository)(nil)

func NewCouponRepository(db *DB) *couponRepository {
	return &couponRepository{db: db.coupon}
}

func (repo *couponRepository) query() []coupon.Coupon {
	cpns := make([]coupon.Coupon, 0, len(repo.db.table))
	for _, cpn := range repo.db.table {
		cpns = append(cpns, *cpn)
	}
	sort.Slice(cpns, func(i, j int) bool { return cpns[i].ID < cpns[j].ID })
	return cpns
}

func (repo *couponRepository) GetCouponByCode(_ context.Context, code string) (coupon.Coupon, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	for _, cpn := range repo.db.table {
		if cpn.Code == code { // exact match, case included
			return *cpn, nil
		}
	}
	return coupon.Coupon{}, coupon.ErrNotFound
}

func (repo *couponRepository) QueryAllCoupons(_ context.Context) ([]coupon.Coupon, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *couponRepository) GetCouponByID(_ context.Context, id int) (coupon.Coupon, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if cpn, ok := repo.db.table[id]; ok {
		return *cpn, nil
	}
	return coupon.Coupon{}, coupon.ErrNotFound
}

func (repo *couponRepository) CreateCoupon(_ context.Context, cpn coupon.Coupon) (coupon.Coupon, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, existing := range repo.db.table {
		if existing.Code == cpn.Code {
			return coupon.Coupon{}, coupon.ErrCodeExists
		}
	}
	repo.db.seq++
	cpn.ID = repo.db.seq
	repo.db.table[cpn.ID] = &cpn
	return cpn, nil
}

func (repo *couponRepository) UpdateCoupon(_ context.Context, cpn coupon.Coupon) (coupon.Coupon, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[cpn.ID]
	if !ok {
		return coupon.Coupon{}, coupon.ErrNotFound
	}
	for _, existing := range repo.db.table {
		if existing.Code == cpn.Code && existing.ID != cpn.ID {
			return coupon.Coupon{}, coupon.ErrCodeExists
		}
	}
	cpn.CreatedAt = orig.CreatedAt
	repo.db.table[cpn.ID] = &cpn
	return cpn, nil
}

func (repo *couponRepository) DeleteCouponsByID(_ context.Context, ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
