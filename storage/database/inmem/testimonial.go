package inmemdb

import (
	"context"
	"sort"

	"github.com/chuodata/usajili/core/testimonial"
)

type testimonialRepository struct {
	db *testimonialTable
}

var _ testimonial.Repository = (*testimonialRepository)(nil)

func NewTestimonialRepository(db *DB) *testimonialRepository {
	return &testimonialRepository{db: db.testimonial}
}

func (repo *testimonialRepository) query() []testimonial.Testimonial {
	tsts := make([]testimonial.Testimonial, 0, len(repo.db.table))
	for _, tst := range repo.db.table {
		tsts = append(tsts, *tst)
	}
	sort.Slice(tsts, func(i, j int) bool { return tsts[i].ID < tsts[j].ID })
	return tsts
}

func (repo *testimonialRepository) QueryAllTestimonials(_ context.Context) ([]testimonial.Testimonial, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *testimonialRepository) QueryPublishedTestimonials(_ context.Context) ([]testimonial.Testimonial, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	tsts := make([]testimonial.Testimonial, 0)
	for _, tst := range repo.query() {
		if tst.IsPublished {
			tsts = append(tsts, tst)
		}
	}
	return tsts, nil
}

func (repo *testimonialRepository) GetTestimonialByID(_ context.Context, id int) (testimonial.Testimonial, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if tst, ok := repo.db.table[id]; ok {
		return *tst, nil
	}
	return testimonial.Testimonial{}, testimonial.ErrNotFound
}

func (repo *testimonialRepository) CreateTestimonial(_ context.Context, tst testimonial.Testimonial) (testimonial.Testimonial, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	tst.ID = repo.db.seq
	repo.db.table[tst.ID] = &tst
	return tst, nil
}

func (repo *testimonialRepository) UpdateTestimonial(_ context.Context, tst testimonial.Testimonial) (testimonial.Testimonial, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	orig, ok := repo.db.table[tst.ID]
	if !ok {
		return testimonial.Testimonial{}, testimonial.ErrNotFound
	}
	tst.CreatedAt = orig.CreatedAt
	repo.db.table[tst.ID] = &tst
	return tst, nil
}

func (repo *testimonialRepository) DeleteTestimonialsByID(_ context.Context, ids ...int) error {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	for _, id := range ids {
		delete(repo.db.table, id)
	}
	return nil
}
