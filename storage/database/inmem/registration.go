package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/chuodata/usajili/core/registration"
)

type registrationRepository struct {
	db *registrationTable
}

var _ registration.Repository = (*registrationRepository)(nil)

func NewRegistrationRepository(db *DB) *registrationRepository {
	return &registrationRepository{db: db.registration}
}

func (repo *registrationRepository) query() []registration.Registration {
	regs := make([]registration.Registration, 0, len(repo.db.table))
	for _, reg := range repo.db.table {
		regs = append(regs, *reg)
	}
	sort.Slice(regs, func(i, j int) bool { return regs[i].ID < regs[j].ID })
	return regs
}

func (repo *registrationRepository) CreateRegistration(_ context.Context, reg registration.Registration) (registration.Registration, error) {
	repo.db.mutex.Lock()
	defer repo.db.mutex.Unlock()

	repo.db.seq++
	reg.ID = repo.db.seq
	repo.db.table[reg.ID] = &reg
	return reg, nil
}

func (repo *registrationRepository) QueryAllRegistrations(_ context.Context) ([]registration.Registration, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()
	return repo.query(), nil
}

func (repo *registrationRepository) GetRegistrationByID(_ context.Context, id int) (registration.Registration, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	if reg, ok := repo.db.table[id]; ok {
		return *reg, nil
	}
	return registration.Registration{}, registration.ErrNotFound
}

func (repo *registrationRepository) FilterRegistrations(_ context.Context, filter registration.QueryFilter) ([]registration.Registration, error) {
	repo.db.mutex.RLock()
	defer repo.db.mutex.RUnlock()

	regs := make([]registration.Registration, 0)
	for _, reg := range repo.query() {
		if matchesFilter(reg, filter) {
			regs = append(regs, reg)
		}
	}
	return regs, nil
}

func matchesFilter(reg registration.Registration, filter registration.QueryFilter) bool {
	if filter.Search != "" {
		search := strings.ToLower(filter.Search)
		name := strings.ToLower(reg.FirstName + " " + reg.LastName)
		if !strings.Contains(name, search) && !strings.Contains(strings.ToLower(reg.Email), search) {
			return false
		}
	}
	if filter.Category != "" && reg.Category != filter.Category {
		return false
	}
	if filter.CourseID != 0 && reg.CourseID != filter.CourseID {
		return false
	}
	if !filter.CreatedFrom.IsZero() && reg.CreatedAt.Before(filter.CreatedFrom) {
		return false
	}
	if !filter.CreatedTo.IsZero() && reg.CreatedAt.After(filter.CreatedTo) {
		return false
	}
	return true
}
