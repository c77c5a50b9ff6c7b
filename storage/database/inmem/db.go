package inmemdb

import (
	"sync"

	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/registration"
	"github.com/chuodata/usajili/core/testimonial"
)

// DB is an in-memory stand-in for the real database; it backs tests and the
// static-catalog deployment mode.
type (
	DB struct {
		category     *categoryTable
		course       *courseTable
		coupon       *couponTable
		registration *registrationTable
		testimonial  *testimonialTable
	}

	categoryTable struct {
		mutex sync.RWMutex
		seq   int
		table map[int]*catalog.Category
	}

	courseTable struct {
		mutex   sync.RWMutex
		seq     int
		modSeq  int
		table   map[int]*catalog.Course
		modules map[int][]catalog.CourseModule // keyed by course id
	}

	couponTable struct {
		mutex sync.RWMutex
		seq   int
		table map[int]*coupon.Coupon
	}

	registrationTable struct {
		mutex sync.RWMutex
		seq   int
		table map[int]*registration.Registration
	}

	testimonialTable struct {
		mutex sync.RWMutex
		seq   int
		table map[int]*testimonial.Testimonial
	}
)

func Open() (*DB, error) {
	db := &DB{
		category:     &categoryTable{table: make(map[int]*catalog.Category)},
		course:       &courseTable{table: make(map[int]*catalog.Course), modules: make(map[int][]catalog.CourseModule)},
		coupon:       &couponTable{table: make(map[int]*coupon.Coupon)},
		registration: &registrationTable{table: make(map[int]*registration.Registration)},
		testimonial:  &testimonialTable{table: make(map[int]*testimonial.Testimonial)},
	}
	return db, nil
}
