package main

import (
	"log"
	"os"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/testimonial"
	"github.com/chuodata/usajili/storage/database"
	"github.com/chuodata/usajili/storage/database/sqlx"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	// set up DB
	errAndDie(database.CreateIfNotExist(core.Conf))
	db, err := database.Open(core.Conf)
	errAndDie(err)
	defer db.Close()
	errAndDie(db.Ping())

	// start CLI
	cli := commandLine{
		db:             db,
		catalogSvc:     catalog.NewService(sqlxrepos.NewCatalogRepository(db)),
		couponSvc:      coupon.NewService(sqlxrepos.NewCouponRepository(db)),
		testimonialSvc: testimonial.NewService(sqlxrepos.NewTestimonialRepository(db)),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
