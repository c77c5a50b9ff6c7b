package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/chuodata/usajili/apps/api/echo"
	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/registration"
	"github.com/chuodata/usajili/core/testimonial"
	"github.com/chuodata/usajili/services/email"
	"github.com/chuodata/usajili/services/logger"
	"github.com/chuodata/usajili/storage/database"
	"github.com/chuodata/usajili/storage/database/sqlx"
)

func main() {
	std := log.New(os.Stdout, core.Conf.AppName+" : ", log.LstdFlags|log.Lshortfile)

	var logger core.Logger
	if core.Conf.Debug || core.Conf.TestMode {
		logger = logsvc.NewStdLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, core.Conf)
	}

	if err := run(std, logger); err != nil {
		logger.Fatal("api: fatal", err)
	}
}

func run(std *log.Logger, logger core.Logger) error {
	// set up DB
	db, err := database.Open(core.Conf)
	if err != nil {
		return err
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if core.Conf.Debug {
		mailSvc = emailsvc.NewConsoleService()
	} else {
		mailSvc = emailsvc.NewSendgridService(logger)
	}

	catalogSvc := catalog.NewService(sqlxrepos.NewCatalogRepository(db))
	couponSvc := coupon.NewService(sqlxrepos.NewCouponRepository(db))
	testimonialSvc := testimonial.NewService(sqlxrepos.NewTestimonialRepository(db))
	sessions := registration.NewSessionStore(core.Conf.WizardSessionTTL)
	registrationSvc := registration.NewService(
		sqlxrepos.NewRegistrationRepository(db), catalogSvc, couponSvc, mailSvc, sessions,
	)

	// start API server
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	app := echoapi.NewServer(
		&echoapi.Options{
			Address:         core.Conf.Server.Host + ":" + core.Conf.Server.Port,
			Logger:          logger,
			Shutdown:        shutdown,
			CatalogSvc:      catalogSvc,
			TestimonialSvc:  testimonialSvc,
			CouponSvc:       couponSvc,
			RegistrationSvc: registrationSvc,
		},
	)

	serverErrors := make(chan error, 1)
	go func() {
		std.Printf("api: listening on %s", core.Conf.Server.Host+":"+core.Conf.Server.Port)
		app.Start()
		serverErrors <- nil
	}()

	select {
	case err := <-serverErrors:
		return err
	case sig := <-shutdown:
		std.Printf("api: %v: shutting down", sig)

		ctx, cancel := context.WithTimeout(context.Background(), core.Conf.Server.ShutdownTimeout)
		defer cancel()

		if err := app.Stop(ctx); err != nil {
			std.Printf("api: graceful shutdown failed: %v", err)
			return err
		}
	}
	return nil
}
