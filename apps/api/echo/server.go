package echoapi

import (
	"context"
	"net/http"
	"os"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
	"github.com/chuodata/usajili/core/registration"
	"github.com/chuodata/usajili/core/testimonial"
)

type (
	Options struct {
		Address        string
		DisableReqLogs bool
		Logger         core.Logger

		// Shutdown receives a SIGTERM whenever an unrecoverable error is caught
		// by the error handler. Optional.
		Shutdown chan os.Signal

		CatalogSvc      *catalog.Service
		TestimonialSvc  *testimonial.Service
		CouponSvc       *coupon.Service
		RegistrationSvc *registration.Service
	}

	Server interface {
		http.Handler
		Start()
		Stop(context.Context) error
	}

	server struct {
		opts *Options
		app  *echo.Echo
	}
)

var _ Server = (*server)(nil)

func NewServer(opts *Options) Server {
	s := &server{
		opts: opts,
		app:  echo.New(),
	}
	s.setup()
	return s
}

func (s *server) signalShutdown() {
	if s.opts.Shutdown != nil {
		s.opts.Shutdown <- syscall.SIGTERM
	}
}

func (s *server) setup() {
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.opts.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(core.Conf.Debug || core.Conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.opts.Logger, s.signalShutdown)
	s.app.Debug = core.Conf.Debug

	s.app.GET("/", home)

	v1 := s.app.Group("/v1")
	jwt := middleware.JWTWithConfig(appJWTConfig)

	registerCatalogAPI(v1, jwt, s.opts.CatalogSvc)
	registerTestimonialAPI(v1, jwt, s.opts.TestimonialSvc)
	registerCouponAPI(v1, jwt, s.opts.CouponSvc, s.opts.CatalogSvc)
	registerWizardAPI(v1, s.opts.RegistrationSvc)
	registerRegistrationAPI(v1, jwt, s.opts.RegistrationSvc)
	registerAuthAPI(v1)
}

func (s *server) Start() {
	s.app.Logger.Fatal(s.app.Start(s.opts.Address))
}

func (s *server) Stop(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to Usajili API!")
}
