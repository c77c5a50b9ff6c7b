package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core/testimonial"
)

type testimonialApi struct {
	svc *testimonial.Service
}

func registerTestimonialAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *testimonial.Service) {
	api := testimonialApi{svc: svc}

	// public: published testimonials only
	g.GET("/testimonials", api.queryPublished)

	ag := g.Group("/admin/testimonials", jwt, adminMiddleware())
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.POST("", api.create)
	ag.PUT("/:id", api.update)
	ag.DELETE("", api.destroyMultiple)
}

func (api *testimonialApi) trapErr(err error, msg string) error {
	if errors.Cause(err) == testimonial.ErrNotFound {
		return errHttpNotFound
	}
	return errors.Wrap(err, msg)
}

func (api *testimonialApi) queryPublished(ctx echo.Context) error {
	tsts, err := api.svc.QueryPublished(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying published testimonials")
	}
	return ctx.JSON(http.StatusOK, tsts)
}

func (api *testimonialApi) query(ctx echo.Context) error {
	tsts, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying testimonials")
	}
	return ctx.JSON(http.StatusOK, tsts)
}

func (api *testimonialApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	tst, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return api.trapErr(err, "getting testimonial")
	}
	return ctx.JSON(http.StatusOK, tst)
}

func (api *testimonialApi) create(ctx echo.Context) error {
	var data testimonial.NewTestimonial
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTestimonial")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	tst, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating testimonial")
	}
	return ctx.JSON(http.StatusCreated, tst)
}

func (api *testimonialApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	orig, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return api.trapErr(err, "getting testimonial")
	}

	var data testimonial.UpdateTestimonial
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTestimonial")
	}
	if err = data.Validate(orig); err != nil {
		return err
	}
	tst, err := api.svc.Update(reqCtx, id, data)
	if err != nil {
		return api.trapErr(err, "updating testimonial")
	}
	return ctx.JSON(http.StatusOK, tst)
}

func (api *testimonialApi) destroyMultiple(ctx echo.Context) error {
	ids, err := queryIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting testimonials")
	}
	return ctx.NoContent(http.StatusNoContent)
}
