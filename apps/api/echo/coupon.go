package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
)

type couponApi struct {
	svc        *coupon.Service
	catalogSvc *catalog.Service
}

func registerCouponAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *coupon.Service, catalogSvc *catalog.Service) {
	api := couponApi{svc: svc, catalogSvc: catalogSvc}

	// public: pre-checkout coupon check
	g.POST("/coupons/check", api.check)

	ag := g.Group("/admin/coupons", jwt, adminMiddleware())
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
	ag.POST("", api.create)
	ag.PUT("/:id", api.update)
	ag.DELETE("", api.destroyMultiple)
}

func (api *couponApi) trapErr(err error, msg string) error {
	switch errors.Cause(err) {
	case coupon.ErrNotFound:
		return errHttpNotFound
	case coupon.ErrCodeExists:
		return core.NewValidationError(nil, core.FieldError{Field: "code", Error: coupon.ErrCodeExists.Error()})
	}
	return errors.Wrap(err, msg)
}

// check validates a coupon code against a course; the price the discount
// applies to is resolved server-side.
func (api *couponApi) check(ctx echo.Context) error {
	var data CouponCheckRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to CouponCheckRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	crs, err := api.catalogSvc.GetCourseByID(reqCtx, data.CourseID)
	if err != nil {
		if errors.Cause(err) == catalog.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting course")
	}

	desc, err := api.svc.Validate(reqCtx, data.Code, crs.ID, crs.BasePrice())
	if err != nil {
		return errors.Wrap(err, "checking coupon")
	}
	return ctx.JSON(http.StatusOK, desc)
}

func (api *couponApi) query(ctx echo.Context) error {
	cpns, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying coupons")
	}
	return ctx.JSON(http.StatusOK, cpns)
}

func (api *couponApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	cpn, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return api.trapErr(err, "getting coupon")
	}
	return ctx.JSON(http.StatusOK, cpn)
}

func (api *couponApi) create(ctx echo.Context) error {
	var data coupon.NewCoupon
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCoupon")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cpn, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return api.trapErr(err, "creating coupon")
	}
	return ctx.JSON(http.StatusCreated, cpn)
}

func (api *couponApi) update(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	orig, err := api.svc.GetByID(reqCtx, id)
	if err != nil {
		return api.trapErr(err, "getting coupon")
	}

	var data coupon.UpdateCoupon
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCoupon")
	}
	if err = data.Validate(orig); err != nil {
		return err
	}
	cpn, err := api.svc.Update(reqCtx, id, data)
	if err != nil {
		return api.trapErr(err, "updating coupon")
	}
	return ctx.JSON(http.StatusOK, cpn)
}

func (api *couponApi) destroyMultiple(ctx echo.Context) error {
	ids, err := queryIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting coupons")
	}
	return ctx.NoContent(http.StatusNoContent)
}
