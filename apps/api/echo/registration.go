package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/registration"
)

type registrationApi struct {
	svc *registration.Service
}

func registerRegistrationAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *registration.Service) {
	api := registrationApi{svc: svc}

	ag := g.Group("/admin/registrations", jwt, adminMiddleware())
	ag.GET("", api.query)
	ag.GET("/:id", api.retrieve)
}

var filterDateLayout = "2006-01-02"

func (api *registrationApi) bindFilter(ctx echo.Context) (registration.QueryFilter, error) {
	filter := registration.QueryFilter{
		Search:   ctx.QueryParam("search"),
		Category: ctx.QueryParam("category"),
	}
	if raw := ctx.QueryParam("course"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			return filter, core.NewValidationError(errors.New("invalid course id"))
		}
		filter.CourseID = id
	}
	if raw := ctx.QueryParam("created_from"); raw != "" {
		t, err := time.Parse(filterDateLayout, raw)
		if err != nil {
			return filter, core.NewValidationError(errors.New("invalid created_from date"))
		}
		filter.CreatedFrom = t
	}
	if raw := ctx.QueryParam("created_to"); raw != "" {
		t, err := time.Parse(filterDateLayout, raw)
		if err != nil {
			return filter, core.NewValidationError(errors.New("invalid created_to date"))
		}
		filter.CreatedTo = t
	}
	filter.Clean()
	return filter, nil
}

func (api *registrationApi) query(ctx echo.Context) error {
	filter, err := api.bindFilter(ctx)
	if err != nil {
		return err
	}

	reqCtx := ctx.Request().Context()
	var regs []registration.Registration
	if filter.IsEmpty() {
		regs, err = api.svc.QueryAll(reqCtx)
	} else {
		regs, err = api.svc.Filter(reqCtx, filter)
	}
	if err != nil {
		return errors.Wrap(err, "querying registrations")
	}
	return ctx.JSON(http.StatusOK, regs)
}

func (api *registrationApi) retrieve(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	reg, err := api.svc.GetByID(ctx.Request().Context(), id)
	if err != nil {
		if errors.Cause(err) == registration.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting registration")
	}
	return ctx.JSON(http.StatusOK, reg)
}
