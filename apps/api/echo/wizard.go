package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core/registration"
)

type wizardApi struct {
	svc *registration.Service
}

func registerWizardAPI(g *echo.Group, svc *registration.Service) {
	api := wizardApi{svc: svc}

	wg := g.Group("/wizard")
	wg.POST("", api.start)
	wg.GET("/fields", api.fields)

	tg := wg.Group("/:token")
	tg.GET("", api.state)
	tg.PUT("/field", api.setField)
	tg.POST("/next", api.next)
	tg.POST("/previous", api.previous)
	tg.POST("/jump", api.jump)
	tg.POST("/submit", api.submit)
}

func (api *wizardApi) trapErr(err error, msg string) error {
	switch errors.Cause(err) {
	case registration.ErrSessionNotFound:
		return errSessionExpired
	case registration.ErrNotOnReviewStep, registration.ErrSubmitInFlight:
		return echo.NewHTTPError(http.StatusConflict, errors.Cause(err).Error())
	}
	return errors.Wrap(err, msg)
}

// start opens a new wizard session. `category` and `course` query params
// pre-seed the enrollment the way campaign links do.
func (api *wizardApi) start(ctx echo.Context) error {
	courseID, _ := strconv.Atoi(ctx.QueryParam("course"))
	state, err := api.svc.StartWizard(ctx.Request().Context(), ctx.QueryParam("category"), courseID)
	if err != nil {
		return api.trapErr(err, "starting wizard")
	}
	return ctx.JSON(http.StatusCreated, state)
}

// fields lists the extra enrollment fields collected for a category.
func (api *wizardApi) fields(ctx echo.Context) error {
	defs := registration.ResolveFieldDefs(ctx.QueryParam("category"))
	return ctx.JSON(http.StatusOK, defs)
}

func (api *wizardApi) state(ctx echo.Context) error {
	state, err := api.svc.GetState(ctx.Request().Context(), ctx.Param("token"))
	if err != nil {
		return api.trapErr(err, "getting wizard state")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *wizardApi) setField(ctx echo.Context) error {
	var data SetFieldRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to SetFieldRequest")
	}
	if err := data.Validate(); err != nil {
		return err
	}

	state, err := api.svc.SetField(ctx.Request().Context(), ctx.Param("token"), data.Name, data.Value)
	if err != nil {
		return api.trapErr(err, "setting wizard field")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *wizardApi) next(ctx echo.Context) error {
	state, err := api.svc.Next(ctx.Request().Context(), ctx.Param("token"))
	if err != nil {
		return api.trapErr(err, "advancing wizard")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *wizardApi) previous(ctx echo.Context) error {
	state, err := api.svc.Previous(ctx.Request().Context(), ctx.Param("token"))
	if err != nil {
		return api.trapErr(err, "rewinding wizard")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *wizardApi) jump(ctx echo.Context) error {
	var data JumpRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to JumpRequest")
	}

	state, err := api.svc.JumpTo(ctx.Request().Context(), ctx.Param("token"), data.Index)
	if err != nil {
		return api.trapErr(err, "jumping wizard")
	}
	return ctx.JSON(http.StatusOK, state)
}

func (api *wizardApi) submit(ctx echo.Context) error {
	reg, err := api.svc.Submit(ctx.Request().Context(), ctx.Param("token"))
	if err != nil {
		return api.trapErr(err, "submitting registration")
	}
	return ctx.JSON(http.StatusCreated, reg)
}
