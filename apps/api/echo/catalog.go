package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core"
	"github.com/chuodata/usajili/core/catalog"
)

type catalogApi struct {
	svc *catalog.Service
}

func registerCatalogAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *catalog.Service) {
	api := catalogApi{svc: svc}

	// public endpoints
	g.GET("/categories", api.queryCategories)
	g.GET("/categories/:slug", api.retrieveCategory)
	g.GET("/categories/:slug/courses", api.queryCategoryCourses)
	g.GET("/courses", api.queryCourses)
	g.GET("/courses/:id", api.retrieveCourse)

	// admin endpoints
	ag := g.Group("/admin", jwt, adminMiddleware())
	ag.POST("/categories", api.createCategory)
	ag.PUT("/categories/:id", api.updateCategory)
	ag.DELETE("/categories", api.destroyCategories)
	ag.POST("/courses", api.createCourse)
	ag.PUT("/courses/:id", api.updateCourse)
	ag.DELETE("/courses", api.destroyCourses)
	ag.PUT("/courses/:id/modules", api.replaceModules)
}

func (api *catalogApi) trapErr(err error, msg string) error {
	switch errors.Cause(err) {
	case catalog.ErrNotFound:
		return errHttpNotFound
	case catalog.ErrSlugExists:
		return core.NewValidationError(nil, core.FieldError{Field: "slug", Error: catalog.ErrSlugExists.Error()})
	}
	return errors.Wrap(err, msg)
}

// Handlers

func (api *catalogApi) queryCategories(ctx echo.Context) error {
	cats, err := api.svc.QueryCategories(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying categories")
	}
	return ctx.JSON(http.StatusOK, cats)
}

func (api *catalogApi) retrieveCategory(ctx echo.Context) error {
	cat, err := api.svc.GetCategoryBySlug(ctx.Request().Context(), ctx.Param("slug"))
	if err != nil {
		return api.trapErr(err, "getting category")
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *catalogApi) queryCategoryCourses(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	if _, err := api.svc.GetCategoryBySlug(reqCtx, ctx.Param("slug")); err != nil {
		return api.trapErr(err, "getting category")
	}
	crss, err := api.svc.GetCoursesByCategory(reqCtx, ctx.Param("slug"))
	if err != nil {
		return errors.Wrap(err, "querying category courses")
	}
	return ctx.JSON(http.StatusOK, crss)
}

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	crss, err := api.svc.QueryCourses(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, crss)
}

func (api *catalogApi) retrieveCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	crs, err := api.svc.GetCourseByID(ctx.Request().Context(), id)
	if err != nil {
		return api.trapErr(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *catalogApi) createCategory(ctx echo.Context) error {
	var data catalog.NewCategory
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCategory")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	cat, err := api.svc.CreateCategory(ctx.Request().Context(), data)
	if err != nil {
		return api.trapErr(err, "creating category")
	}
	return ctx.JSON(http.StatusCreated, cat)
}

func (api *catalogApi) updateCategory(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	orig, err := api.svc.GetCategoryByID(reqCtx, id)
	if err != nil {
		return api.trapErr(err, "getting category")
	}

	var data catalog.UpdateCategory
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCategory")
	}
	if err = data.Validate(orig); err != nil {
		return err
	}
	cat, err := api.svc.UpdateCategory(reqCtx, id, data)
	if err != nil {
		return api.trapErr(err, "updating category")
	}
	return ctx.JSON(http.StatusOK, cat)
}

func (api *catalogApi) destroyCategories(ctx echo.Context) error {
	ids, err := queryIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteCategories(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting categories")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) createCourse(ctx echo.Context) error {
	var data catalog.NewCourse
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewCourse")
	}
	if err := data.Validate(); err != nil {
		return err
	}
	crs, err := api.svc.CreateCourse(ctx.Request().Context(), data)
	if err != nil {
		return api.trapErr(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, crs)
}

func (api *catalogApi) updateCourse(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}
	reqCtx := ctx.Request().Context()
	orig, err := api.svc.GetCourseByID(reqCtx, id)
	if err != nil {
		return api.trapErr(err, "getting course")
	}

	var data catalog.UpdateCourse
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateCourse")
	}
	if err = data.Validate(orig); err != nil {
		return err
	}
	crs, err := api.svc.UpdateCourse(reqCtx, id, data)
	if err != nil {
		return api.trapErr(err, "updating course")
	}
	return ctx.JSON(http.StatusOK, crs)
}

func (api *catalogApi) destroyCourses(ctx echo.Context) error {
	ids, err := queryIDs(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteCourses(ctx.Request().Context(), ids...); err != nil {
		return errors.Wrap(err, "deleting courses")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *catalogApi) replaceModules(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return err
	}

	var data []catalog.NewCourseModule
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to []NewCourseModule")
	}
	for i := range data {
		if err = core.Validate.Struct(&data[i]); err != nil {
			return err
		}
	}

	mods, err := api.svc.ReplaceModules(ctx.Request().Context(), id, data)
	if err != nil {
		return api.trapErr(err, "replacing course modules")
	}
	return ctx.JSON(http.StatusOK, mods)
}
