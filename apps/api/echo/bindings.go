package echoapi

import (
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/chuodata/usajili/core"
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	SetFieldRequest struct {
		Name  string `json:"name" validate:"required"`
		Value string `json:"value"`
	}

	JumpRequest struct {
		Index int `json:"index"`
	}

	CouponCheckRequest struct {
		Code     string `json:"code" validate:"required"`
		CourseID int    `json:"course_id" validate:"required"`
	}
)

func (r *LoginRequest) Validate() error {
	r.Email = core.CleanString(r.Email, true)
	return core.Validate.Struct(r)
}

func (r *SetFieldRequest) Validate() error {
	r.Name = core.CleanString(r.Name, true)
	return core.Validate.Struct(r)
}

func (r *CouponCheckRequest) Validate() error {
	r.Code = core.CleanString(r.Code)
	return core.Validate.Struct(r)
}

// pathID parses the `:id` path param.
func pathID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

// queryIDs parses the `ids` query param, a comma-separated list of ints.
func queryIDs(ctx echo.Context) ([]int, error) {
	raw := ctx.QueryParam("ids")
	if raw == "" {
		return nil, core.NewValidationError(errors.New("ids is required"))
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, core.NewValidationError(errors.Errorf("invalid id %q", part))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
