package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/expensetracker/expense-service/internal/api/middleware"
	"github.com/expensetracker/expense-service/internal/core/domain"
)

// ctxClaims returns the token claims injected by the Auth middleware.
// Absent claims mean the route was mounted without the middleware.
func ctxClaims(c echo.Context) (*domain.TokenClaims, error) {
	claims, ok := c.Get(middleware.ClaimsKey).(*domain.TokenClaims)
	if !ok || claims == nil {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	var id int64
	if err := echo.PathParamsBinder(c).MustInt64("id", &id).BindError(); err != nil {
		return 0, echo.NewHTTPError(http.StatusUnprocessableEntity, "id must be an integer")
	}
	return id, nil
}

// pageQuery reads ?offset=&limit=, falling back to domain.DefaultPage.
func pageQuery(c echo.Context) (domain.Page, error) {
	page := domain.DefaultPage()
	err := echo.QueryParamsBinder(c).
		Int("offset", &page.Offset).
		Int("limit", &page.Limit).
		BindError()
	if err != nil {
		return page, echo.NewHTTPError(http.StatusUnprocessableEntity, "offset and limit must be integers")
	}
	if !page.Valid() {
		return page, echo.NewHTTPError(http.StatusUnprocessableEntity,
			"offset must be >= 0 and limit between 0 and "+strconv.Itoa(domain.MaxPageLimit))
	}
	return page, nil
}

// bindBody binds and validates the request body into req.
func bindBody(c echo.Context, req any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, "invalid request body")
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}
	return nil
}
