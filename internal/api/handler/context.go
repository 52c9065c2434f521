package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/glowbook/salon-booking/internal/api/middleware"
	"github.com/glowbook/salon-booking/internal/core/domain"
)

// ctxActor extracts the auth claims injected by the Auth middleware and
// performs a fast-fail check before any service call:
//   - sub must be non-empty (presence proves the middleware ran).
//   - role must be one of the known roles.
func ctxActor(c echo.Context) (domain.Actor, error) {
	userID, _ := c.Get(middleware.CtxUserID).(string)
	if userID == "" {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}

	raw, _ := c.Get(middleware.CtxRole).(string)
	role, ok := domain.ParseRole(raw)
	if !ok {
		return domain.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "token carries an unknown role")
	}

	businessID, _ := c.Get(middleware.CtxBusinessID).(string)
	return domain.Actor{UserID: userID, Role: role, BusinessID: businessID}, nil
}

// BusinessResolver picks the business a request operates on: the
// businessId query parameter, then the token's business, then the
// configured fallback. A token bound to one business cannot read another.
type BusinessResolver struct {
	Fallback string
}

func (r BusinessResolver) resolve(c echo.Context, actor domain.Actor) (string, error) {
	requested := c.QueryParam("businessId")
	switch {
	case requested == "" && actor.BusinessID != "":
		return actor.BusinessID, nil
	case requested == "":
		return r.Fallback, nil
	case actor.BusinessID != "" && requested != actor.BusinessID:
		return "", domain.ErrForbidden
	default:
		return requested, nil
	}
}

// parseTimeQuery reads an optional RFC 3339 query parameter.
func parseTimeQuery(c echo.Context, name string) (time.Time, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, echo.NewHTTPError(http.StatusBadRequest, name+" must be an RFC 3339 timestamp")
	}
	return t, nil
}
