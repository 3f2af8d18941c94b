package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/itzayush21/travy/server/auth"
	"github.com/itzayush21/travy/store"
)

// userContextKey is the echo context key holding the authenticated user.
const userContextKey = "user"

// AuthMiddleware authenticates the request from the Authorization header
// or the access token cookie and loads the user into the context.
func (s *APIV1Service) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := accessTokenFromRequest(c)
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing access token")
		}

		userUID, err := auth.VerifyAccessToken(token, s.Secret)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "invalid access token")
		}

		user, err := s.Store.GetUser(c.Request().Context(), &store.FindUser{UID: &userUID})
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to load user")
		}
		if user == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "user not found")
		}

		c.Set(userContextKey, user)
		return next(c)
	}
}

func accessTokenFromRequest(c echo.Context) string {
	if header := c.Request().Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	if cookie, err := c.Cookie(auth.AccessTokenCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

func userFromContext(c echo.Context) *store.User {
	user, _ := c.Get(userContextKey).(*store.User)
	return user
}

// podIDParam parses the :id path parameter.
func podIDParam(c echo.Context) (int32, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid pod id")
	}
	return int32(id), nil
}

// requirePodMember loads the pod and verifies the user belongs to it.
func (s *APIV1Service) requirePodMember(c echo.Context, podID int32, userID int32) (*store.Pod, error) {
	ctx := c.Request().Context()
	pod, err := s.Store.GetPod(ctx, &store.FindPod{ID: &podID})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load pod")
	}
	if pod == nil {
		return nil, echo.NewHTTPError(http.StatusNotFound, "pod not found")
	}

	members, err := s.Store.ListPodMembers(ctx, &store.FindPodMember{PodID: &podID, UserID: &userID})
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "failed to load membership")
	}
	if len(members) == 0 {
		return nil, echo.NewHTTPError(http.StatusForbidden, "not a member of this pod")
	}
	return pod, nil
}
