package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/itzayush21/travy/store"
)

type UserProfileResponse struct {
	BloodGroup        string `json:"bloodGroup"`
	HealthConditions  string `json:"healthConditions"`
	Allergies         string `json:"allergies"`
	FoodPreferences   string `json:"foodPreferences"`
	TravelPreferences string `json:"travelPreferences"`
	PreferredLanguage string `json:"preferredLanguage"`
	EmergencyName     string `json:"emergencyName"`
	EmergencyPhone    string `json:"emergencyPhone"`
}

type UpdateUserProfileRequest struct {
	BloodGroup        *string `json:"bloodGroup"`
	HealthConditions  *string `json:"healthConditions"`
	Allergies         *string `json:"allergies"`
	FoodPreferences   *string `json:"foodPreferences"`
	TravelPreferences *string `json:"travelPreferences"`
	PreferredLanguage *string `json:"preferredLanguage"`
	EmergencyName     *string `json:"emergencyName"`
	EmergencyPhone    *string `json:"emergencyPhone"`
}

func toUserProfileResponse(p *store.UserProfile) *UserProfileResponse {
	return &UserProfileResponse{
		BloodGroup:        p.BloodGroup,
		HealthConditions:  p.HealthConditions,
		Allergies:         p.Allergies,
		FoodPreferences:   p.FoodPreferences,
		TravelPreferences: p.TravelPreferences,
		PreferredLanguage: p.PreferredLanguage,
		EmergencyName:     p.EmergencyName,
		EmergencyPhone:    p.EmergencyPhone,
	}
}

// GetCurrentUser returns the authenticated user.
func (s *APIV1Service) GetCurrentUser(c echo.Context) error {
	return c.JSON(http.StatusOK, toUserResponse(userFromContext(c)))
}

// GetUserProfile returns the traveler profile of the authenticated user.
// A user without a saved profile gets an empty one.
func (s *APIV1Service) GetUserProfile(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)

	p, err := s.Store.GetUserProfile(ctx, &store.FindUserProfile{UserID: user.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	if p == nil {
		p = &store.UserProfile{UserID: user.ID}
	}
	return c.JSON(http.StatusOK, toUserProfileResponse(p))
}

// UpdateUserProfile upserts the traveler profile, keeping any field the
// request leaves unset.
func (s *APIV1Service) UpdateUserProfile(c echo.Context) error {
	ctx := c.Request().Context()
	user := userFromContext(c)

	var req UpdateUserProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request body")
	}

	p, err := s.Store.GetUserProfile(ctx, &store.FindUserProfile{UserID: user.ID})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to load profile")
	}
	if p == nil {
		p = &store.UserProfile{UserID: user.ID}
	}

	apply := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&p.BloodGroup, req.BloodGroup)
	apply(&p.HealthConditions, req.HealthConditions)
	apply(&p.Allergies, req.Allergies)
	apply(&p.FoodPreferences, req.FoodPreferences)
	apply(&p.TravelPreferences, req.TravelPreferences)
	apply(&p.PreferredLanguage, req.PreferredLanguage)
	apply(&p.EmergencyName, req.EmergencyName)
	apply(&p.EmergencyPhone, req.EmergencyPhone)

	saved, err := s.Store.UpsertUserProfile(ctx, p)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save profile")
	}
	return c.JSON(http.StatusOK, toUserProfileResponse(saved))
}
