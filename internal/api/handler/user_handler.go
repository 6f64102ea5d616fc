package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/peopledesk/identity-api/internal/api/metrics"
	"github.com/peopledesk/identity-api/internal/core/domain"
	"github.com/peopledesk/identity-api/internal/core/ports"
)

// UserHandler handles HTTP requests for user generation, import, and lookup.
type UserHandler struct {
	users ports.UserService
}

func NewUserHandler(users ports.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// Generate handles GET /api/users/generate?count=N.
//
// @Summary      Generate random users
// @Description  Generates the requested number of random identities and returns them as a downloadable JSON document.
// @Tags         users
// @Produce      json
// @Param        count  query     int  true  "Number of users to generate (min 1)"
// @Success      200    {array}   userDraftPayload
// @Failure      400    {object}  map[string]string
// @Router       /api/users/generate [get]
func (h *UserHandler) Generate(c echo.Context) error {
	count, err := strconv.Atoi(c.QueryParam("count"))
	if err != nil || count < 1 {
		return echo.NewHTTPError(http.StatusBadRequest, "count must be a positive integer")
	}

	drafts := h.users.Generate(count)
	payload := make([]userDraftPayload, 0, len(drafts))
	for _, d := range drafts {
		payload = append(payload, toDraftPayload(d))
	}

	metrics.GeneratedUsersTotal.Add(float64(len(drafts)))
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename=users.json`)
	return c.JSON(http.StatusOK, payload)
}

// BatchImport handles POST /api/users/batch.
//
// @Summary      Import users in batch
// @Description  Validates each record in order and commits the surviving subset atomically. Per-record failures are reported in the summary, not as request errors.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      []userDraftPayload  true  "Candidate identities"
// @Success      200   {object}  batchImportResponse
// @Failure      400   {object}  map[string]string
// @Failure      502   {object}  map[string]string
// @Router       /api/users/batch [post]
func (h *UserHandler) BatchImport(c echo.Context) error {
	var payload []userDraftPayload
	if err := c.Bind(&payload); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload: expected a JSON array of users")
	}

	drafts := make([]domain.UserDraft, 0, len(payload))
	for _, p := range payload {
		drafts = append(drafts, toDraft(p))
	}

	result, err := h.users.ImportUsers(c.Request().Context(), drafts)
	if err != nil {
		metrics.ImportBatchesTotal.WithLabelValues("failed").Inc()
		return err
	}

	metrics.ImportBatchesTotal.WithLabelValues("committed").Inc()
	metrics.ImportRecordsTotal.WithLabelValues("imported").Add(float64(result.Success))
	metrics.ImportRecordsTotal.WithLabelValues("rejected").Add(float64(result.Failure))

	return c.JSON(http.StatusOK, batchImportResponse{
		TotalRecords: result.Total,
		SuccessCount: result.Success,
		FailureCount: result.Failure,
	})
}

// Me handles GET /api/users/me.
//
// @Summary      Get current user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /api/users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	principal, err := currentPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.users.GetByUsername(c.Request().Context(), principal.Username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// GetByUsername handles GET /api/users/:username (admin only).
//
// @Summary      Get user profile by username
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  userResponse
// @Failure      401       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /api/users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	username := c.Param("username")
	if username == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "username is required")
	}

	user, err := h.users.GetByUsername(c.Request().Context(), username)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}
