// internal/infra/httpapi/handlers.go
package httpapi

import (
	"errors"
	"net/http"

	"guardian_notifier/internal/app"
	"guardian_notifier/internal/domain/notification"
	"guardian_notifier/internal/domain/student"
	"guardian_notifier/internal/domain/system"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// TokenVerifier checks a public progress link token.
type TokenVerifier interface {
	Verify(token string) (string, error)
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type NotifyResponse struct {
	InvocationID string `json:"invocation_id"`
	StudentID    string `json:"student_id"`
	Lesson       string `json:"lesson"`
	Status       string `json:"status"`
	Delivered    bool   `json:"delivered"`
	Phone        string `json:"phone,omitempty"`
	URL          string `json:"url,omitempty"`
	Error        string `json:"error,omitempty"`
}

type OutcomeResponse struct {
	Lesson    string `json:"lesson"`
	Delivered bool   `json:"message_state"`
	UpdatedAt string `json:"updated_at"`
}

// Handler serves the guardian notification API.
type Handler struct {
	service  app.NotificationService
	configs  system.ConfigProvider
	board    *app.StatusBoard
	outcomes notification.Repository
	verifier TokenVerifier
	logger   *logrus.Entry
}

func NewHandler(
	service app.NotificationService,
	configs system.ConfigProvider,
	board *app.StatusBoard,
	outcomes notification.Repository,
	verifier TokenVerifier,
	logger *logrus.Entry,
) *Handler {
	return &Handler{
		service:  service,
		configs:  configs,
		board:    board,
		outcomes: outcomes,
		verifier: verifier,
		logger:   logger,
	}
}

// Notify sends one guardian notification for the posted student snapshot.
func (h *Handler) Notify(c *gin.Context) {
	var snapshot student.Student
	if err := c.ShouldBindJSON(&snapshot); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid student snapshot", Message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	cfg, err := h.configs.GetSystemConfig(ctx)
	if err != nil {
		h.logger.WithError(err).Warn("System config unavailable, using defaults")
		cfg = system.Config{}.WithDefaults()
	}

	res, err := h.service.SendNotification(ctx, &snapshot, cfg)
	resp := NotifyResponse{
		InvocationID: res.InvocationID,
		StudentID:    res.StudentID,
		Lesson:       res.Lesson,
		Status:       res.Status,
		Delivered:    res.Delivered,
		Phone:        res.Phone,
		URL:          res.URL,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	c.JSON(statusCode(err), resp)
}

// NotificationStatus returns the visible status string; it clears after a short interval.
func (h *Handler) NotificationStatus(c *gin.Context) {
	id := c.Param("id")
	status, ok := h.board.Current(id)
	c.JSON(http.StatusOK, gin.H{
		"student_id": id,
		"status":     status,
		"visible":    ok,
	})
}

func (h *Handler) DispatchOutcomes(c *gin.Context) {
	id := c.Param("id")
	list, err := h.outcomes.ListDispatchOutcomes(c.Request.Context(), id, c.QueryArray("lesson"))
	if err != nil {
		h.logger.WithError(err).WithField("student_id", id).Error("Failed to list dispatch outcomes")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "failed to list dispatch outcomes"})
		return
	}
	out := make([]OutcomeResponse, 0, len(list))
	for _, o := range list {
		out = append(out, OutcomeResponse{
			Lesson:    o.Lesson,
			Delivered: o.Delivered,
			UpdatedAt: o.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	c.JSON(http.StatusOK, gin.H{"student_id": id, "data": out})
}

func (h *Handler) VerifyPublicLink(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "token is required"})
		return
	}
	studentID, err := h.verifier.Verify(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"student_id": studentID})
}

func statusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, notification.ErrInvalidPhone),
		errors.Is(err, notification.ErrMissingCountryCode),
		errors.Is(err, notification.ErrIncompleteStudent):
		return http.StatusUnprocessableEntity
	case errors.Is(err, notification.ErrDispatchBlocked):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
