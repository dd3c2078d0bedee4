package summary

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/kab1012/budget-tracker/internal/auth"
	"github.com/kab1012/budget-tracker/internal/transport"
	"github.com/kab1012/budget-tracker/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
	now     func() time.Time
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
		now:         time.Now,
	}
}

// GetSummary reports the current calendar month.
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.UserFromContext(r.Context())
	if !ok || user == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	result, err := h.Service.Summarize(user.ID, h.now())
	if err != nil {
		h.Logger.Error("GetSummary: service error", "error", err, "user_id", user.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result.ToResponse())
}
