package restapi

import (
	"errors"
	"net/http"

	"points_checker/internal/app/port"
	"points_checker/internal/app/service"
	"points_checker/internal/domain/entity"
	"points_checker/internal/infrastructure/walletloader"

	"github.com/gin-gonic/gin"
)

const indexTemplate = "index.html"

// PageHandler serves the server-rendered checker page.
type PageHandler struct {
	batches port.BatchService
	logger  port.Logger
}

// NewPageHandler создает новый экземпляр PageHandler.
func NewPageHandler(bs port.BatchService, l port.Logger) *PageHandler {
	return &PageHandler{batches: bs, logger: l}
}

// Index renders the form, the current batch and the modal.
func (h *PageHandler) Index(c *gin.Context) {
	session := sessionFrom(c)

	var snap *entity.BatchSnapshot
	if batch, ok := h.batches.Current(session.ID); ok {
		s := batch.Snapshot()
		snap = &s
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, indexTemplate, NewPageView(session, snap))
}

// Check starts a batch from the submitted form and sends the browser back to the page.
func (h *PageHandler) Check(c *gin.Context) {
	session := sessionFrom(c)
	wallets := walletloader.ParseAddresses(c.PostForm("wallets"))

	if _, err := h.batches.Submit(session.ID, wallets); err != nil {
		h.logger.Error("Failed to start batch", "session_id", session.ID, "error", err)
		c.String(statusFor(err), err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// CloseModal hides the donation modal.
func (h *PageHandler) CloseModal(c *gin.Context) {
	session := sessionFrom(c)
	if err := h.batches.DismissModal(session.ID); err != nil {
		c.String(statusFor(err), err.Error())
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrNoBatch):
		return http.StatusNotFound
	case errors.Is(err, service.ErrShuttingDown):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
