package restapi

import (
	"io"
	"net/http"

	"points_checker/internal/app/port"
	"points_checker/internal/domain/entity"
	"points_checker/internal/infrastructure/walletloader"

	"github.com/gin-gonic/gin"
)

// SubmitBatchRequest is the body of POST /api/v1/batches.
// Wallets is free-form text, split the same way as the page form.
type SubmitBatchRequest struct {
	Wallets string `json:"wallets"`
}

// APIBatchResponse wraps a batch snapshot together with the modal state.
type APIBatchResponse struct {
	Batch     entity.BatchSnapshot `json:"batch"`
	ShowModal bool                 `json:"show_modal"`
}

// APIErrorResponse is returned with every 4xx/5xx.
type APIErrorResponse struct {
	Error string `json:"error"`
}

// PointsHandler обрабатывает JSON запросы к API проверки поинтов.
type PointsHandler struct {
	batches port.BatchService
	logger  port.Logger
}

// NewPointsHandler создает новый экземпляр PointsHandler.
func NewPointsHandler(bs port.BatchService, l port.Logger) *PointsHandler {
	return &PointsHandler{batches: bs, logger: l}
}

// SubmitBatchHandler starts a batch, replacing the session's current one.
func (h *PointsHandler) SubmitBatchHandler(c *gin.Context) {
	session := sessionFrom(c)

	var req SubmitBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, APIErrorResponse{Error: "invalid request body: " + err.Error()})
		return
	}

	batch, err := h.batches.Submit(session.ID, walletloader.ParseAddresses(req.Wallets))
	if err != nil {
		h.logger.Error("Failed to start batch", "session_id", session.ID, "error", err)
		c.JSON(statusFor(err), APIErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusAccepted, APIBatchResponse{
		Batch:     batch.Snapshot(),
		ShowModal: session.ModalVisible(),
	})
}

// GetCurrentBatchHandler returns the latest batch of the session.
func (h *PointsHandler) GetCurrentBatchHandler(c *gin.Context) {
	session := sessionFrom(c)

	batch, ok := h.batches.Current(session.ID)
	if !ok {
		c.JSON(http.StatusNotFound, APIErrorResponse{Error: "no batch submitted in this session"})
		return
	}
	c.JSON(http.StatusOK, APIBatchResponse{
		Batch:     batch.Snapshot(),
		ShowModal: session.ModalVisible(),
	})
}

// StreamBatchHandler streams snapshots of the current batch as server-sent
// events: "snapshot" while it runs, then a single "done" event.
func (h *PointsHandler) StreamBatchHandler(c *gin.Context) {
	session := sessionFrom(c)

	updates, unsubscribe, err := h.batches.Subscribe(session.ID)
	if err != nil {
		c.JSON(statusFor(err), APIErrorResponse{Error: err.Error()})
		return
	}
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")

	ctx := c.Request.Context()
	c.Stream(func(_ io.Writer) bool {
		select {
		case snap, ok := <-updates:
			if !ok {
				return false
			}
			if snap.Running() {
				c.SSEvent("snapshot", snap)
				return true
			}
			c.SSEvent("done", APIBatchResponse{Batch: snap, ShowModal: session.ModalVisible()})
			return false
		case <-ctx.Done():
			return false
		}
	})
}

// CloseModalHandler hides the donation modal.
func (h *PointsHandler) CloseModalHandler(c *gin.Context) {
	session := sessionFrom(c)
	if err := h.batches.DismissModal(session.ID); err != nil {
		c.JSON(statusFor(err), APIErrorResponse{Error: err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}
