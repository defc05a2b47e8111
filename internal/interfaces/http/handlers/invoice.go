// internal/interfaces/http/handlers/invoice.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/client"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

// ReceiptHandler renders order receipts
type ReceiptHandler struct {
	backend    *client.Client
	pdfService *pdf.Service
	logger     logrus.FieldLogger
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(backend *client.Client, pdfService *pdf.Service, logger logrus.FieldLogger) *ReceiptHandler {
	return &ReceiptHandler{
		backend:    backend,
		pdfService: pdfService,
		logger:     logger,
	}
}

// GetReceipt handles GET /orders/:id/receipt. With ?format=html the markup
// is returned instead of the PDF, for in-browser preview.
func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	// The order list only holds the caller's orders, so ownership is implied.
	order, err := h.backend.FindMyOrder(c.Request.Context(), token(c), c.Param("id"))
	if err != nil {
		respondBackendError(c, err)
		return
	}

	if c.Query("format") == "html" {
		html, err := h.pdfService.ReceiptHTML(order)
		if err != nil {
			h.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to render receipt")
			respondError(c, http.StatusInternalServerError, "Failed to generate receipt")
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	pdfBuffer, err := h.pdfService.GenerateReceipt(order)
	if err != nil {
		h.logger.WithError(err).WithField("order_id", order.ID).Error("Failed to generate receipt")
		respondError(c, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	name := order.OrderNumber
	if name == "" {
		name = order.ID
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", name))
	c.Header("Content-Length", strconv.Itoa(pdfBuffer.Len()))
	c.Data(http.StatusOK, "application/pdf", pdfBuffer.Bytes())
}
