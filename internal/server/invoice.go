package server

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/smallbiznis/invoicefill/internal/invoice/domain"
)

const invoiceFilename = "completed-invoice.pdf"

// CreatePDF fills the invoice template for the listing named by the form's
// url and streams it back as an attachment.
func (s *Server) CreatePDF(c *gin.Context) {
	var form invoicedomain.FormData
	if err := c.ShouldBindJSON(&form); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if form == nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	if id, err := invoicedomain.ListingIDFromURL(form.URL()); err == nil {
		c.Set("listing_id", id)
	}

	out, err := s.invoiceSvc.Generate(c.Request.Context(), form)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	s.httpMetrics.ObservePDF(len(out))
	c.Header("Content-Disposition", `attachment; filename="`+invoiceFilename+`"`)
	c.Data(http.StatusOK, "application/pdf", out)
}
