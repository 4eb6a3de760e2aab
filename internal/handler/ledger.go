// internal/handler/ledger.go
package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"credit-ledger/internal/service"
	"credit-ledger/internal/upload"
	val "credit-ledger/internal/validator"

	"github.com/gin-gonic/gin"
)

type LedgerHandler struct {
	svc *service.Service
}

func NewLedgerHandler(svc *service.Service) *LedgerHandler {
	return &LedgerHandler{svc: svc}
}

// UserCredits returns the per-credit summaries for one user, or 404 when
// the user has none (unknown users look the same).
func (h *LedgerHandler) UserCredits(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Param("user_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id must be an integer"})
		return
	}

	reports, err := h.svc.CreditReports(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User or credits not found"})
			return
		}
		slog.Error("UserCredits failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load credits"})
		return
	}

	c.JSON(http.StatusOK, reports)
}

// PlansInsert accepts a multipart plans file (xlsx/xls or tab-separated
// text), validates it row by row and inserts the whole batch atomically.
func (h *LedgerHandler) PlansInsert(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": upload.ErrBadFormat.Error()})
		return
	}
	defer file.Close()

	rows, err := upload.Parse(fileHeader.Filename, file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	planRows := make([]service.PlanRow, len(rows))
	for i, row := range rows {
		planRows[i] = service.PlanRow{
			Period:     row["period"],
			Sum:        row["sum"],
			CategoryID: row["category_id"],
		}
	}

	if err := h.svc.InsertPlans(c.Request.Context(), planRows); err != nil {
		var vErr *service.ValidationError
		if errors.As(err, &vErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
			return
		}
		slog.Error("PlansInsert failed", "error", err, "rows", len(planRows))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to insert plans"})
		return
	}

	slog.Info("Plans inserted", "rows", len(planRows))
	c.JSON(http.StatusOK, gin.H{"message": "Plans were successfully inserted into the database."})
}

type yearQuery struct {
	Year int `form:"year" validate:"required,reportyear"`
}

// YearPerformance returns 12 monthly records plus one totals record for
// the requested year.
func (h *LedgerHandler) YearPerformance(c *gin.Context) {
	var req yearQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year query param must be an integer"})
		return
	}
	if err := val.Validate.Struct(req); err != nil {
		rangeErr := service.YearRangeError{Year: req.Year, Max: h.svc.MaxReportYear()}
		c.JSON(http.StatusBadRequest, gin.H{"error": rangeErr.Error()})
		return
	}

	result, err := h.svc.YearPerformance(c.Request.Context(), req.Year)
	if err != nil {
		var rangeErr *service.YearRangeError
		if errors.As(err, &rangeErr) {
			c.JSON(http.StatusBadRequest, gin.H{"error": rangeErr.Error()})
			return
		}
		slog.Error("YearPerformance failed", "error", err, "year", req.Year)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build year performance"})
		return
	}

	c.JSON(http.StatusOK, result)
}
