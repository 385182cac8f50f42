package handlers

import (
	"bytes"
	"net/http"

	portssvc "github.com/SscSPs/bank_ledger/internal/core/ports/services"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/SscSPs/bank_ledger/internal/reporting"
	"github.com/gin-gonic/gin"
)

type periodHandler struct {
	periodService portssvc.PeriodSvc
}

func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvc) {
	h := &periodHandler{periodService: periodService}
	rg.POST("/periods/rollover", h.rollover)
}

// rollover godoc
// @Summary Close an accounting period
// @Description Applies interest to every account, then resets every withdrawal quota, in account ID order
// @Tags periods
// @Accept  json
// @Produce  json
// @Produce  plain
// @Param   rollover body dto.RolloverRequest true "Period end date"
// @Param   format query string false "json or text" default(json)
// @Success 200 {object} dto.RolloverResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Router /periods/rollover [post]
func (h *periodHandler) rollover(c *gin.Context) {
	logger := middleware.GetLoggerFromContext(c)

	var req dto.RolloverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err, "request format")
		return
	}

	result, err := h.periodService.RolloverPeriod(c.Request.Context(), req.Date)
	if err != nil {
		respondError(c, logger, err, "Failed to roll over period")
		return
	}

	if wantsText(c) {
		var buf bytes.Buffer
		if err := reporting.WriteRollover(&buf, *result); err != nil {
			respondError(c, logger, err, "Failed to render rollover")
			return
		}
		c.Data(http.StatusOK, textContentType, buf.Bytes())
		return
	}

	resp := dto.RolloverResponse{
		Date:          result.Date,
		Interest:      make([]dto.InterestEntry, 0, len(result.AccountIDs)),
		QuotasReset:   result.QuotasReset,
		TotalInterest: result.TotalInterest(),
	}
	for _, id := range result.AccountIDs {
		resp.Interest = append(resp.Interest, dto.InterestEntry{AccountID: id, Amount: result.Interest[id]})
	}
	c.JSON(http.StatusOK, resp)
}
