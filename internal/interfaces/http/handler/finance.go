package handler

import (
	"net/http"

	appreport "github.com/bizops/reporting/internal/application/report"
	"github.com/bizops/reporting/internal/interfaces/http/dto"
	"github.com/bizops/reporting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FinanceHandler serves the derived financial summaries.
type FinanceHandler struct {
	BaseHandler
	service *appreport.Service
}

// NewFinanceHandler creates a FinanceHandler.
func NewFinanceHandler(service *appreport.Service, logger *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// statementQuery binds the statement window parameters.
type statementQuery struct {
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	Branch    string `form:"branch"`
	CreatedBy string `form:"created_by"`
}

func (q statementQuery) toRequest() (appreport.StatementRequest, error) {
	start, err := parseDate(q.StartDate, "start_date")
	if err != nil {
		return appreport.StatementRequest{}, err
	}
	end, err := parseDate(q.EndDate, "end_date")
	if err != nil {
		return appreport.StatementRequest{}, err
	}
	return appreport.StatementRequest{
		StartDate: start,
		EndDate:   end,
		Branch:    q.Branch,
		CreatedBy: q.CreatedBy,
	}, nil
}

func (h *FinanceHandler) bindStatement(c *gin.Context) (appreport.StatementRequest, bool) {
	var q statementQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "Invalid query parameters", nil)
		return appreport.StatementRequest{}, false
	}
	req, err := q.toRequest()
	if err != nil {
		h.HandleError(c, err)
		return appreport.StatementRequest{}, false
	}
	return req, true
}

// IncomeStatement handles GET /finance/income-statement. Discount figures
// stay zero unless the caller holds the view_discounts permission.
func (h *FinanceHandler) IncomeStatement(c *gin.Context) {
	req, ok := h.bindStatement(c)
	if !ok {
		return
	}
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required", nil)
		return
	}

	statement, err := h.service.IncomeStatement(c.Request.Context(), req, claims)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusOK, statement)
}

// Dashboard handles GET /finance/dashboard.
func (h *FinanceHandler) Dashboard(c *gin.Context) {
	req, ok := h.bindStatement(c)
	if !ok {
		return
	}

	summary, err := h.service.Dashboard(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusOK, summary)
}
