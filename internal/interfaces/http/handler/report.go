package handler

import (
	"net/http"
	"time"

	appreport "github.com/bizops/reporting/internal/application/report"
	"github.com/bizops/reporting/internal/domain/report"
	"github.com/bizops/reporting/internal/interfaces/http/dto"
	"github.com/bizops/reporting/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReportHandler serves report generation and the report type registry.
type ReportHandler struct {
	BaseHandler
	service *appreport.Service
}

// NewReportHandler creates a ReportHandler.
func NewReportHandler(service *appreport.Service, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// reportQuery binds the report selection parameters.
type reportQuery struct {
	Type      string `form:"report_type"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`

	Branch    string `form:"branch"`
	CreatedBy string `form:"created_by"`
	Customer  string `form:"customer"`
	Product   string `form:"product"`
	Supplier  string `form:"supplier"`
	Truck     string `form:"truck"`
	Device    string `form:"device"`
	Category  string `form:"category"`

	Status         string `form:"status"`
	ExpenseType    string `form:"expense_type"`
	PaymentType    string `form:"payment_type"`
	AdjustmentType string `form:"adjustment_type"`

	Store         *bool `form:"store"`
	IncludeHidden bool  `form:"include_hidden"`
}

func (q reportQuery) toRequest() (appreport.ReportRequest, error) {
	start, err := parseDate(q.StartDate, "start_date")
	if err != nil {
		return appreport.ReportRequest{}, err
	}
	end, err := parseDate(q.EndDate, "end_date")
	if err != nil {
		return appreport.ReportRequest{}, err
	}
	return appreport.ReportRequest{
		Type:           q.Type,
		StartDate:      start,
		EndDate:        end,
		Branch:         q.Branch,
		CreatedBy:      q.CreatedBy,
		Customer:       q.Customer,
		Product:        q.Product,
		Supplier:       q.Supplier,
		Truck:          q.Truck,
		Device:         q.Device,
		Category:       q.Category,
		Status:         q.Status,
		ExpenseType:    q.ExpenseType,
		PaymentType:    q.PaymentType,
		AdjustmentType: q.AdjustmentType,
		Store:          q.Store,
		IncludeHidden:  q.IncludeHidden,
	}, nil
}

// parseDate accepts RFC3339 or a plain calendar date.
func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, &appreport.ValidationError{Fields: []appreport.FieldError{
		{Field: field, Message: "must be an RFC3339 timestamp or a YYYY-MM-DD date"},
	}}
}

// Generate handles GET /reports.
func (h *ReportHandler) Generate(c *gin.Context) {
	var q reportQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.Error(c, dto.ErrCodeInvalidInput, "Invalid query parameters", nil)
		return
	}
	req, err := q.toRequest()
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if req.Type != "" {
		entity, err := report.ParseReportType(req.Type)
		if err != nil {
			h.HandleError(c, err)
			return
		}
		claims, ok := middleware.GetClaims(c)
		if !ok || !claims.Can(entity.Permission()) {
			h.Error(c, dto.ErrCodeForbidden, "Insufficient permissions", nil)
			return
		}
	}

	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, http.StatusOK, result)
}

// Types handles GET /reports/types. Only report types the caller may list
// are marked visible.
func (h *ReportHandler) Types(c *gin.Context) {
	claims, ok := middleware.GetClaims(c)
	if !ok {
		h.Error(c, dto.ErrCodeUnauthorized, "Authentication required", nil)
		return
	}
	h.Success(c, http.StatusOK, gin.H{
		"report_types": report.AvailableReportTypes(claims),
	})
}
