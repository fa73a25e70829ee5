package timesheet

import (
	"net/http"
	"strconv"
	"time"

	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/MhmdALii1/employee-management-system/internal/shared/response"
	timesheeterrors "github.com/MhmdALii1/employee-management-system/internal/timesheet/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	listPath   = "/timesheets"
	exportName = "timesheets.xlsx"
	xlsxType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type RejectionRecorder interface {
	ObserveRejection(entity, field, rule string)
}

// ReportRecorder observes how long a workbook took to render.
type ReportRecorder interface {
	ObserveReport(name string, d time.Duration)
}

type HandlerConfig struct {
	PageSize   int
	Rejections RejectionRecorder
	Reports    ReportRecorder
}

type Handler struct {
	service Service
	cfg     HandlerConfig
	logger  *zap.Logger
}

func NewHandler(service Service, cfg HandlerConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("timesheet.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("timesheet.handler")
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 10
	}
	return &Handler{service: service, cfg: cfg, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if violations, ok := httpErr.Details.([]apperror.Violation); ok && h.cfg.Rejections != nil {
		for _, v := range violations {
			h.cfg.Rejections.ObserveRejection("timesheet", v.Field, v.Rule)
		}
	}
	h.logger.Warn("timesheet request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("timesheet request error", zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindForm(c *gin.Context) (TimesheetForm, bool) {
	var form TimesheetForm
	if err := c.ShouldBind(&form); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return TimesheetForm{}, false
	}
	return form, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// parseFilter reads the optional employeeId query parameter. An empty value
// means no filter.
func parseFilter(c *gin.Context) (Filter, error) {
	raw := c.Query("employeeId")
	if raw == "" {
		return Filter{}, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		return Filter{}, timesheeterrors.ErrInvalidEmployeeFilter
	}
	return Filter{EmployeeID: &id}, nil
}

func (h *Handler) listParams(c *gin.Context) (Filter, listquery.Params, error) {
	filter, err := parseFilter(c)
	if err != nil {
		return Filter{}, listquery.Params{}, err
	}
	params, err := listquery.ParseParams(c.Request.URL.Query(), listquery.Params{
		SortBy:    "start_time",
		SortOrder: listquery.OrderAsc,
		PageSize:  h.cfg.PageSize,
	})
	if err != nil {
		return Filter{}, listquery.Params{}, err
	}
	return filter, params, nil
}

func (h *Handler) GetAll(c *gin.Context) {
	filter, params, err := h.listParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	res, err := h.service.List(c.Request.Context(), filter, params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(res.TotalCount), res.Page, res.PageSize)
	response.Success(c, http.StatusOK, res.Items, &meta)
}

func (h *Handler) Calendar(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	events, err := h.service.Calendar(c.Request.Context(), filter)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, events, nil)
}

// Export streams the filtered, sorted set as an xlsx attachment.
func (h *Handler) Export(c *gin.Context) {
	filter, params, err := h.listParams(c)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if err := listquery.Validate(params, Schema); err != nil {
		h.writeServiceError(c, err)
		return
	}

	started := time.Now()
	buffer, err := h.service.Export(c.Request.Context(), filter, params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	if h.cfg.Reports != nil {
		h.cfg.Reports.ObserveReport("timesheets", time.Since(started))
	}

	c.Header("Content-Disposition", `attachment; filename="`+exportName+`"`)
	c.Data(http.StatusOK, xlsxType, buffer.Bytes())
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, timesheeterrors.ErrInvalidTimesheetID)
		return
	}

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Create(c *gin.Context) {
	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	id, err := h.service.Create(c.Request.Context(), form)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.logger.Debug("http create timesheet", zap.Int64("timesheet_id", id))
	c.Redirect(http.StatusSeeOther, listPath)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, timesheeterrors.ErrInvalidTimesheetID)
		return
	}

	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	if _, err := h.service.Update(c.Request.Context(), id, form); err != nil {
		h.writeServiceError(c, err)
		return
	}

	h.logger.Debug("http update timesheet", zap.Int64("timesheet_id", id))
	c.Redirect(http.StatusSeeOther, listPath)
}

func (h *Handler) Validate(c *gin.Context) {
	mode := Mode(c.DefaultQuery("mode", string(ModeCreate)))
	if mode != ModeCreate && mode != ModeUpdate {
		h.writeServiceError(c, timesheeterrors.ErrInvalidMode)
		return
	}

	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, h.service.Validate(form, mode), nil)
}
