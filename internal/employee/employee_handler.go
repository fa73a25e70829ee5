package employee

import (
	"net/http"
	"strconv"

	employeeerrors "github.com/MhmdALii1/employee-management-system/internal/employee/errors"
	"github.com/MhmdALii1/employee-management-system/internal/listquery"
	"github.com/MhmdALii1/employee-management-system/internal/shared/apperror"
	"github.com/MhmdALii1/employee-management-system/internal/shared/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const listPath = "/employees"

// RejectionRecorder counts rejected submissions per broken rule.
type RejectionRecorder interface {
	ObserveRejection(entity, field, rule string)
}

type HandlerConfig struct {
	PageSize   int
	Rejections RejectionRecorder
}

type Handler struct {
	service Service
	cfg     HandlerConfig
	logger  *zap.Logger
}

func NewHandler(service Service, cfg HandlerConfig, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("employee.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.handler")
	}
	if cfg.PageSize < 1 {
		cfg.PageSize = 4
	}
	return &Handler{service: service, cfg: cfg, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	if violations, ok := httpErr.Details.([]apperror.Violation); ok && h.cfg.Rejections != nil {
		for _, v := range violations {
			h.cfg.Rejections.ObserveRejection("employee", v.Field, v.Rule)
		}
	}
	h.logger.Warn("employee request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	if httpErr.Status >= http.StatusInternalServerError {
		h.logger.Error("employee request error", zap.Error(err))
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) bindForm(c *gin.Context) (EmployeeForm, bool) {
	var form EmployeeForm
	if err := c.ShouldBind(&form); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return EmployeeForm{}, false
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

func (h *Handler) GetAll(c *gin.Context) {
	params, err := listquery.ParseParams(c.Request.URL.Query(), listquery.Params{
		SortBy:    "full_name",
		SortOrder: listquery.OrderAsc,
		PageSize:  h.cfg.PageSize,
	})
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	res, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	meta := response.NewPaginationMeta(int64(res.TotalCount), res.Page, res.PageSize)
	response.Success(c, http.StatusOK, res.Items, &meta)
}

func (h *Handler) GetOptions(c *gin.Context) {
	options, err := h.service.GetOptions(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, options, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
		return
	}
	h.logger.Debug("http get employee by id", zap.Int64("employee_id", id))

	resp, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

// Create accepts a form post and redirects back to the list on success.
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

	h.logger.Debug("http create employee", zap.Int64("employee_id", id))
	c.Redirect(http.StatusSeeOther, listPath)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		h.writeServiceError(c, employeeerrors.ErrInvalidEmployeeID)
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

	h.logger.Debug("http update employee", zap.Int64("employee_id", id))
	c.Redirect(http.StatusSeeOther, listPath)
}

// Validate runs the rule set against a draft without saving it.
func (h *Handler) Validate(c *gin.Context) {
	mode := Mode(c.DefaultQuery("mode", string(ModeCreate)))
	if mode != ModeCreate && mode != ModeUpdate {
		h.writeServiceError(c, employeeerrors.ErrInvalidMode)
		return
	}

	form, ok := h.bindForm(c)
	if !ok {
		return
	}

	response.Success(c, http.StatusOK, h.service.Validate(form, mode), nil)
}
