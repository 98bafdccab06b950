package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/garagemlabs/garagem-api/internal/application"
	"github.com/garagemlabs/garagem-api/pkg/response"
	"github.com/garagemlabs/garagem-api/pkg/validation"
)

type AppointmentHandler struct {
	Svc    *application.AppointmentService
	Logger *logrus.Logger
}

func NewAppointmentHandler(svc *application.AppointmentService, logger *logrus.Logger) *AppointmentHandler {
	return &AppointmentHandler{Svc: svc, Logger: logger}
}

type createAppointmentRequest struct {
	Data      string `json:"data" binding:"required,datetime=2006-01-02"`
	Hora      string `json:"hora" binding:"required,hhmm"`
	Descricao string `json:"descricao" binding:"required"`
}

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req createAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	data, err := time.Parse("2006-01-02", req.Data)
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", gin.H{"data": "must be a valid date in YYYY-MM-DD format"})
		return
	}
	a, err := h.Svc.Create(c.Request.Context(), c.GetString("userID"), application.CreateAppointmentInput{
		Data:      data,
		Hora:      req.Hora,
		Descricao: req.Descricao,
	})
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusCreated, toAppointmentView(a), "agendamento criado", nil)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	list, err := h.Svc.ListMine(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	views := make([]appointmentView, 0, len(list))
	for i := range list {
		views = append(views, toAppointmentView(&list[i]))
	}
	response.Success(c, http.StatusOK, views, "agendamentos", gin.H{"count": len(views)})
}

func (h *AppointmentHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.GetString("userID"), c.Param("id")); err != nil {
		respondDomainError(c, h.Logger, err)
		return
	}
	response.Success[any](c, http.StatusOK, gin.H{"deleted": true}, "agendamento removido", nil)
}
