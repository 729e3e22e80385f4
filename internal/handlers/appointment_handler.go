package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	domain "github.com/lavarapido/wash-scheduler/internal/domain/appointment"
	"github.com/lavarapido/wash-scheduler/internal/httperr"
	"github.com/lavarapido/wash-scheduler/internal/httpresp"
	"github.com/lavarapido/wash-scheduler/internal/middleware"
	ucAppointment "github.com/lavarapido/wash-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	createUC     *ucAppointment.CreateAppointment
	updateUC     *ucAppointment.UpdateAppointment
	rescheduleUC *ucAppointment.RescheduleAppointment
	statusUC     *ucAppointment.UpdateStatus
	deleteUC     *ucAppointment.DeleteAppointment
	getUC        *ucAppointment.GetAppointment
	slotsUC      *ucAppointment.GetDailySlots
	listUC       *ucAppointment.ListAppointments
}

func NewAppointmentHandler(
	createUC *ucAppointment.CreateAppointment,
	updateUC *ucAppointment.UpdateAppointment,
	rescheduleUC *ucAppointment.RescheduleAppointment,
	statusUC *ucAppointment.UpdateStatus,
	deleteUC *ucAppointment.DeleteAppointment,
	getUC *ucAppointment.GetAppointment,
	slotsUC *ucAppointment.GetDailySlots,
	listUC *ucAppointment.ListAppointments,
) *AppointmentHandler {
	return &AppointmentHandler{
		createUC:     createUC,
		updateUC:     updateUC,
		rescheduleUC: rescheduleUC,
		statusUC:     statusUC,
		deleteUC:     deleteUC,
		getUC:        getUC,
		slotsUC:      slotsUC,
		listUC:       listUC,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	VehicleModel string `json:"vehicle_model" binding:"required"`
	VehicleColor string `json:"vehicle_color"`
	Plate        string `json:"plate" binding:"required"`
	ServiceID    string `json:"service_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes"`
}

type UpdateAppointmentRequest struct {
	VehicleModel string `json:"vehicle_model" binding:"required"`
	VehicleColor string `json:"vehicle_color"`
	Plate        string `json:"plate" binding:"required"`
	ServiceID    string `json:"service_id" binding:"required,uuid"`
	Date         string `json:"date" binding:"required"`
	Time         string `json:"time" binding:"required"`
	Notes        string `json:"notes"`
}

type RescheduleRequest struct {
	Date string `json:"date" binding:"required"`
	Time string `json:"time" binding:"required"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ======================================================
// HELPERS
// ======================================================

func appointmentID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return uuid.Nil, false
	}
	return id, true
}

// ======================================================
// SLOTS (público)
// ======================================================

func (h *AppointmentHandler) Slots(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		httperr.BadRequest(c, "missing_date", "date (YYYY-MM-DD) é obrigatória.")
		return
	}

	daily, err := h.slotsUC.Execute(c.Request.Context(), date)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, daily)
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	serviceID, _ := uuid.Parse(req.ServiceID)

	ap, err := h.createUC.Execute(c.Request.Context(), caller, ucAppointment.CreateInput{
		VehicleModel: req.VehicleModel,
		VehicleColor: req.VehicleColor,
		Plate:        req.Plate,
		ServiceID:    serviceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Created(c, ap)
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	var status []string
	if raw := c.Query("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				status = append(status, s)
			}
		}
	}

	in := ucAppointment.ListInput{
		Status:   status,
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		Page:     page,
		PageSize: pageSize,
	}

	if raw := c.Query("user_id"); raw != "" {
		if userID, err := uuid.Parse(raw); err == nil {
			in.UserID = &userID
		}
	}

	items, pagination, err := h.listUC.Execute(c.Request.Context(), caller, in)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.Page(c, items, pagination)
}

// ======================================================
// GET BY ID
// ======================================================

func (h *AppointmentHandler) GetByID(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.getUC.Execute(c.Request.Context(), caller, id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// UPDATE (edição completa)
// ======================================================

func (h *AppointmentHandler) Update(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	serviceID, _ := uuid.Parse(req.ServiceID)

	ap, err := h.updateUC.Execute(c.Request.Context(), caller, id, ucAppointment.UpdateInput{
		VehicleModel: req.VehicleModel,
		VehicleColor: req.VehicleColor,
		Plate:        req.Plate,
		ServiceID:    serviceID,
		Date:         req.Date,
		Time:         req.Time,
		Notes:        req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.rescheduleUC.Execute(c.Request.Context(), caller, id, ucAppointment.RescheduleInput{
		Date: req.Date,
		Time: req.Time,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), caller, id, domain.Status(req.Status))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), caller, id, domain.StatusCancelled)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	ap, err := h.statusUC.Execute(c.Request.Context(), caller, id, domain.StatusCompleted)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, ap)
}

// ======================================================
// DELETE
// ======================================================

func (h *AppointmentHandler) Delete(c *gin.Context) {
	caller := middleware.CallerFrom(c)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	if err := h.deleteUC.Execute(c.Request.Context(), caller, id); err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.OK(c, gin.H{"deleted": true})
}
