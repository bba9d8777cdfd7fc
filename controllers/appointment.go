package controllers

import (
	"net/http"

	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type AppointmentController struct {
	appointments *services.AppointmentService
}

func NewAppointmentController(appointments *services.AppointmentService) *AppointmentController {
	return &AppointmentController{appointments: appointments}
}

// CreateAppointment books an appointment for the signed-in user
func (ac *AppointmentController) CreateAppointment(c *gin.Context) {
	userID, ok := utils.CurrentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var input services.CreateAppointmentInput
	if !bindJSON(c, &input) {
		return
	}

	appt, err := ac.appointments.Create(c.Request.Context(), userID, input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "appointment": appt})
}

// GetAppointments lists appointments, optionally for one local day
func (ac *AppointmentController) GetAppointments(c *gin.Context) {
	var query struct {
		Date string `form:"date" binding:"omitempty,ymd"`
	}
	if !bindQuery(c, &query) {
		return
	}

	appts, err := ac.appointments.ListForDay(c.Request.Context(), query.Date)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}

// GetSlots returns the bookable grid of a local day
func (ac *AppointmentController) GetSlots(c *gin.Context) {
	var query services.SlotQuery
	if !bindQuery(c, &query) {
		return
	}

	slots, err := ac.appointments.Slots(c.Request.Context(), query)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"date": query.Date, "slots": slots})
}

// UpdateAppointmentStatus overwrites the status of an appointment
func (ac *AppointmentController) UpdateAppointmentStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithAppError(c, utils.ValidationField("status", "Invalid status"))
		return
	}

	appt, err := ac.appointments.SetStatus(c.Request.Context(), id, input.Status)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointment": appt})
}
