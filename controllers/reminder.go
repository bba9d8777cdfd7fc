// controllers/reminder.go
package controllers

import (
	"net/http"

	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type ReminderController struct {
	reminders *services.ReminderService
}

func NewReminderController(reminders *services.ReminderService) *ReminderController {
	return &ReminderController{reminders: reminders}
}

// GetReminderLogs lists recent reminder attempts
func (rc *ReminderController) GetReminderLogs(c *gin.Context) {
	var query struct {
		AppointmentID *uint `form:"appointmentId"`
	}
	if !bindQuery(c, &query) {
		return
	}

	logs, err := rc.reminders.Logs(c.Request.Context(), query.AppointmentID)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reminders": logs})
}

// SendReminders runs the next-day reminder job immediately
func (rc *ReminderController) SendReminders(c *gin.Context) {
	result, err := rc.reminders.SendDailyReminders(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
