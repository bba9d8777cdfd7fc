package controllers

import (
	"net/http"
	"strconv"

	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return uint(id), true
}

func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		msg, field := utils.ValidationMessage(err)
		utils.RespondWithAppError(c, utils.ValidationField(field, msg))
		return false
	}
	return true
}

func bindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		msg, field := utils.ValidationMessage(err)
		utils.RespondWithAppError(c, utils.ValidationField(field, msg))
		return false
	}
	return true
}
