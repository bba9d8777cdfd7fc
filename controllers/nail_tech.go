package controllers

import (
	"net/http"

	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type CreateNailTechInput struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

type NailTechController struct {
	techs *services.NailTechService
}

func NewNailTechController(techs *services.NailTechService) *NailTechController {
	return &NailTechController{techs: techs}
}

func (nc *NailTechController) GetNailTechs(c *gin.Context) {
	techs, err := nc.techs.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"nailTechs": techs})
}

func (nc *NailTechController) CreateNailTech(c *gin.Context) {
	var input CreateNailTechInput
	if !bindJSON(c, &input) {
		return
	}

	tech, err := nc.techs.Create(c.Request.Context(), input.Name)
	if err != nil {
		if utils.IsKind(err, utils.KindConflict) {
			utils.RespondWithError(c, http.StatusConflict, "A nail tech with that name already exists.")
			return
		}
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"nailTech": tech})
}
