// controllers/service.go
package controllers

import (
	"net/http"

	"nailbook-backend/services"
	"nailbook-backend/utils"

	"github.com/gin-gonic/gin"
)

type ServiceController struct {
	catalog *services.CatalogService
}

func NewServiceController(catalog *services.CatalogService) *ServiceController {
	return &ServiceController{catalog: catalog}
}

// CreateService adds a service to the catalog
func (sc *ServiceController) CreateService(c *gin.Context) {
	var input services.CreateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := sc.catalog.Create(c.Request.Context(), input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"service": service})
}

// GetServices lists active services first, then by name
func (sc *ServiceController) GetServices(c *gin.Context) {
	list, err := sc.catalog.List(c.Request.Context())
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": list})
}

// GetService retrieves a specific service by ID
func (sc *ServiceController) GetService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	service, err := sc.catalog.Get(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}

// UpdateService applies a partial update to a service
func (sc *ServiceController) UpdateService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var input services.UpdateServiceInput
	if !bindJSON(c, &input) {
		return
	}

	service, err := sc.catalog.Update(c.Request.Context(), id, input)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"service": service})
}

// DeleteService removes a service, or deactivates it when it has bookings
func (sc *ServiceController) DeleteService(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	result, err := sc.catalog.Delete(c.Request.Context(), id)
	if err != nil {
		utils.RespondWithAppError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
