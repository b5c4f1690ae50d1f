package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sciops/workorder-gin/internal/service"
)

// PersonnelController exposes the requester directory.
type PersonnelController struct {
	personnel service.PersonnelService
}

// NewPersonnelController creates a personnel controller.
func NewPersonnelController(personnel service.PersonnelService) *PersonnelController {
	return &PersonnelController{personnel: personnel}
}

// List returns the selectable requesters
// @Summary      List active personnel
// @Tags         personnel
// @Produce      json
// @Success      200  {object}  Response
// @Router       /personnel [get]
func (c *PersonnelController) List(ctx *gin.Context) {
	people, err := c.personnel.ListActive()
	if err != nil {
		Error(ctx, http.StatusInternalServerError, "failed to list personnel", err.Error())
		return
	}

	Success(ctx, people)
}
