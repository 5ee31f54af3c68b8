package api

import (
	"errors"
	"net/http"

	reqdto "scooter-rental/internal/handler/dto/request"
	resdto "scooter-rental/internal/handler/dto/response"
	"scooter-rental/internal/handler/httperr"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type OfferHandler struct {
	cmds commands.OfferCommands
}

func NewOfferHandler(cmds commands.OfferCommands) *OfferHandler {
	return &OfferHandler{cmds: cmds}
}

// @Summary Create offer
// @Description Quote a ride for a scooter and sign the quote with a pricing token
// @Tags offers
// @Accept json
// @Produce json
// @Param request body reqdto.CreateOfferRequest true "Create offer request"
// @Success 200 {object} resdto.OfferResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /offers [post]
func (h *OfferHandler) Create(c *gin.Context) {
	var req reqdto.CreateOfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.CreateOffer(c.Request.Context(), req.ScooterID, req.UserID)
	if err != nil {
		if errors.Is(err, errs.ErrExternalDependency) {
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Upstream service unavailable", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create offer", nil)
		return
	}

	res, err := resdto.FromCreateOfferResult(result)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render offer", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
