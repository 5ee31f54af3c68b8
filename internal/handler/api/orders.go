package api

import (
	"errors"
	"net/http"

	"scooter-rental/internal/domain/order"
	reqdto "scooter-rental/internal/handler/dto/request"
	resdto "scooter-rental/internal/handler/dto/response"
	"scooter-rental/internal/handler/httperr"
	"scooter-rental/internal/pkg/errs"
	"scooter-rental/internal/usecase/commands"
	"scooter-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const orderNotFoundMessage = "order not found"

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary Start order
// @Description Redeem a signed offer and start a ride
// @Tags orders
// @Accept json
// @Produce json
// @Param request body reqdto.StartOrderRequest true "Start order request"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Router /orders [post]
func (h *OrderHandler) Start(c *gin.Context) {
	var req reqdto.StartOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	snap, err := h.cmds.StartOrder(c.Request.Context(), req.Offer.ToDomain(), req.PricingToken)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrInvalidPricingToken):
			httperr.AbortWithError(c, http.StatusBadRequest, err, err.Error(), nil)
		case errors.Is(err, errs.ErrInvalidOffer):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid offer", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to start order", nil)
		}
		return
	}

	renderOrder(c, snap)
}

// @Summary Finish order
// @Description Finish a ride and charge for it. Finishing twice returns the stored result.
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id}/finish [post]
func (h *OrderHandler) Finish(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	snap, err := h.cmds.FinishOrder(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, errs.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, orderNotFoundMessage, nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to finish order", nil)
		return
	}

	renderOrder(c, snap)
}

// @Summary Get order
// @Description Get an order by ID
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	snap, found, err := h.q.GetOrder(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}
	if !found {
		httperr.AbortWithError(c, http.StatusNotFound, errs.ErrOrderNotFound, orderNotFoundMessage, nil)
		return
	}

	renderOrder(c, snap)
}

func renderOrder(c *gin.Context, snap *order.Snapshot) {
	res, err := resdto.FromOrderSnapshot(snap)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to render order", nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
