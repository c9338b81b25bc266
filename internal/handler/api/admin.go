package api

import (
	"net/http"

	reqdto "field-rental/internal/handler/dto/request"
	resdto "field-rental/internal/handler/dto/response"
	"field-rental/internal/handler/middleware"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminReservationHandler serves the operator back office.
type AdminReservationHandler struct {
	cmds commands.ReservationCommands
	q    queries.ReservationQueries
}

func NewAdminReservationHandler(cmds commands.ReservationCommands, q queries.ReservationQueries) *AdminReservationHandler {
	return &AdminReservationHandler{cmds: cmds, q: q}
}

// @Summary List all reservations
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param status query string false "pending, accepted or rejected"
// @Param cursor query string false "Cursor from the previous page"
// @Param limit query int false "Page size"
// @Success 200 {object} resdto.ReservationPageResponse
// @Router /admin/reservations [get]
func (h *AdminReservationHandler) List(c *gin.Context) {
	var q reqdto.ListReservationsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	page, err := h.q.ListAll(c.Request.Context(), q.StatusFilter(), q.Cursor, q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromReservationPage(page))
}

// @Summary Accept reservation
// @Description Debits the owner's wallet and accepts the reservation in one transaction.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 200 {object} resdto.AcceptReservationResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /admin/reservations/{id}/accept [post]
func (h *AdminReservationHandler) Accept(c *gin.Context) {
	id, operatorID, ok := h.target(c)
	if !ok {
		return
	}

	result, err := h.cmds.Accept(c.Request.Context(), id, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAcceptResult(result))
}

// @Summary Reject reservation
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/reservations/{id}/reject [post]
func (h *AdminReservationHandler) Reject(c *gin.Context) {
	id, operatorID, ok := h.target(c)
	if !ok {
		return
	}

	if err := h.cmds.Reject(c.Request.Context(), id, operatorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Delete reservation
// @Description Removes the record. A debit already taken is not refunded.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Reservation ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Router /admin/reservations/{id} [delete]
func (h *AdminReservationHandler) Delete(c *gin.Context) {
	id, operatorID, ok := h.target(c)
	if !ok {
		return
	}

	if err := h.cmds.Delete(c.Request.Context(), id, operatorID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminReservationHandler) target(c *gin.Context) (uuid.UUID, uuid.UUID, bool) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		respondMissingUser(c)
		return uuid.Nil, uuid.Nil, false
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, err)
		return uuid.Nil, uuid.Nil, false
	}
	return id, operatorID, true
}
