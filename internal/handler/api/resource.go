package api

import (
	"net/http"

	reqdto "field-rental/internal/handler/dto/request"
	resdto "field-rental/internal/handler/dto/response"
	"field-rental/internal/usecase/commands"
	"field-rental/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ResourceHandler struct {
	cmds         commands.ResourceCommands
	q            queries.ResourceQueries
	availability queries.AvailabilityQueries
}

func NewResourceHandler(cmds commands.ResourceCommands, q queries.ResourceQueries, availability queries.AvailabilityQueries) *ResourceHandler {
	return &ResourceHandler{cmds: cmds, q: q, availability: availability}
}

// @Summary List fields
// @Tags resources
// @Produce json
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {array} resdto.ResourceResponse
// @Router /resources [get]
func (h *ResourceHandler) List(c *gin.Context) {
	var q reqdto.ListResourcesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	views, err := h.q.List(c.Request.Context(), q.Limit, q.Offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceViews(views))
}

// @Summary Get field
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 404 {object} httperr.Response
// @Router /resources/{id} [get]
func (h *ResourceHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, err)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromResourceView(view))
}

// @Summary Field availability
// @Description Booked and free clock slots for one day. An unknown field shows every slot free.
// @Tags resources
// @Produce json
// @Param id path string true "Resource ID"
// @Param date query string true "YYYY-MM-DD"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} httperr.Response
// @Router /resources/{id}/availability [get]
func (h *ResourceHandler) Availability(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, err)
		return
	}

	var q reqdto.AvailabilityQuery
	if bindErr := c.ShouldBindQuery(&q); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}
	date, err := q.BookingDate()
	if err != nil {
		respondError(c, err)
		return
	}

	view, err := h.availability.ListAvailability(c.Request.Context(), id, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Create field
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateResourceRequest true "Field details"
// @Success 201 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Router /admin/resources [post]
func (h *ResourceHandler) Create(c *gin.Context) {
	var req reqdto.CreateResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	details, err := req.ToDetails()
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := h.cmds.Create(c.Request.Context(), details)
	if err != nil {
		respondError(c, err)
		return
	}
	h.respondWith(c, http.StatusCreated, id)
}

// @Summary Update field
// @Description Changing the rate does not reprice existing reservations.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Param request body reqdto.UpdateResourceRequest true "Fields to change"
// @Success 200 {object} resdto.ResourceResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /admin/resources/{id} [patch]
func (h *ResourceHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, err)
		return
	}

	var req reqdto.UpdateResourceRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		respondBindError(c, bindErr)
		return
	}
	p, err := req.ToPatch()
	if err != nil {
		respondError(c, err)
		return
	}

	if err = h.cmds.Update(c.Request.Context(), id, p); err != nil {
		respondError(c, err)
		return
	}
	h.respondWith(c, http.StatusOK, id)
}

// @Summary Delete field
// @Description Refused while the field has pending or accepted bookings from today on.
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Resource ID"
// @Success 204
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/resources/{id} [delete]
func (h *ResourceHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, err)
		return
	}

	if err = h.cmds.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ResourceHandler) respondWith(c *gin.Context, status int, id uuid.UUID) {
	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(status, resdto.FromResourceView(view))
}
