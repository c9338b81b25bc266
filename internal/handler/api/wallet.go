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

type WalletHandler struct {
	cmds commands.WalletCommands
	q    queries.WalletQueries
}

func NewWalletHandler(cmds commands.WalletCommands, q queries.WalletQueries) *WalletHandler {
	return &WalletHandler{cmds: cmds, q: q}
}

// @Summary Own wallet
// @Description Balance and the most recent ledger entries.
// @Tags wallet
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.WalletResponse
// @Failure 404 {object} httperr.Response
// @Router /wallet [get]
func (h *WalletHandler) GetMine(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondMissingUser(c)
		return
	}

	view, err := h.q.GetByUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromWalletView(view))
}

// @Summary Request deposit
// @Description Records a pending deposit that an operator confirms once the transfer arrives.
// @Tags wallet
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RequestDepositRequest true "Deposit amount"
// @Success 201 {object} resdto.CreatedResponse
// @Failure 400 {object} httperr.Response
// @Failure 422 {object} httperr.Response
// @Router /wallet/deposits [post]
func (h *WalletHandler) RequestDeposit(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		respondMissingUser(c)
		return
	}

	var req reqdto.RequestDepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	amount, err := req.Money()
	if err != nil {
		respondError(c, err)
		return
	}

	id, err := h.cmds.RequestDeposit(c.Request.Context(), userID, amount)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resdto.CreatedResponse{ID: id})
}

// @Summary Pending deposits
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size"
// @Success 200 {array} resdto.LedgerEntryResponse
// @Router /admin/deposits [get]
func (h *WalletHandler) ListPendingDeposits(c *gin.Context) {
	var q reqdto.ListDepositsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindError(c, err)
		return
	}

	entries, err := h.q.ListPendingDeposits(c.Request.Context(), q.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromLedgerEntries(entries))
}

// @Summary Confirm deposit
// @Description Credits the wallet and confirms the entry in one transaction.
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ledger entry ID"
// @Success 200 {object} resdto.CreditResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /admin/deposits/{id}/confirm [post]
func (h *WalletHandler) ConfirmDeposit(c *gin.Context) {
	operatorID, ok := middleware.GetUserID(c)
	if !ok {
		respondMissingUser(c)
		return
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		respondInvalidID(c, err)
		return
	}

	result, err := h.cmds.ConfirmDeposit(c.Request.Context(), id, operatorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromCreditResult(result))
}
