package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/agrolink/distribution-api/internal/api/handler/v1/request"
	"github.com/agrolink/distribution-api/internal/api/handler/v1/response"
	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/service"
)

type TransactionService interface {
	Execute(ctx context.Context, actingUser domain.User, buyerID *uint, productID uint, quantity int) (domain.Transaction, error)
	GetTransactions(ctx context.Context, userID uint) ([]domain.Transaction, error)
}

type TransactionHandler struct {
	svc  TransactionService
	uSvc UserService
}

func NewTransactionHandler(svc TransactionService, uSvc UserService) *TransactionHandler {
	return &TransactionHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleCreateTransaction godoc
// @Summary      Execute a stock transfer down the chain
// @Description  Resolves the seller and stock holder from the acting user's role, prices the
// @Description  purchase at the buyer's tier and moves stock atomically.
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateTransactionRequest  true  "request body"
// @Success      201      {object}  domain.Transaction
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /transactions [post]
// @Security BearerAuth
func (h *TransactionHandler) HandleCreateTransaction(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var req request.CreateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	transaction, err := h.svc.Execute(ctx.Request.Context(), user, req.BuyerID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingBuyer),
			errors.Is(err, service.ErrNoUpline),
			errors.Is(err, service.ErrInvalidBuyerRole),
			errors.Is(err, service.ErrInvalidTransaction),
			errors.Is(err, service.ErrInsufficientStock):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrNoAdminAccount):
			err = fmt.Errorf("v1.HandleCreateTransaction -> h.svc.Execute -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		case errors.Is(err, service.ErrInvalidReference):
			response.RenderErr(ctx, response.ErrNotFound("transaction party or product", "productID", req.ProductID))
		case errors.Is(err, service.ErrStockConflict):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateTransaction -> h.svc.Execute -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, transaction)
}

// HandleGetTransactions godoc
// @Summary      List transactions the authenticated user took part in
// @Tags         transactions
// @Produce      json
// @Success      200  {array}   domain.Transaction
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /transactions [get]
// @Security BearerAuth
func (h *TransactionHandler) HandleGetTransactions(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	transactions, err := h.svc.GetTransactions(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetTransactions -> h.svc.GetTransactions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, transactions)
}
