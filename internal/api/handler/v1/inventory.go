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

type InventoryService interface {
	GetInventory(ctx context.Context, userID uint) ([]domain.InventoryItem, error)
	GetUplineInventory(ctx context.Context, user domain.User) ([]domain.InventoryItem, error)
	AddStock(ctx context.Context, userID, productID uint, quantity int) (domain.InventoryRecord, error)
}

type InventoryHandler struct {
	svc  InventoryService
	uSvc UserService
}

func NewInventoryHandler(svc InventoryService, uSvc UserService) *InventoryHandler {
	return &InventoryHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// HandleGetInventory godoc
// @Summary      List the authenticated user's stock on hand
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   domain.InventoryItem
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inventory [get]
// @Security BearerAuth
func (h *InventoryHandler) HandleGetInventory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.GetInventory(ctx.Request.Context(), user.ID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetInventory -> h.svc.GetInventory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleGetUplineInventory godoc
// @Summary      List what the authenticated user's upline has in stock
// @Description  Farmers use this to see what their Dealer can sell them. Users without an
// @Description  upline get an empty list.
// @Tags         inventory
// @Produce      json
// @Success      200  {array}   domain.InventoryItem
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /inventory/upline [get]
// @Security BearerAuth
func (h *InventoryHandler) HandleGetUplineInventory(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	items, err := h.svc.GetUplineInventory(ctx.Request.Context(), user)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUplineInventory -> h.svc.GetUplineInventory -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, items)
}

// HandleAddStock godoc
// @Summary      Seed stock into a user's inventory
// @Description  Admin-only entry point for bringing new stock into the chain.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        request  body      request.AddStockRequest  true  "request body"
// @Success      200      {object}  domain.InventoryRecord
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /inventory/stock [post]
// @Security BearerAuth
func (h *InventoryHandler) HandleAddStock(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot seed stock", user.ID)))
		return
	}

	var req request.AddStockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	record, err := h.svc.AddStock(ctx.Request.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
			return
		}

		err = fmt.Errorf("v1.HandleAddStock -> h.svc.AddStock -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, record)
}
