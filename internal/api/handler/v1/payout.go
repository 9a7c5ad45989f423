package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agrolink/distribution-api/internal/api/handler/v1/request"
	"github.com/agrolink/distribution-api/internal/api/handler/v1/response"
	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/service"
)

type PayoutService interface {
	TotalEarnings(ctx context.Context, userID uint) (float64, error)
	TotalPaid(ctx context.Context, userID uint) (float64, error)
	PendingBalance(ctx context.Context, userID uint) (float64, error)
	ListPending(ctx context.Context, roles []domain.Role) ([]domain.PendingPayout, error)
	RecordPayout(ctx context.Context, userID uint, amount float64) (domain.Payout, error)
}

type PayoutHandler struct {
	svc  PayoutService
	uSvc UserService
}

func NewPayoutHandler(svc PayoutService, uSvc UserService) *PayoutHandler {
	return &PayoutHandler{
		svc:  svc,
		uSvc: uSvc,
	}
}

// defaultPayoutRoles are the tiers that earn margin and can be owed money.
var defaultPayoutRoles = []domain.Role{
	domain.RoleFranchise,
	domain.RoleDistributor,
	domain.RoleSubDistributor,
	domain.RoleDealer,
}

// HandleListPending godoc
// @Summary      List users who are owed money
// @Description  Computes earnings minus recorded payouts per user and keeps positive balances.
// @Description  The roles query narrows which tiers are included, defaulting to every
// @Description  earning tier.
// @Tags         payouts
// @Produce      json
// @Param        roles  query     string  false  "comma-separated role names"
// @Success      200    {array}   domain.PendingPayout
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      403    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /payouts/pending [get]
// @Security BearerAuth
func (h *PayoutHandler) HandleListPending(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if user.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot view payouts", user.ID)))
		return
	}

	roles := defaultPayoutRoles
	if raw := ctx.Query("roles"); raw != "" {
		roles = nil
		for _, name := range strings.Split(raw, ",") {
			role := domain.Role(strings.TrimSpace(name))
			if !role.Valid() {
				response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid role %q", name)))
				return
			}

			roles = append(roles, role)
		}
	}

	pending, err := h.svc.ListPending(ctx.Request.Context(), roles)
	if err != nil {
		err = fmt.Errorf("v1.HandleListPending -> h.svc.ListPending -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, pending)
}

// HandleGetUserPayout godoc
// @Summary      Get a user's settlement position
// @Tags         payouts
// @Produce      json
// @Param        userID  path      integer  true  "user ID"
// @Success      200     {object}  domain.PendingPayout
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      403     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /payouts/user/{userID} [get]
// @Security BearerAuth
func (h *PayoutHandler) HandleGetUserPayout(ctx *gin.Context) {
	actingUser, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	rawID, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID %q", ctx.Param("userID"))))
		return
	}
	userID := uint(rawID)

	// Users may check their own position; Admins may check anyone's.
	if actingUser.Role != domain.RoleAdmin && actingUser.ID != userID {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot view payouts of user %v", actingUser.ID, userID)))
		return
	}

	user, err := h.uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", userID))
			return
		}

		err = fmt.Errorf("v1.HandleGetUserPayout -> h.uSvc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	earnings, err := h.svc.TotalEarnings(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUserPayout -> h.svc.TotalEarnings -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	paid, err := h.svc.TotalPaid(ctx.Request.Context(), userID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUserPayout -> h.svc.TotalPaid -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, domain.PendingPayout{
		User:           user,
		TotalEarnings:  earnings,
		TotalPaid:      paid,
		PendingBalance: earnings - paid,
	})
}

// HandleRecordPayout godoc
// @Summary      Record a payout made to a user
// @Tags         payouts
// @Accept       json
// @Produce      json
// @Param        request  body      request.RecordPayoutRequest  true  "request body"
// @Success      201      {object}  domain.Payout
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /payouts [post]
// @Security BearerAuth
func (h *PayoutHandler) HandleRecordPayout(ctx *gin.Context) {
	actingUser, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if actingUser.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot record payouts", actingUser.ID)))
		return
	}

	var req request.RecordPayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	payout, err := h.svc.RecordPayout(ctx.Request.Context(), req.UserID, req.Amount)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "ID", req.UserID))
			return
		}

		err = fmt.Errorf("v1.HandleRecordPayout -> h.svc.RecordPayout -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, payout)
}
