package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/agrolink/distribution-api/internal/api/handler/v1/request"
	"github.com/agrolink/distribution-api/internal/api/handler/v1/response"
	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/service"
)

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	GetUserByCode(ctx context.Context, code string) (domain.User, error)
	GetUsersByRole(ctx context.Context, role domain.Role) ([]domain.User, error)
	GetUpline(ctx context.Context, user domain.User) (*domain.User, error)
	GetDownline(ctx context.Context, userID uint) ([]domain.User, error)
	BuildTree(ctx context.Context, rootCode string) (*domain.TreeNode, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleCreateUser godoc
// @Summary      Create a user under an upline
// @Description  Only Admins can provision users. The public user code is generated from the role.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request  body      request.CreateUserRequest  true  "request body"
// @Success      201      {object}  domain.User
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      403      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /users [post]
// @Security BearerAuth
func (h *UserHandler) HandleCreateUser(ctx *gin.Context) {
	actingUser, respErr := getUserFromContext(ctx, h.svc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if actingUser.Role != domain.RoleAdmin {
		response.RenderErr(ctx, response.ErrPermissionDenied(fmt.Errorf("user %v cannot provision users", actingUser.ID)))
		return
	}

	var req request.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.CreateUser(ctx.Request.Context(), domain.User{
		Name:     req.Name,
		Role:     domain.Role(req.Role),
		Password: req.Password,
		UplineID: req.UplineID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole),
			errors.Is(err, service.ErrUplineRequired):
			response.RenderErr(ctx, response.ErrBadRequest(err))
		case errors.Is(err, service.ErrUserNotFound):
			response.RenderErr(ctx, response.ErrBadRequest(errors.New("upline user does not exist")))
		case errors.Is(err, service.ErrUserCodeExists):
			response.RenderErr(ctx, response.ErrConflict(err))
		default:
			err = fmt.Errorf("v1.HandleCreateUser -> h.svc.CreateUser -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}

		return
	}

	ctx.JSON(http.StatusCreated, user)
}

// HandleGetUsersByRole godoc
// @Summary      List users holding a role
// @Tags         users
// @Produce      json
// @Param        role  query     string  true  "role name"
// @Success      200   {array}   domain.User
// @Failure      400   {object}  response.Err
// @Failure      401   {object}  response.Err
// @Failure      500   {object}  response.Err
// @Router       /users/by-role [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetUsersByRole(ctx *gin.Context) {
	role := domain.Role(ctx.Query("role"))
	if !role.Valid() {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid role %q", ctx.Query("role"))))
		return
	}

	users, err := h.svc.GetUsersByRole(ctx.Request.Context(), role)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetUsersByRole -> h.svc.GetUsersByRole -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetDownline godoc
// @Summary      List the direct downline of a user
// @Tags         users
// @Produce      json
// @Param        userID  path      integer  true  "user ID"
// @Success      200     {array}   domain.User
// @Failure      400     {object}  response.Err
// @Failure      401     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID}/downline [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetDownline(ctx *gin.Context) {
	userID, err := strconv.ParseUint(ctx.Param("userID"), 10, 64)
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("invalid user ID %q", ctx.Param("userID"))))
		return
	}

	users, err := h.svc.GetDownline(ctx.Request.Context(), uint(userID))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetDownline -> h.svc.GetDownline -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, users)
}

// HandleGetHierarchy godoc
// @Summary      Get the distribution tree rooted at a user
// @Description  Resolves the root by public user code, matched case-insensitively.
// @Tags         users
// @Produce      json
// @Param        userID  path      string  true  "public user code"
// @Success      200     {object}  domain.TreeNode
// @Failure      401     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /users/{userID}/hierarchy [get]
// @Security BearerAuth
func (h *UserHandler) HandleGetHierarchy(ctx *gin.Context) {
	code := ctx.Param("userID")

	tree, err := h.svc.BuildTree(ctx.Request.Context(), code)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound("user", "code", code))
			return
		}

		err = fmt.Errorf("v1.HandleGetHierarchy -> h.svc.BuildTree -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, tree)
}
