package v1

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/agrolink/distribution-api/internal/api/handler/v1/response"
	"github.com/agrolink/distribution-api/internal/api/middleware"
	"github.com/agrolink/distribution-api/internal/domain"
	"github.com/agrolink/distribution-api/internal/service"
)

func getUserFromContext(ctx *gin.Context, uSvc UserService) (domain.User, *response.Err) {
	rawID, exists := ctx.Get(middleware.ContextKeyUserID)
	if !exists {
		return domain.User{}, response.ErrUnauthorized(errors.New("missing user in context"))
	}

	userID, ok := rawID.(uint)
	if !ok {
		return domain.User{}, response.ErrUnauthorized(errors.New("invalid user in context"))
	}

	user, err := uSvc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			return domain.User{}, response.ErrUnauthorized(err)
		}

		return domain.User{}, response.ErrInternalServerError(fmt.Errorf("v1.getUserFromContext -> uSvc.GetUser -> %w", err))
	}

	return user, nil
}
