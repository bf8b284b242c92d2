package handlers

import (
	"net/http"

	"github.com/zulven/arkivia-collab-todo/internal/dto"
	"github.com/zulven/arkivia-collab-todo/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the user search behind the assignment picker.
type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// Search godoc
// @Summary      Search users by username, email or display name
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  true  "Search query"
// @Success      200  {object}  dto.UserSearchResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /users/search [get]
func (h *UserHandler) Search(c *gin.Context) {
	if _, ok := requireUID(c); !ok {
		return
	}
	list, err := h.svc.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.UserSearchResponse{Users: dto.NewUserResponses(list)})
}
