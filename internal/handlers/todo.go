package handlers

import (
	"net/http"
	"strings"

	"github.com/zulven/arkivia-collab-todo/internal/auth"
	dom "github.com/zulven/arkivia-collab-todo/internal/domain"
	"github.com/zulven/arkivia-collab-todo/internal/dto"
	"github.com/zulven/arkivia-collab-todo/internal/service"

	"github.com/gin-gonic/gin"
)

type TodoHandler struct {
	svc *service.TodoService
}

func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{svc: svc}
}

// List godoc
// @Summary      List the caller's visible todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.ListTodosResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /todos [get]
func (h *TodoHandler) List(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	list, err := h.svc.List(c.Request.Context(), uid)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListTodosResponse{Todos: dto.NewTodoResponses(list)})
}

// Create godoc
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.CreateTodoRequest  true  "Todo body"
// @Success      201   {object}  dto.TodoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /todos [post]
func (h *TodoHandler) Create(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	var req dto.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	in := service.CreateTodoInput{
		Title:        req.Title,
		Description:  req.Description,
		AssigneeUids: req.AssigneeUids,
	}
	if req.Priority != nil {
		in.Priority = dom.Priority(*req.Priority)
	}
	t, err := h.svc.Create(c.Request.Context(), uid, in)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.TodoEnvelope{Todo: dto.NewTodoResponse(t)})
}

// Reorder godoc
// @Summary      Reorder the caller's visible todos
// @Description  Assigns dense positions 0..N-1 in the submitted order, atomically. Fails as a whole if any id is unknown or outside the caller's visibility.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      dto.ReorderRequest  true  "Ordered todo ids"
// @Success      200   {object}  dto.OKResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /todos/reorder [patch]
func (h *TodoHandler) Reorder(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	orderedIds := make([]string, 0, len(req.OrderedIds))
	for _, id := range req.OrderedIds {
		if id = strings.TrimSpace(id); id != "" {
			orderedIds = append(orderedIds, id)
		}
	}
	if len(orderedIds) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	if err := h.svc.Reorder(c.Request.Context(), uid, orderedIds); err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// Update godoc
// @Summary      Patch a todo
// @Description  Merge patch: only supplied fields change, omitted fields survive untouched.
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string  true  "Todo ID"
// @Param        body  body      dto.UpdateTodoRequest  true  "Partial fields"
// @Success      200   {object}  dto.TodoEnvelope
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Update(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	var req dto.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	patch := dom.TodoPatch{
		Title:        req.Title,
		Description:  req.Description,
		AssigneeUids: req.AssigneeUids,
	}
	if req.Status != nil {
		s := dom.Status(*req.Status)
		patch.Status = &s
	}
	if req.Priority != nil {
		p := dom.Priority(*req.Priority)
		patch.Priority = &p
	}
	t, err := h.svc.Update(c.Request.Context(), uid, id, patch)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.TodoEnvelope{Todo: dto.NewTodoResponse(t)})
}

// Delete godoc
// @Summary      Delete a todo
// @Description  Permanent removal. Owner only; assignees get 403.
// @Tags         todos
// @Security     BearerAuth
// @Param        id  path  string  true  "Todo ID"
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c *gin.Context) {
	uid, ok := requireUID(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": codeValidation})
		return
	}
	if err := h.svc.Delete(c.Request.Context(), uid, id); err != nil {
		writeServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// requireUID fetches the authenticated uid from context. The auth middleware
// guarantees it is set; this is the defensive re-check.
func requireUID(c *gin.Context) (string, bool) {
	uid := auth.UIDFromContext(c)
	if uid == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": codeUnauthenticated})
		return "", false
	}
	return uid, true
}
