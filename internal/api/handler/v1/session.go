package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type SessionService interface {
	Open(ctx context.Context, tableID uint) (domain.OrderGroup, error)
	Close(ctx context.Context, groupID uuid.UUID) (domain.OrderGroup, error)
	GetGroup(ctx context.Context, groupID uuid.UUID) (domain.OrderGroup, error)
	ActiveGroupForTable(ctx context.Context, tableID uint) (domain.OrderGroup, error)
	JoinGuest(ctx context.Context, groupID uuid.UUID, nickname string) (domain.Guest, error)
}

type SessionHandler struct {
	svc SessionService
}

func NewSessionHandler(svc SessionService) *SessionHandler {
	return &SessionHandler{
		svc: svc,
	}
}

// HandleOpenSession godoc
// @Summary      Open a dining session
// @Description  Opens a new order group on a table and marks the table as dining
// @Tags         sessions
// @Produce      json
// @Param        tableID  path      int  true  "Table ID"
// @Success      201      {object}  domain.OrderGroup
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID}/groups [post]
func (h *SessionHandler) HandleOpenSession(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	group, err := h.svc.Open(ctx.Request.Context(), tableID)
	if err != nil {
		err = fmt.Errorf("HandleOpenSession -> h.svc.Open -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, group)
}

// HandleGetActiveSession godoc
// @Summary      Get the active session of a table
// @Tags         sessions
// @Produce      json
// @Param        tableID  path      int  true  "Table ID"
// @Success      200      {object}  domain.OrderGroup
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID}/groups/active [get]
func (h *SessionHandler) HandleGetActiveSession(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	group, err := h.svc.ActiveGroupForTable(ctx.Request.Context(), tableID)
	if err != nil {
		err = fmt.Errorf("HandleGetActiveSession -> h.svc.ActiveGroupForTable -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// HandleGetSession godoc
// @Summary      Get a dining session
// @Tags         sessions
// @Produce      json
// @Param        groupID  path      string  true  "Order group ID"
// @Success      200      {object}  domain.OrderGroup
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID} [get]
func (h *SessionHandler) HandleGetSession(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	group, err := h.svc.GetGroup(ctx.Request.Context(), groupID)
	if err != nil {
		err = fmt.Errorf("HandleGetSession -> h.svc.GetGroup -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// HandleCloseSession godoc
// @Summary      Close a dining session
// @Description  Completes the order group and sends the table to cleaning
// @Tags         sessions
// @Produce      json
// @Param        groupID  path      string  true  "Order group ID"
// @Success      200      {object}  domain.OrderGroup
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID}/close [post]
func (h *SessionHandler) HandleCloseSession(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	group, err := h.svc.Close(ctx.Request.Context(), groupID)
	if err != nil {
		err = fmt.Errorf("HandleCloseSession -> h.svc.Close -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, group)
}

// HandleJoinGuest godoc
// @Summary      Join a session as a guest
// @Description  Registers a nickname for the session. The returned token goes in the X-Guest-Token header.
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Param        groupID  path      string                    true  "Order group ID"
// @Param        input    body      request.JoinGuestRequest  true  "Guest nickname"
// @Success      201      {object}  response.JoinGuest
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID}/guests [post]
func (h *SessionHandler) HandleJoinGuest(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.JoinGuestRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	guest, err := h.svc.JoinGuest(ctx.Request.Context(), groupID, input.Nickname)
	if err != nil {
		err = fmt.Errorf("HandleJoinGuest -> h.svc.JoinGuest -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.JoinGuest{Token: guest.ID, Guest: guest})
}
