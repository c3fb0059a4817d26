package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/dining-pos-api/internal/api/middleware"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type CartService interface {
	ListDraft(ctx context.Context, groupID uuid.UUID) ([]domain.ParticipantOrders, error)
	ListSubmitted(ctx context.Context, groupID uuid.UUID) ([]domain.ParticipantOrders, error)
	OpenDraft(ctx context.Context, groupID uuid.UUID, caller domain.Caller) (domain.Order, error)
	AddItemForCaller(ctx context.Context, groupID uuid.UUID, caller domain.Caller, productID uint, qty int, note string) (domain.Order, error)
	UpdateItem(ctx context.Context, itemID uint, qty int, note string) (domain.Order, error)
	RemoveItem(ctx context.Context, itemID uint) (domain.Order, error)
	Submit(ctx context.Context, orderID uint) (domain.Order, error)
	ComputeGroupTotals(ctx context.Context, groupID uuid.UUID) (domain.GroupTotals, error)
	PerParticipantSpend(ctx context.Context, groupID uuid.UUID) ([]domain.ParticipantSpend, error)
	CartStatus(ctx context.Context, groupID uuid.UUID) (domain.CartStatus, error)
}

type CartHandler struct {
	svc CartService
}

func NewCartHandler(svc CartService) *CartHandler {
	return &CartHandler{
		svc: svc,
	}
}

// HandleGetCart godoc
// @Summary      Get the cart of a session
// @Description  Returns draft and submitted orders bundled per participant with the running totals
// @Tags         cart
// @Produce      json
// @Param        groupID  path      string  true  "Order group ID"
// @Success      200      {object}  response.CartStatus
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID}/cart [get]
func (h *CartHandler) HandleGetCart(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	status, err := h.svc.CartStatus(ctx.Request.Context(), groupID)
	if err != nil {
		err = fmt.Errorf("HandleGetCart -> h.svc.CartStatus -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewCartStatus(status))
}

// HandleListOrders godoc
// @Summary      List orders of a session
// @Description  Returns the orders of one status bundled per participant
// @Tags         cart
// @Produce      json
// @Param        groupID  path      string  true   "Order group ID"
// @Param        status   query     string  false  "Order status (default draft)"  Enums(draft, submitted)
// @Success      200      {array}   response.Bundle
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID}/orders [get]
func (h *CartHandler) HandleListOrders(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var (
		bundles []domain.ParticipantOrders
		err     error
	)
	switch status := ctx.DefaultQuery("status", string(domain.OrderDraft)); domain.OrderStatus(status) {
	case domain.OrderDraft:
		bundles, err = h.svc.ListDraft(ctx.Request.Context(), groupID)
	case domain.OrderSubmitted:
		bundles, err = h.svc.ListSubmitted(ctx.Request.Context(), groupID)
	default:
		response.RenderErr(ctx, response.ErrBadRequest(fmt.Errorf("unknown order status %q", status)))
		return
	}
	if err != nil {
		err = fmt.Errorf("HandleListOrders -> h.svc.List -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewBundles(bundles))
}

// HandleOpenDraft godoc
// @Summary      Get or create the caller's draft order
// @Description  The caller is the X-Guest-Token guest, else the bearer account, else anonymous
// @Tags         cart
// @Produce      json
// @Param        groupID        path      string  true   "Order group ID"
// @Param        X-Guest-Token  header    string  false  "Guest token"
// @Success      200            {object}  response.Order
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /groups/{groupID}/orders [post]
func (h *CartHandler) HandleOpenDraft(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.OpenDraft(ctx.Request.Context(), groupID, middleware.CallerFromContext(ctx))
	if err != nil {
		err = fmt.Errorf("HandleOpenDraft -> h.svc.OpenDraft -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrder(order))
}

// HandleAddItem godoc
// @Summary      Add a line to the caller's draft
// @Description  Adds a product to the draft of the caller, merging it into an identical line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        groupID        path      string                  true   "Order group ID"
// @Param        X-Guest-Token  header    string                  false  "Guest token"
// @Param        input          body      request.AddItemRequest  true   "Line"
// @Success      201            {object}  response.Order
// @Failure      400            {object}  response.Err
// @Failure      404            {object}  response.Err
// @Failure      409            {object}  response.Err
// @Failure      500            {object}  response.Err
// @Router       /groups/{groupID}/cart/items [post]
func (h *CartHandler) HandleAddItem(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.AddItemRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	caller := middleware.CallerFromContext(ctx)
	order, err := h.svc.AddItemForCaller(ctx.Request.Context(), groupID, caller, input.ProductID, input.Quantity, input.Note)
	if err != nil {
		err = fmt.Errorf("HandleAddItem -> h.svc.AddItemForCaller -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, response.NewOrder(order))
}

// HandleUpdateItem godoc
// @Summary      Change a draft line
// @Tags         cart
// @Accept       json
// @Produce      json
// @Param        itemID  path      int                        true  "Order item ID"
// @Param        input   body      request.UpdateItemRequest  true  "Quantity and note"
// @Success      200     {object}  response.Order
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /cart/items/{itemID} [patch]
func (h *CartHandler) HandleUpdateItem(ctx *gin.Context) {
	itemID, respErr := uintParam(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	order, err := h.svc.UpdateItem(ctx.Request.Context(), itemID, input.Quantity, input.Note)
	if err != nil {
		err = fmt.Errorf("HandleUpdateItem -> h.svc.UpdateItem -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrder(order))
}

// HandleRemoveItem godoc
// @Summary      Remove a draft line
// @Tags         cart
// @Produce      json
// @Param        itemID  path      int  true  "Order item ID"
// @Success      200     {object}  response.Order
// @Failure      400     {object}  response.Err
// @Failure      404     {object}  response.Err
// @Failure      409     {object}  response.Err
// @Failure      500     {object}  response.Err
// @Router       /cart/items/{itemID} [delete]
func (h *CartHandler) HandleRemoveItem(ctx *gin.Context) {
	itemID, respErr := uintParam(ctx, "itemID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.RemoveItem(ctx.Request.Context(), itemID)
	if err != nil {
		err = fmt.Errorf("HandleRemoveItem -> h.svc.RemoveItem -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrder(order))
}

// HandleSubmitOrder godoc
// @Summary      Submit a draft order
// @Description  Sends the order to the kitchen and adds it to the session total
// @Tags         cart
// @Produce      json
// @Param        orderID  path      int  true  "Order ID"
// @Success      200      {object}  response.Order
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /orders/{orderID}/submit [post]
func (h *CartHandler) HandleSubmitOrder(ctx *gin.Context) {
	orderID, respErr := uintParam(ctx, "orderID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	order, err := h.svc.Submit(ctx.Request.Context(), orderID)
	if err != nil {
		err = fmt.Errorf("HandleSubmitOrder -> h.svc.Submit -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.NewOrder(order))
}

// HandleGetTotals godoc
// @Summary      Get session totals
// @Tags         cart
// @Produce      json
// @Param        groupID  path      string  true  "Order group ID"
// @Success      200      {object}  domain.GroupTotals
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID}/totals [get]
func (h *CartHandler) HandleGetTotals(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	totals, err := h.svc.ComputeGroupTotals(ctx.Request.Context(), groupID)
	if err != nil {
		err = fmt.Errorf("HandleGetTotals -> h.svc.ComputeGroupTotals -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, totals)
}

// HandleGetSpend godoc
// @Summary      Get spend per participant
// @Description  Sums submitted orders per display name
// @Tags         cart
// @Produce      json
// @Param        groupID  path      string  true  "Order group ID"
// @Success      200      {array}   domain.ParticipantSpend
// @Failure      400      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /groups/{groupID}/spend [get]
func (h *CartHandler) HandleGetSpend(ctx *gin.Context) {
	groupID, respErr := uuidParam(ctx, "groupID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	spend, err := h.svc.PerParticipantSpend(ctx.Request.Context(), groupID)
	if err != nil {
		err = fmt.Errorf("HandleGetSpend -> h.svc.PerParticipantSpend -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, spend)
}
