package v1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/request"
	"github.com/vietanh2810/dining-pos-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

type TableService interface {
	Canvas() domain.Canvas
	CreateTable(ctx context.Context, number, capacity int, shape domain.TableShape) (domain.Table, error)
	GetTable(ctx context.Context, id uint) (domain.Table, error)
	ListTables(ctx context.Context) ([]domain.Table, error)
	ListEmptyTables(ctx context.Context) ([]domain.Table, error)
	UpdateTableStatus(ctx context.Context, id uint, status string) (domain.Table, error)
	UpdateTableInfo(ctx context.Context, id uint, info domain.TableInfo) (domain.Table, error)
	RepositionTable(ctx context.Context, id uint, x, y int) (domain.Table, error)
	BulkRelayout(ctx context.Context, placements []domain.Placement) ([]domain.Table, error)
	DeleteTable(ctx context.Context, id uint) error
}

type TableHandler struct {
	svc TableService
}

func NewTableHandler(svc TableService) *TableHandler {
	return &TableHandler{
		svc: svc,
	}
}

// HandleCreateTable godoc
// @Summary      Create a table
// @Description  Places a new empty table on the first free spot of the floor
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        input  body      request.CreateTableRequest  true  "Table details"
// @Success      201    {object}  domain.Table
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      422    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tables [post]
// @Security BearerAuth
func (h *TableHandler) HandleCreateTable(ctx *gin.Context) {
	var input request.CreateTableRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	table, err := h.svc.CreateTable(ctx.Request.Context(), input.Number, input.Capacity, domain.TableShape(input.Shape))
	if err != nil {
		err = fmt.Errorf("HandleCreateTable -> h.svc.CreateTable -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusCreated, table)
}

// HandleListTables godoc
// @Summary      List tables
// @Description  Returns every table of the floor with its position and status
// @Tags         tables
// @Produce      json
// @Success      200  {array}   domain.Table
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tables [get]
// @Security BearerAuth
func (h *TableHandler) HandleListTables(ctx *gin.Context) {
	tables, err := h.svc.ListTables(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListTables -> h.svc.ListTables -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, tables)
}

// HandleListEmptyTables godoc
// @Summary      List empty tables
// @Description  Returns the tables a new session can be seated at
// @Tags         tables
// @Produce      json
// @Success      200  {array}   domain.Table
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tables/empty [get]
// @Security BearerAuth
func (h *TableHandler) HandleListEmptyTables(ctx *gin.Context) {
	tables, err := h.svc.ListEmptyTables(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("HandleListEmptyTables -> h.svc.ListEmptyTables -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, tables)
}

// HandleGetCanvas godoc
// @Summary      Get the floor canvas
// @Description  Returns the canvas size, margin and shape sizes used for placement
// @Tags         tables
// @Produce      json
// @Success      200  {object}  domain.Canvas
// @Failure      401  {object}  response.Err
// @Router       /tables/canvas [get]
// @Security BearerAuth
func (h *TableHandler) HandleGetCanvas(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, h.svc.Canvas())
}

// HandleGetTable godoc
// @Summary      Get a table
// @Tags         tables
// @Produce      json
// @Param        tableID  path      int  true  "Table ID"
// @Success      200      {object}  domain.Table
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID} [get]
// @Security BearerAuth
func (h *TableHandler) HandleGetTable(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	table, err := h.svc.GetTable(ctx.Request.Context(), tableID)
	if err != nil {
		err = fmt.Errorf("HandleGetTable -> h.svc.GetTable -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, table)
}

// HandleUpdateTableStatus godoc
// @Summary      Update table status
// @Description  Sets empty, cleaning or booked. Dining is set by opening a session.
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        tableID  path      int                                true  "Table ID"
// @Param        input    body      request.UpdateTableStatusRequest  true  "New status"
// @Success      200      {object}  domain.Table
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID}/status [patch]
// @Security BearerAuth
func (h *TableHandler) HandleUpdateTableStatus(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateTableStatusRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	table, err := h.svc.UpdateTableStatus(ctx.Request.Context(), tableID, input.Status)
	if err != nil {
		err = fmt.Errorf("HandleUpdateTableStatus -> h.svc.UpdateTableStatus -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, table)
}

// HandleUpdateTableInfo godoc
// @Summary      Update table details
// @Description  Changes number, capacity or shape. A larger shape must still fit between its neighbours.
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        tableID  path      int                              true  "Table ID"
// @Param        input    body      request.UpdateTableInfoRequest  true  "Fields to change"
// @Success      200      {object}  domain.Table
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID} [patch]
// @Security BearerAuth
func (h *TableHandler) HandleUpdateTableInfo(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.UpdateTableInfoRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	table, err := h.svc.UpdateTableInfo(ctx.Request.Context(), tableID, input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleUpdateTableInfo -> h.svc.UpdateTableInfo -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, table)
}

// HandleRepositionTable godoc
// @Summary      Move a table
// @Description  Moves a table to a new position. A colliding move leaves the table where it was.
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        tableID  path      int                         true  "Table ID"
// @Param        input    body      request.RepositionRequest  true  "Top-left corner"
// @Success      200      {object}  domain.Table
// @Failure      400      {object}  response.Err
// @Failure      401      {object}  response.Err
// @Failure      404      {object}  response.Err
// @Failure      409      {object}  response.Err
// @Failure      500      {object}  response.Err
// @Router       /tables/{tableID}/position [put]
// @Security BearerAuth
func (h *TableHandler) HandleRepositionTable(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	var input request.RepositionRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	table, err := h.svc.RepositionTable(ctx.Request.Context(), tableID, input.X, input.Y)
	if err != nil {
		err = fmt.Errorf("HandleRepositionTable -> h.svc.RepositionTable -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, table)
}

// HandleBulkRelayout godoc
// @Summary      Relayout the floor
// @Description  Moves several tables at once. Either every placement is applied or none is.
// @Tags         tables
// @Accept       json
// @Produce      json
// @Param        input  body      request.BulkRelayoutRequest  true  "Placements"
// @Success      200    {array}   domain.Table
// @Failure      400    {object}  response.Err
// @Failure      401    {object}  response.Err
// @Failure      404    {object}  response.Err
// @Failure      409    {object}  response.Err
// @Failure      500    {object}  response.Err
// @Router       /tables/layout [put]
// @Security BearerAuth
func (h *TableHandler) HandleBulkRelayout(ctx *gin.Context) {
	var input request.BulkRelayoutRequest
	if err := ctx.ShouldBindJSON(&input); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := input.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tables, err := h.svc.BulkRelayout(ctx.Request.Context(), input.ToDomain())
	if err != nil {
		err = fmt.Errorf("HandleBulkRelayout -> h.svc.BulkRelayout -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.JSON(http.StatusOK, tables)
}

// HandleDeleteTable godoc
// @Summary      Delete a table
// @Description  Removes a table that has no active session
// @Tags         tables
// @Param        tableID  path  int  true  "Table ID"
// @Success      204
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      404  {object}  response.Err
// @Failure      409  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /tables/{tableID} [delete]
// @Security BearerAuth
func (h *TableHandler) HandleDeleteTable(ctx *gin.Context) {
	tableID, respErr := uintParam(ctx, "tableID")
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	if err := h.svc.DeleteTable(ctx.Request.Context(), tableID); err != nil {
		err = fmt.Errorf("HandleDeleteTable -> h.svc.DeleteTable -> %w", err)
		response.RenderErr(ctx, response.FromError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
