package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

var (
	errEmptyLayout = errors.New("layout must contain at least one table")
	errNoChanges   = errors.New("at least one of number, capacity or shape is required")
)

var tableShapes = []any{
	string(domain.ShapeRound),
	string(domain.ShapeSquare),
	string(domain.ShapeRectangle),
	string(domain.ShapeLarge),
}

type CreateTableRequest struct {
	Number   int    `json:"number" binding:"required"`
	Capacity int    `json:"capacity" binding:"required"`
	Shape    string `json:"shape" binding:"required" enums:"round,square,rectangle,large"`
}

func (req *CreateTableRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Required, validation.Min(1)),
		validation.Field(&req.Capacity, validation.Required, validation.Min(1)),
		validation.Field(&req.Shape, validation.Required, validation.In(tableShapes...)),
	)
}

type UpdateTableStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"empty,cleaning,booked"`
}

func (req *UpdateTableStatusRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Status, validation.Required),
	)
}

type UpdateTableInfoRequest struct {
	Number   *int    `json:"number,omitempty"`
	Capacity *int    `json:"capacity,omitempty"`
	Shape    *string `json:"shape,omitempty" enums:"round,square,rectangle,large"`
}

func (req *UpdateTableInfoRequest) Validate() error {
	if req.Number == nil && req.Capacity == nil && req.Shape == nil {
		return errNoChanges
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Number, validation.Min(1)),
		validation.Field(&req.Capacity, validation.Min(1)),
		validation.Field(&req.Shape, validation.In(tableShapes...)),
	)
}

func (req *UpdateTableInfoRequest) ToDomain() domain.TableInfo {
	info := domain.TableInfo{
		Number:   req.Number,
		Capacity: req.Capacity,
	}
	if req.Shape != nil {
		shape := domain.TableShape(*req.Shape)
		info.Shape = &shape
	}

	return info
}

type RepositionRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (req *RepositionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.X, validation.Min(0)),
		validation.Field(&req.Y, validation.Min(0)),
	)
}

type PlacementRequest struct {
	TableID uint `json:"table_id"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
}

func (req PlacementRequest) Validate() error {
	return validation.ValidateStruct(
		&req,
		validation.Field(&req.TableID, validation.Required),
		validation.Field(&req.X, validation.Min(0)),
		validation.Field(&req.Y, validation.Min(0)),
	)
}

type BulkRelayoutRequest struct {
	Placements []PlacementRequest `json:"placements"`
}

func (req *BulkRelayoutRequest) Validate() error {
	if len(req.Placements) == 0 {
		return errEmptyLayout
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Placements),
	)
}

func (req *BulkRelayoutRequest) ToDomain() []domain.Placement {
	placements := make([]domain.Placement, len(req.Placements))
	for i, p := range req.Placements {
		placements[i] = domain.Placement{TableID: p.TableID, X: p.X, Y: p.Y}
	}

	return placements
}
