package request

import (
	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/vietanh2810/dining-pos-api/internal/domain"
)

const maxNoteLength = 200

type AddItemRequest struct {
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
	Note      string `json:"note,omitempty"`
}

func (req *AddItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ProductID, validation.Required),
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(domain.MaxLineQuantity)),
		validation.Field(&req.Note, validation.Length(0, maxNoteLength)),
	)
}

type UpdateItemRequest struct {
	Quantity int    `json:"quantity" binding:"required"`
	Note     string `json:"note,omitempty"`
}

func (req *UpdateItemRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required, validation.Min(1), validation.Max(domain.MaxLineQuantity)),
		validation.Field(&req.Note, validation.Length(0, maxNoteLength)),
	)
}
