package domain

import "time"

type TableStatus string

const (
	TableEmpty    TableStatus = "empty"
	TableDining   TableStatus = "dining"
	TableCleaning TableStatus = "cleaning"
	TableBooked   TableStatus = "booked"
)

func ParseTableStatus(s string) (TableStatus, error) {
	switch st := TableStatus(s); st {
	case TableEmpty, TableDining, TableCleaning, TableBooked:
		return st, nil
	default:
		return "", Validationf("unknown table status %q", s)
	}
}

type TableShape string

const (
	ShapeRound     TableShape = "round"
	ShapeSquare    TableShape = "square"
	ShapeRectangle TableShape = "rectangle"
	ShapeLarge     TableShape = "large"
)

type Table struct {
	ID        uint        `json:"id"`
	Number    int         `json:"number"`
	Capacity  int         `json:"capacity"`
	Shape     TableShape  `json:"shape"`
	X         int         `json:"x"`
	Y         int         `json:"y"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Status    TableStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (t Table) Rect() Rect {
	return Rect{X: t.X, Y: t.Y, Width: t.Width, Height: t.Height}
}

// TableInfo holds the admin editable attributes of a table.
type TableInfo struct {
	Number   *int
	Capacity *int
	Shape    *TableShape
}

// Placement is one entry of a bulk relayout.
type Placement struct {
	TableID uint `json:"table_id"`
	X       int  `json:"x"`
	Y       int  `json:"y"`
}
