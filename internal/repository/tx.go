package repository

import (
	"gorm.io/gorm"

	"github.com/vietanh2810/dining-pos-api/internal/repository/dao"
)

// TxManager runs a function inside a database transaction carried by the context.
type TxManager = dao.TxManager

func NewTxManager(db *gorm.DB) *TxManager {
	return dao.NewTxManager(db)
}
