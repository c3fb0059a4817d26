package repository

import "github.com/vietanh2810/dining-pos-api/internal/repository/dao"

var (
	ErrTableNotFound      = dao.ErrTableNotFound
	ErrTableNumberExists  = dao.ErrTableNumberExists
	ErrGroupNotFound      = dao.ErrGroupNotFound
	ErrActiveGroupExists  = dao.ErrActiveGroupExists
	ErrOrderNotFound      = dao.ErrOrderNotFound
	ErrOrderItemNotFound  = dao.ErrOrderItemNotFound
	ErrGuestNotFound      = dao.ErrGuestNotFound
	ErrAccountNotFound    = dao.ErrAccountNotFound
	ErrAccountEmailExists = dao.ErrAccountEmailExists
	ErrProductNotFound    = dao.ErrProductNotFound
)
