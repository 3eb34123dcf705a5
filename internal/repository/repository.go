package repository

import (
	"database/sql"
	"errors"

	"github.com/staffdesk-dev/hr-manager/backend/internal/config"
)

// 正常情况下交接记录会在创建离职申请时预置，查不到说明调用方没有先加载完整记录
var ErrClearanceNotLoaded = errors.New("部门交接记录未加载")

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}
