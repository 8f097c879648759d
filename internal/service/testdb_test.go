package service

import (
	"strings"
	"testing"

	"requisition/internal/database"
	"requisition/internal/model"
	"requisition/internal/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewConnection(database.MemoryDSN(name), false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func setup(t *testing.T) (RequisitionService, AuditService, *gorm.DB) {
	db := setupTestDB(t)
	auditRepo := repository.NewAuditRepository(db)
	svc := NewRequisitionService(
		repository.NewRequisitionRepository(db),
		auditRepo,
		repository.NewTransactionManager(db),
	)
	return svc, NewAuditService(auditRepo), db
}

func item(name, price string) model.LineItem {
	return model.LineItem{Name: name, Price: decimal.RequireFromString(price)}
}
