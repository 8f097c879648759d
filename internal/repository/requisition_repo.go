package repository

import (
	"context"

	"requisition/internal/model"
	"requisition/pkg/pagination"

	"gorm.io/gorm"
)

type RequisitionRepository interface {
	Create(ctx context.Context, req *model.Requisition) error
	FindByID(ctx context.Context, id int64) (*model.Requisition, error)
	List(ctx context.Context, page pagination.Params) ([]model.Requisition, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, req *model.Requisition) error
}

type requisitionRepository struct {
	db *gorm.DB
}

func NewRequisitionRepository(db *gorm.DB) RequisitionRepository {
	return &requisitionRepository{db: db}
}

func (r *requisitionRepository) Create(ctx context.Context, req *model.Requisition) error {
	return GetDB(ctx, r.db).Create(req).Error
}

// FindByID returns gorm.ErrRecordNotFound when no requisition has the id.
func (r *requisitionRepository) FindByID(ctx context.Context, id int64) (*model.Requisition, error) {
	var req model.Requisition
	if err := GetDB(ctx, r.db).First(&req, "requisition_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns one page in insertion order. Identifiers only grow, so ordering
// by id is insertion order.
func (r *requisitionRepository) List(ctx context.Context, page pagination.Params) ([]model.Requisition, error) {
	var requisitions []model.Requisition
	if err := GetDB(ctx, r.db).
		Order("requisition_id ASC").
		Offset(page.Offset).
		Limit(page.Limit).
		Find(&requisitions).Error; err != nil {
		return nil, err
	}
	return requisitions, nil
}

func (r *requisitionRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := GetDB(ctx, r.db).Model(&model.Requisition{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (r *requisitionRepository) Update(ctx context.Context, req *model.Requisition) error {
	return GetDB(ctx, r.db).Save(req).Error
}
