package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"requisition/internal/model"
	"requisition/internal/repository"
	"requisition/pkg/pagination"

	"gorm.io/gorm"
)

// FirstRequisitionID is the identifier handed out by the first allocation.
const FirstRequisitionID int64 = 10001

// --- DTOs ---

type CreateRequisitionRequest struct {
	Date      string
	StaffID   string
	StaffName string
	Items     []model.LineItem
}

// --- Interface ---

type RequisitionService interface {
	AllocateIdentifier() int64
	CreateRequisition(ctx context.Context, req CreateRequisitionRequest) (model.Requisition, error)
	RespondToRequisition(ctx context.Context, requisitionID int64, decision string) (model.Requisition, error)
	ListRequisitions(ctx context.Context) ([]model.Requisition, error)
	GetStatistics(ctx context.Context) (model.Statistics, error)
}

// requisitionService is the ledger. It owns the identifier sequence and the
// status counters; it is meant for a single caller and takes no locks.
type requisitionService struct {
	requisitionRepo repository.RequisitionRepository
	auditRepo       repository.AuditRepository
	txManager       repository.TransactionManager

	nextID           int64
	approvedCount    int
	pendingCount     int
	notApprovedCount int
}

func NewRequisitionService(
	requisitionRepo repository.RequisitionRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) RequisitionService {
	return &requisitionService{
		requisitionRepo: requisitionRepo,
		auditRepo:       auditRepo,
		txManager:       txManager,
		nextID:          FirstRequisitionID,
	}
}

// --- Implementation ---

// AllocateIdentifier returns the next unused requisition id. Ids are never
// handed out twice, even when the requisition that got one fails to save.
func (s *requisitionService) AllocateIdentifier() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *requisitionService) CreateRequisition(ctx context.Context, req CreateRequisitionRequest) (model.Requisition, error) {
	if len(req.Items) == 0 {
		return model.Requisition{}, ErrNoLineItems
	}
	for _, item := range req.Items {
		if err := ValidatePrice(item.Price); err != nil {
			return model.Requisition{}, fmt.Errorf("%w: %s", err, item.Name)
		}
	}

	requisitionID := s.AllocateIdentifier()
	total := SumLineItems(req.Items)
	status, reference := EvaluateApproval(total, req.StaffID, requisitionID)

	requisition := model.Requisition{
		RequisitionID:     requisitionID,
		Date:              req.Date,
		StaffID:           req.StaffID,
		StaffName:         req.StaffName,
		TotalValue:        total,
		Status:            status,
		ApprovalReference: reference,
	}
	if status == model.StatusApproved {
		now := time.Now()
		requisition.DecidedAt = &now
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if createErr := s.requisitionRepo.Create(txCtx, &requisition); createErr != nil {
			return fmt.Errorf("failed to create requisition: %w", createErr)
		}

		itemNames := make([]string, 0, len(req.Items))
		for _, item := range req.Items {
			itemNames = append(itemNames, item.Name)
		}
		if auditErr := s.writeAudit(txCtx, model.ActionCreateRequisition, requisition, map[string]interface{}{
			"items": itemNames,
			"total": total.StringFixedBank(2),
		}); auditErr != nil {
			return auditErr
		}

		if status == model.StatusApproved {
			return s.writeAudit(txCtx, model.ActionAutoApproveRequisition, requisition, map[string]interface{}{
				"approval_reference": reference,
			})
		}
		return nil
	})
	if err != nil {
		return model.Requisition{}, err
	}

	if status == model.StatusApproved {
		s.approvedCount++
	} else {
		s.pendingCount++
	}

	return requisition, nil
}

// RespondToRequisition resolves a pending requisition. Requisitions that are
// already Approved or Not approved are left alone and ErrAlreadyResolved is
// returned, so the counters always match the stored statuses.
func (s *requisitionService) RespondToRequisition(ctx context.Context, requisitionID int64, decision string) (model.Requisition, error) {
	if decision != model.StatusApproved && decision != model.StatusNotApproved {
		return model.Requisition{}, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	var requisition model.Requisition
	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		found, findErr := s.requisitionRepo.FindByID(txCtx, requisitionID)
		if findErr != nil {
			if errors.Is(findErr, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: %d", ErrRequisitionNotFound, requisitionID)
			}
			return fmt.Errorf("failed to load requisition: %w", findErr)
		}
		requisition = *found

		if requisition.Status != model.StatusPending {
			return fmt.Errorf("%w: %d is %s", ErrAlreadyResolved, requisitionID, requisition.Status)
		}

		now := time.Now()
		requisition.Status = decision
		requisition.DecidedAt = &now

		action := model.ActionApproveRequisition
		if decision == model.StatusApproved {
			requisition.ApprovalReference = ApprovalReference(requisition.StaffID, requisition.RequisitionID)
		} else {
			requisition.ApprovalReference = model.ReferenceNotAvailable
			action = model.ActionRejectRequisition
		}

		if saveErr := s.requisitionRepo.Update(txCtx, &requisition); saveErr != nil {
			return fmt.Errorf("failed to update requisition: %w", saveErr)
		}

		return s.writeAudit(txCtx, action, requisition, map[string]interface{}{
			"approval_reference": requisition.ApprovalReference,
		})
	})
	if err != nil {
		return model.Requisition{}, err
	}

	if decision == model.StatusApproved {
		s.approvedCount++
	} else {
		s.notApprovedCount++
	}
	s.pendingCount--

	return requisition, nil
}

// ListRequisitions returns every requisition in insertion order.
func (s *requisitionService) ListRequisitions(ctx context.Context) ([]model.Requisition, error) {
	result := make([]model.Requisition, 0)
	page := pagination.New(pagination.DefaultPage, pagination.MaxLimit)
	for {
		batch, err := s.requisitionRepo.List(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch requisitions: %w", err)
		}
		result = append(result, batch...)
		if len(batch) < page.Limit {
			return result, nil
		}
		page = page.Next()
	}
}

// GetStatistics reports the stored record count next to the maintained counters.
func (s *requisitionService) GetStatistics(ctx context.Context) (model.Statistics, error) {
	total, err := s.requisitionRepo.Count(ctx)
	if err != nil {
		return model.Statistics{}, fmt.Errorf("failed to count requisitions: %w", err)
	}

	return model.Statistics{
		TotalCount:       total,
		ApprovedCount:    s.approvedCount,
		PendingCount:     s.pendingCount,
		NotApprovedCount: s.notApprovedCount,
	}, nil
}

// --- Helpers ---

func (s *requisitionService) writeAudit(ctx context.Context, action string, r model.Requisition, details map[string]interface{}) error {
	details["status"] = r.Status
	payload, _ := json.Marshal(details)

	entry := model.AuditLog{
		Action:        action,
		RequisitionID: r.RequisitionID,
		StaffID:       r.StaffID,
		Details:       string(payload),
	}
	if err := s.auditRepo.Log(ctx, &entry); err != nil {
		return fmt.Errorf("failed to write audit log: %w", err)
	}
	return nil
}
