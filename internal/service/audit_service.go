package service

import (
	"context"
	"fmt"

	"requisition/internal/repository"
	"requisition/pkg/pagination"
)

type AuditLogResponse struct {
	ID            string `json:"id"`
	Action        string `json:"action"`
	RequisitionID int64  `json:"requisition_id"`
	StaffID       string `json:"staff_id"`
	Details       string `json:"details"`
	CreatedAt     string `json:"created_at"`
}

type AuditService interface {
	GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error)
}

type auditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService instance
func NewAuditService(auditRepo repository.AuditRepository) AuditService {
	return &auditService{auditRepo: auditRepo}
}

// GetAuditLogs returns one page of the trail, newest entry first
func (s *auditService) GetAuditLogs(ctx context.Context, page, limit int) ([]AuditLogResponse, int64, error) {
	logs, total, err := s.auditRepo.List(ctx, pagination.New(page, limit))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch audit logs: %w", err)
	}

	res := make([]AuditLogResponse, 0, len(logs))
	for _, l := range logs {
		res = append(res, AuditLogResponse{
			ID:            l.ID.String(),
			Action:        l.Action,
			RequisitionID: l.RequisitionID,
			StaffID:       l.StaffID,
			Details:       l.Details,
			CreatedAt:     l.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	return res, total, nil
}
