package handler

import (
	"context"

	"requisition/internal/service"
	"requisition/pkg/pagination"
)

// recentActivityLimit is how many audit entries follow the statistics.
const recentActivityLimit = 10

type StatisticsHandler struct {
	requisitionService service.RequisitionService
	auditService       service.AuditService
}

func NewStatisticsHandler(requisitionService service.RequisitionService, auditService service.AuditService) *StatisticsHandler {
	return &StatisticsHandler{requisitionService: requisitionService, auditService: auditService}
}

func (h *StatisticsHandler) RegisterRoutes(menu *Menu) {
	menu.Handle("4", "View Statistics", h.GetStatistics)
}

// GetStatistics prints the submitted total, the per-status counters and the
// latest audit entries
func (h *StatisticsHandler) GetStatistics(ctx context.Context, c *Console) error {
	stats, err := h.requisitionService.GetStatistics(ctx)
	if err != nil {
		return err
	}

	c.Println("\nDisplaying the Requisition Statistics")
	c.Printf("The total number of requisitions submitted: %d\n", stats.TotalCount)
	c.Printf("The total number of approved requisitions: %d\n", stats.ApprovedCount)
	c.Printf("The total number of pending requisitions: %d\n", stats.PendingCount)
	c.Printf("The total number of not approved requisitions: %d\n", stats.NotApprovedCount)

	return h.printRecentActivity(ctx, c)
}

func (h *StatisticsHandler) printRecentActivity(ctx context.Context, c *Console) error {
	logs, total, err := h.auditService.GetAuditLogs(ctx, pagination.DefaultPage, recentActivityLimit)
	if err != nil {
		return err
	}
	if total == 0 {
		return nil
	}

	c.Printf("\nRecent activity (%d of %d entries)\n", len(logs), total)
	for _, l := range logs {
		c.Printf("%s  %-26s %d  %s  %s\n", l.CreatedAt, l.Action, l.RequisitionID, l.StaffID, l.Details)
	}
	return nil
}
