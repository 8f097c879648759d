package handler

import (
	"context"
	"errors"
	"log"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"requisition/internal/model"
	"requisition/internal/service"

	"github.com/shopspring/decimal"
)

const doneKeyword = "done"

type RequisitionHandler struct {
	requisitionService service.RequisitionService
}

func NewRequisitionHandler(requisitionService service.RequisitionService) *RequisitionHandler {
	return &RequisitionHandler{requisitionService: requisitionService}
}

func (h *RequisitionHandler) RegisterRoutes(menu *Menu) {
	menu.Handle("1", "Create Requisition", h.CreateRequisition)
	menu.Handle("2", "Display Requisitions", h.DisplayRequisitions)
	menu.Handle("3", "Respond to Requisition", h.RespondToRequisition)
}

// CreateRequisition collects staff details and items, then stores the requisition
func (h *RequisitionHandler) CreateRequisition(ctx context.Context, c *Console) error {
	date, err := c.Prompt("Enter the date (MM/DD/YYYY): ")
	if err != nil {
		return err
	}
	staffID, err := c.Prompt("Enter the Staff ID: ")
	if err != nil {
		return err
	}
	staffName, err := c.Prompt("Enter the Staff Name: ")
	if err != nil {
		return err
	}

	items, err := collectLineItems(c)
	if err != nil {
		return err
	}

	c.Println("\nItems ordered:")
	for _, item := range items {
		c.Printf("%s: $%s\n", item.Name, item.Price.StringFixedBank(2))
	}

	requisition, err := h.requisitionService.CreateRequisition(ctx, service.CreateRequisitionRequest{
		Date:      date,
		StaffID:   staffID,
		StaffName: staffName,
		Items:     items,
	})
	if err != nil {
		return err
	}

	log.Printf("Requisition %d created with status %s", requisition.RequisitionID, requisition.Status)
	return nil
}

// collectLineItems reads item name/price pairs until "done". A bad price is
// asked again for the same item.
func collectLineItems(c *Console) ([]model.LineItem, error) {
	var items []model.LineItem
	for {
		name, err := c.Prompt("Enter the item name (or type 'done' to finish): ")
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(name, doneKeyword) {
			if len(items) == 0 {
				c.Println("No items entered. Please add items or type 'done'.")
				continue
			}
			return items, nil
		}

		price, err := promptPrice(c, name)
		if err != nil {
			return nil, err
		}
		items = append(items, model.LineItem{Name: name, Price: price})
	}
}

func promptPrice(c *Console, name string) (decimal.Decimal, error) {
	for {
		raw, err := c.Prompt("Enter the price of " + name + ": $")
		if err != nil {
			return decimal.Zero, err
		}
		price, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil || service.ValidatePrice(price) != nil {
			c.Println("Invalid price. Please enter a valid number.")
			continue
		}
		return price, nil
	}
}

// DisplayRequisitions prints every requisition in the order they were created
func (h *RequisitionHandler) DisplayRequisitions(ctx context.Context, c *Console) error {
	requisitions, err := h.requisitionService.ListRequisitions(ctx)
	if err != nil {
		return err
	}

	for _, r := range requisitions {
		c.Printf("\nDate: %s\n", r.Date)
		c.Printf("Requisition ID: %d\n", r.RequisitionID)
		c.Printf("Staff ID: %s\n", r.StaffID)
		c.Printf("Staff Name: %s\n", r.StaffName)
		c.Printf("Total: $%s\n", r.TotalValue.StringFixedBank(2))
		c.Printf("Status: %s\n", r.Status)
		c.Printf("Approval Reference Number: %s\n", r.DisplayReference())
	}
	return nil
}

// RespondToRequisition records a manager's decision on a pending requisition.
// Invalid input abandons the action; an unknown id is ignored.
func (h *RequisitionHandler) RespondToRequisition(ctx context.Context, c *Console) error {
	rawID, err := c.Prompt("Enter the Requisition ID to respond to: ")
	if err != nil {
		return err
	}
	requisitionID, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil {
		c.Println("Invalid input. Requisition ID must be a number.")
		return nil
	}

	rawStatus, err := c.Prompt("Enter the approval status (Approved/Not approved): ")
	if err != nil {
		return err
	}
	decision := capitalize(rawStatus)
	if decision != model.StatusApproved && decision != model.StatusNotApproved {
		c.Println("Invalid status. Please enter 'Approved' or 'Not approved'.")
		return nil
	}

	requisition, err := h.requisitionService.RespondToRequisition(ctx, requisitionID, decision)
	switch {
	case err == nil:
		log.Printf("Requisition %d marked %s", requisition.RequisitionID, requisition.Status)
		return nil
	case errors.Is(err, service.ErrRequisitionNotFound):
		log.Printf("Respond ignored: %v", err)
		return nil
	case errors.Is(err, service.ErrAlreadyResolved):
		c.Printf("Requisition %d has already been resolved.\n", requisitionID)
		return nil
	default:
		return err
	}
}

// capitalize upper-cases the first character and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	first, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(first)) + strings.ToLower(s[size:])
}
