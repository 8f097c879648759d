package handler

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"requisition/internal/database"
	"requisition/internal/model"
	"requisition/internal/repository"
	"requisition/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, input string) (*Menu, service.RequisitionService, *bytes.Buffer) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.NewConnection(database.MemoryDSN(name), false)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
	})

	auditRepo := repository.NewAuditRepository(db)
	requisitionService := service.NewRequisitionService(
		repository.NewRequisitionRepository(db),
		auditRepo,
		repository.NewTransactionManager(db),
	)

	out := &bytes.Buffer{}
	menu := NewMenu(NewConsole(strings.NewReader(input), out))
	NewRequisitionHandler(requisitionService).RegisterRoutes(menu)
	NewStatisticsHandler(requisitionService, service.NewAuditService(auditRepo)).RegisterRoutes(menu)
	menu.HandleExit("5", "Exit")
	return menu, requisitionService, out
}

func lines(s ...string) string {
	return strings.Join(s, "\n") + "\n"
}

func TestCreateAndDisplayRequisition(t *testing.T) {
	menu, svc, out := newSession(t, lines(
		"1", "01/15/2024", "S1", "Sam Smith",
		"Pen", "2.50",
		"Paper", "5.00",
		"DONE",
		"2",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Choose an action:\n1. Create Requisition\n2. Display Requisitions\n3. Respond to Requisition\n4. View Statistics\n5. Exit\n> ")
	assert.Contains(t, text, "\nItems ordered:\nPen: $2.50\nPaper: $5.00\n")
	assert.Contains(t, text, "\nDate: 01/15/2024\nRequisition ID: 10001\nStaff ID: S1\nStaff Name: Sam Smith\nTotal: $7.50\nStatus: Approved\nApproval Reference Number: S1001\n")
	assert.Contains(t, text, "Exiting program...")

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Statistics{TotalCount: 1, ApprovedCount: 1}, stats)
}

func TestDoneWithoutItemsKeepsCollecting(t *testing.T) {
	menu, svc, out := newSession(t, lines(
		"1", "d", "S1", "n",
		"done",
		"Stapler", "12",
		"done",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	assert.Equal(t, 1, strings.Count(out.String(), "No items entered. Please add items or type 'done'."))
	listed, err := svc.ListRequisitions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "12.00", listed[0].TotalValue.StringFixed(2))
}

func TestInvalidPriceAsksAgainForSameItem(t *testing.T) {
	menu, svc, out := newSession(t, lines(
		"1", "d", "S1", "n",
		"Pen", "abc", "-4", "3",
		"done",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Equal(t, 2, strings.Count(text, "Invalid price. Please enter a valid number."))
	assert.Equal(t, 3, strings.Count(text, "Enter the price of Pen: $"))
	assert.Equal(t, 2, strings.Count(text, "Enter the item name (or type 'done' to finish): "))
	assert.Contains(t, text, "\nItems ordered:\nPen: $3.00\n")

	listed, err := svc.ListRequisitions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "3.00", listed[0].TotalValue.StringFixed(2))
}

func TestRespondNotApprovedAndStatistics(t *testing.T) {
	menu, _, out := newSession(t, lines(
		"1", "02/01/2024", "S7", "Kim", "Desk", "600.00", "done",
		"3", "10001", "not approved",
		"2",
		"4",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Status: Not approved\nApproval Reference Number: Not available\n")
	assert.Contains(t, text, lines(
		"\nDisplaying the Requisition Statistics",
		"The total number of requisitions submitted: 1",
		"The total number of approved requisitions: 0",
		"The total number of pending requisitions: 0",
		"The total number of not approved requisitions: 1",
	))
	assert.Contains(t, text, "\nRecent activity (2 of 2 entries)\n")
	assert.Contains(t, text, "REJECT_REQUISITION")
}

func TestRespondRejectsBadInput(t *testing.T) {
	menu, svc, out := newSession(t, lines(
		"1", "d", "S1", "n", "Server", "900", "done",
		"3", "ten",
		"3", "10001", "maybe",
		"3", "424242", "Approved",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Invalid input. Requisition ID must be a number.")
	assert.Contains(t, text, "Invalid status. Please enter 'Approved' or 'Not approved'.")
	assert.NotContains(t, text, "Error:")
	// Non-numeric id aborts before the status prompt.
	assert.Equal(t, 2, strings.Count(text, "Enter the approval status (Approved/Not approved): "))

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Statistics{TotalCount: 1, PendingCount: 1}, stats)
}

func TestRespondTwiceIsRefused(t *testing.T) {
	menu, svc, out := newSession(t, lines(
		"1", "d", "S1", "n", "Server", "900", "done",
		"3", "10001", "APPROVED",
		"3", "10001", "Not approved",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	assert.Contains(t, out.String(), "Requisition 10001 has already been resolved.")
	listed, err := svc.ListRequisitions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, listed[0].Status)
	assert.Equal(t, "S1001", listed[0].ApprovalReference)

	stats, err := svc.GetStatistics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.Statistics{TotalCount: 1, ApprovedCount: 1}, stats)
}

func TestInvalidActionAndEndOfInput(t *testing.T) {
	menu, _, out := newSession(t, lines("9", "", "6", "4"))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Equal(t, 3, strings.Count(text, "Invalid action. Please try again."))
	assert.Contains(t, text, "The total number of requisitions submitted: 0\n")
	assert.NotContains(t, text, "Recent activity")
	assert.NotContains(t, text, "Exiting program...")
}

func TestEndOfInputDuringCreate(t *testing.T) {
	menu, svc, _ := newSession(t, lines("1", "d", "S1", "n", "Pen"))

	require.NoError(t, menu.Run(context.Background()))

	listed, err := svc.ListRequisitions(context.Background())
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestCapitalize(t *testing.T) {
	tests := map[string]string{
		"approved":     "Approved",
		"NOT APPROVED": "Not approved",
		"not Approved": "Not approved",
		"":             "",
		"é":            "É",
	}
	for in, expected := range tests {
		assert.Equal(t, expected, capitalize(in), in)
	}
}

func TestVeryLongStaffNameIsAccepted(t *testing.T) {
	longName := strings.Repeat("x", 70*1024)
	menu, svc, out := newSession(t, lines(
		"1", "d", "S1", longName, "Pen", "1", "done",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	assert.Contains(t, out.String(), "Exiting program...")
	listed, err := svc.ListRequisitions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, longName, listed[0].StaffName)
}

func TestLastLineWithoutNewline(t *testing.T) {
	menu, _, out := newSession(t, "4\n5")

	require.NoError(t, menu.Run(context.Background()))

	assert.Contains(t, out.String(), "Exiting program...")
}

func TestHugePriceAsksAgain(t *testing.T) {
	menu, svc, out := newSession(t, lines(
		"1", "d", "S1", "n",
		"Pen", "1e200000000", "1e-200000000", "NaN", "Inf", "2",
		"done",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Equal(t, 4, strings.Count(text, "Invalid price. Please enter a valid number."))
	assert.Contains(t, text, "\nItems ordered:\nPen: $2.00\n")

	listed, err := svc.ListRequisitions(context.Background())
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "2.00", listed[0].TotalValue.StringFixed(2))
}

func TestTotalsRoundHalfToEven(t *testing.T) {
	menu, _, out := newSession(t, lines(
		"1", "d", "S1", "n", "Clip", "0.125", "done",
		"2",
		"5",
	))

	require.NoError(t, menu.Run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "Clip: $0.12\n")
	assert.Contains(t, text, "Total: $0.12\n")
}
