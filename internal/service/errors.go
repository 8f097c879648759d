package service

import "errors"

var (
	ErrRequisitionNotFound = errors.New("requisition not found")
	ErrAlreadyResolved     = errors.New("requisition is already resolved")
	ErrInvalidDecision     = errors.New("invalid approval decision")
	ErrNoLineItems         = errors.New("requisition needs at least one item")
	ErrNegativePrice       = errors.New("item price must not be negative")
	ErrPriceOutOfRange     = errors.New("item price is out of range")
)
