// Package commands contains the write operations of the system. Every
// handler follows the same shape: validate the command, create a unit of
// work, begin, defer rollback, run domain logic through the repositories,
// commit. Handlers depend on narrow role interfaces rather than the full
// unit of work so tests only mock what a handler actually touches.
package commands

import (
	"context"

	"cargo/internal/core/ports"
)

type (
	// TxManager handles the transaction lifecycle of a unit of work.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides the order repository of a unit of work.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// HistoryRepoFactory provides the order history repository.
	HistoryRepoFactory interface {
		OrderHistoryRepository() ports.OrderHistoryRepository
	}

	// PieceRepoFactory provides the piece repository.
	PieceRepoFactory interface {
		PieceRepository() ports.PieceRepository
	}

	// ShipmentRepoFactory provides the shipment repository.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// TransitRepoFactory provides the transit document repository.
	TransitRepoFactory interface {
		TransitRepository() ports.TransitRepository
	}

	// CourierRepoFactory provides the courier repository.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// CorrectionRepoFactory provides the correction request repository.
	CorrectionRepoFactory interface {
		CorrectionRepository() ports.CorrectionRepository
	}

	// HubRepoFactory provides the hub repository.
	HubRepoFactory interface {
		HubRepository() ports.HubRepository
	}

	// VehicleRepoFactory provides the vehicle repository.
	VehicleRepoFactory interface {
		VehicleRepository() ports.VehicleRepository
	}

	// IntakeUoW covers order creation: order, pieces, consolidation rows,
	// history, and the auto-assign courier lookup in one transaction.
	IntakeUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		PieceRepoFactory
		ShipmentRepoFactory
		CourierRepoFactory
	}

	// IntakeUoWFactory creates intake units of work.
	IntakeUoWFactory interface {
		Create() IntakeUoW
	}

	// OrderUoW covers order-only lifecycle operations (cancel, delete).
	OrderUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
	}

	// OrderUoWFactory creates order units of work.
	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// ReweighUoW covers the reweigh workflow: piece ledger, consolidation
	// rows, and the owning order.
	ReweighUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		PieceRepoFactory
		ShipmentRepoFactory
	}

	// ReweighUoWFactory creates reweigh units of work.
	ReweighUoWFactory interface {
		Create() ReweighUoW
	}

	// CorrectionUoW covers correction requests and, on approval, the same
	// surfaces the reweigh workflow touches.
	CorrectionUoW interface {
		TxManager
		OrderRepoFactory
		PieceRepoFactory
		ShipmentRepoFactory
		CorrectionRepoFactory
	}

	// CorrectionUoWFactory creates correction units of work.
	CorrectionUoWFactory interface {
		Create() CorrectionUoW
	}

	// TransitUoW covers transit document operations and the orders and
	// pieces they move.
	TransitUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		PieceRepoFactory
		TransitRepoFactory
		HubRepoFactory
		VehicleRepoFactory
	}

	// TransitUoWFactory creates transit units of work.
	TransitUoWFactory interface {
		Create() TransitUoW
	}

	// DeliveryUoW covers row-locked single-order transitions at the
	// delivery edge (bypass receive, start delivery, revert to waiting).
	DeliveryUoW interface {
		TxManager
		OrderRepoFactory
		HistoryRepoFactory
		PieceRepoFactory
		CourierRepoFactory
	}

	// DeliveryUoWFactory creates delivery units of work.
	DeliveryUoWFactory interface {
		Create() DeliveryUoW
	}

	// AssignUoW covers manual courier assignment.
	AssignUoW interface {
		TxManager
		OrderRepoFactory
		CourierRepoFactory
	}

	// AssignUoWFactory creates assignment units of work.
	AssignUoWFactory interface {
		Create() AssignUoW
	}
)
