package service

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/poxpos/internal/apperr"
	"github.com/tuanvumaihuynh/poxpos/internal/gateway"
	"github.com/tuanvumaihuynh/poxpos/internal/model"
	"github.com/tuanvumaihuynh/poxpos/pkg/validator"
)

type UpsertSupplierParams struct {
	ID    *string `json:"id"`
	Name  string  `json:"name" validate:"required" msg:"Name is required."`
	Phone *string `json:"phone"`
	Email *string `json:"email"`
}

type DeleteSupplierParams struct {
	ID string `json:"id" validate:"required" msg:"Supplier ID is required."`
}

type SupplierService interface {
	UpsertSupplier(ctx context.Context, params UpsertSupplierParams) (string, error)
	DeleteSupplier(ctx context.Context, params DeleteSupplierParams) error
}

type supplierService struct {
	gw        gateway.Gateway
	validator validator.Validator
}

func NewSupplierService(gw gateway.Gateway, v validator.Validator) SupplierService {
	return &supplierService{
		gw:        gw,
		validator: v,
	}
}

func (s *supplierService) UpsertSupplier(ctx context.Context, params UpsertSupplierParams) (string, error) {
	params.Name = *trimmed(&params.Name)
	if err := validate(s.validator, params); err != nil {
		return "", err
	}

	supplier := model.Supplier{
		Name:  params.Name,
		Phone: params.Phone,
		Email: params.Email,
	}

	if id := optional(params.ID); id != nil {
		if err := s.gw.Update(ctx, model.TableSuppliers, supplier.Values(), gateway.Filter{"id": *id}); err != nil {
			return "", apperr.FromWrite(fmt.Errorf("gateway update supplier: %w", err))
		}
		return *id, nil
	}

	id, err := s.gw.Insert(ctx, model.TableSuppliers, supplier.Values())
	if err != nil {
		return "", apperr.FromWrite(fmt.Errorf("gateway insert supplier: %w", err))
	}

	return id, nil
}

func (s *supplierService) DeleteSupplier(ctx context.Context, params DeleteSupplierParams) error {
	if err := validate(s.validator, params); err != nil {
		return err
	}

	if err := s.gw.Delete(ctx, model.TableSuppliers, gateway.Filter{"id": params.ID}); err != nil {
		return apperr.FromWrite(fmt.Errorf("gateway delete supplier: %w", err))
	}

	return nil
}
