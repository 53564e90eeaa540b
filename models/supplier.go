package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/procurement_backend/utils"
)

type Supplier struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone,omitempty"`
}

type NewSupplier struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"required,max=255"`
	Phone   string `json:"phone" validate:"omitempty,max=32"`
}

func (input *NewSupplier) validate(region string) error {
	input.Name = strings.TrimSpace(input.Name)
	input.Address = strings.TrimSpace(input.Address)
	input.Phone = strings.TrimSpace(input.Phone)
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	if input.Phone != "" {
		phone, err := utils.NormalizePhoneNumber(input.Phone, region)
		if err != nil {
			return fmt.Errorf("%w: phone: %v", utils.ErrInvalidInput, err)
		}
		input.Phone = phone
	}
	return nil
}

// AddSupplier registers a supplier with Purchasing.
func (s *Store) AddSupplier(ctx context.Context, input NewSupplier) (*Supplier, error) {
	if err := input.validate(s.phoneRegion); err != nil {
		return nil, err
	}

	var created Supplier
	err := s.Update(ctx, func(tx *Tx) error {
		created = Supplier{
			ID:      tx.NextNumber(SupplierSeries),
			Name:    input.Name,
			Address: input.Address,
			Phone:   input.Phone,
		}
		tx.st.suppliers = append(tx.st.suppliers, created)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *Store) Suppliers() []Supplier {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Supplier(nil), s.st.suppliers...)
}

func (s *Store) Supplier(id string) (*Supplier, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sup := range s.st.suppliers {
		if sup.ID == id {
			return &sup, nil
		}
	}
	return nil, fmt.Errorf("supplier %s: %w", id, utils.ErrorRecordNotFound)
}
