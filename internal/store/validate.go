package store

import (
	"strings"

	"store-catalog/internal/models"

	"github.com/shopspring/decimal"
)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

func validateAmount(field string, v decimal.Decimal) error {
	if v.IsNegative() {
		return &ValidationError{Field: field, Reason: "must not be negative"}
	}
	return nil
}

func validateStock(stock int) error {
	if stock < 0 {
		return &ValidationError{Field: "stock", Reason: "must not be negative"}
	}
	return nil
}

func validateQuantity(quantity int) error {
	if quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	return nil
}

func validateRef(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func validateCustomerInput(in models.CustomerInput) error {
	return validateName(in.Name)
}

func validateProductInput(in models.ProductInput) error {
	if err := validateName(in.Name); err != nil {
		return err
	}
	if err := validateAmount("price", in.Price); err != nil {
		return err
	}
	return validateStock(in.Stock)
}

func validateOrderInput(in models.OrderInput) error {
	if err := validateRef("customer_id", in.CustomerID); err != nil {
		return err
	}
	if err := validateRef("product_id", in.ProductID); err != nil {
		return err
	}
	return validateQuantity(in.Quantity)
}

func validateCustomerPatch(p models.CustomerPatch) error {
	if p.Name != nil {
		return validateName(*p.Name)
	}
	return nil
}

func validateProductPatch(p models.ProductPatch) error {
	if p.Name != nil {
		if err := validateName(*p.Name); err != nil {
			return err
		}
	}
	if p.Price != nil {
		if err := validateAmount("price", *p.Price); err != nil {
			return err
		}
	}
	if p.Stock != nil {
		return validateStock(*p.Stock)
	}
	return nil
}

func validateOrderPatch(p models.OrderPatch) error {
	if p.CustomerID != nil {
		if err := validateRef("customer_id", *p.CustomerID); err != nil {
			return err
		}
	}
	if p.ProductID != nil {
		if err := validateRef("product_id", *p.ProductID); err != nil {
			return err
		}
	}
	if p.Quantity != nil {
		if err := validateQuantity(*p.Quantity); err != nil {
			return err
		}
	}
	if p.TotalAmount != nil {
		return validateAmount("total_amount", *p.TotalAmount)
	}
	return nil
}
