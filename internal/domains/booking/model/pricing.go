package model

import "fmt"

type PricingMode string

const (
	PricingModeFixed          PricingMode = "fixed"
	PricingModeDoorPercentage PricingMode = "door_percentage"
	PricingModeByAgreement    PricingMode = "by_agreement"
)

// Pricing holds exactly one pricing mode. Fee is set only for fixed and DoorPercentage
// only for door_percentage.
type Pricing struct {
	Mode           PricingMode
	Fee            *int64
	DoorPercentage *float64
}

func FixedFee(fee int64) Pricing {
	return Pricing{Mode: PricingModeFixed, Fee: &fee}
}

func DoorPercentage(percentage float64) Pricing {
	return Pricing{Mode: PricingModeDoorPercentage, DoorPercentage: &percentage}
}

func ByAgreement() Pricing {
	return Pricing{Mode: PricingModeByAgreement}
}

// NewPricing builds a pricing from request values, rejecting conflicting modes.
func NewPricing(mode string, fee *int64, doorPercentage *float64) (Pricing, error) {
	pricing := Pricing{Mode: PricingMode(mode), Fee: fee, DoorPercentage: doorPercentage}

	if pricing.Mode == "" {
		switch {
		case fee != nil && doorPercentage != nil:
			return Pricing{}, fmt.Errorf("%w: fixed fee and door percentage are mutually exclusive", ErrValidation)
		case fee != nil:
			pricing.Mode = PricingModeFixed
		case doorPercentage != nil:
			pricing.Mode = PricingModeDoorPercentage
		default:
			pricing.Mode = PricingModeByAgreement
		}
	}

	if err := pricing.Validate(); err != nil {
		return Pricing{}, err
	}

	return pricing, nil
}

func (p Pricing) Validate() error {
	switch p.Mode {
	case PricingModeFixed:
		if p.DoorPercentage != nil {
			return fmt.Errorf("%w: fixed pricing cannot carry a door percentage", ErrValidation)
		}

		if p.Fee == nil || *p.Fee < 0 {
			return fmt.Errorf("%w: fixed pricing requires a non-negative fee", ErrValidation)
		}
	case PricingModeDoorPercentage:
		if p.Fee != nil {
			return fmt.Errorf("%w: door percentage pricing cannot carry a fixed fee", ErrValidation)
		}

		if p.DoorPercentage == nil || *p.DoorPercentage <= 0 || *p.DoorPercentage > 100 {
			return fmt.Errorf("%w: door percentage must be within (0, 100]", ErrValidation)
		}
	case PricingModeByAgreement:
		if p.Fee != nil || p.DoorPercentage != nil {
			return fmt.Errorf("%w: pricing by agreement cannot carry amounts", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown pricing mode %q", ErrValidation, p.Mode)
	}

	return nil
}
