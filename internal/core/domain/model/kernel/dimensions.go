package kernel

import (
	"errors"
	"fmt"

	"cargo/internal/pkg/errs"
)

// volumetricFactor converts cubic meters to kilograms for billing.
// A cubic meter of space is billed as 250 kg regardless of actual weight.
const volumetricFactor = 250.0

// Dimensions is a value object holding the measured weight and size of a
// parcel. Weight is in kilograms, lengths in centimeters.
type Dimensions struct {
	weight float64
	length float64
	width  float64
	height float64
}

// NewDimensions creates a Dimensions value after checking every component is
// strictly positive.
func NewDimensions(weight, length, width, height float64) (Dimensions, error) {
	d := Dimensions{weight: weight, length: length, width: width, height: height}
	if err := d.Validate(); err != nil {
		return Dimensions{}, err
	}
	return d, nil
}

// Weight returns the actual weight in kilograms.
func (d Dimensions) Weight() float64 { return d.weight }

// Length returns the length in centimeters.
func (d Dimensions) Length() float64 { return d.length }

// Width returns the width in centimeters.
func (d Dimensions) Width() float64 { return d.width }

// Height returns the height in centimeters.
func (d Dimensions) Height() float64 { return d.height }

// Validate returns an error unless every component is strictly positive.
func (d Dimensions) Validate() error {
	if d.weight <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weight", fmt.Errorf("%f is not greater than 0", d.weight))
	}
	if d.length <= 0 || d.width <= 0 || d.height <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("dimensions",
			errors.New("length, width and height must all be greater than 0"))
	}
	return nil
}

// IsZero reports whether the value was never set.
func (d Dimensions) IsZero() bool {
	return d == Dimensions{}
}

// IsEqual compares two dimension sets component-wise. Pieces with equal
// dimensions consolidate into the same shipment row.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d == other
}

// VolumetricWeight returns the billed weight of the occupied space:
// volume in cubic meters times the volumetric factor.
func (d Dimensions) VolumetricWeight() float64 {
	volumeM3 := (d.length / 100) * (d.width / 100) * (d.height / 100)
	return volumeM3 * volumetricFactor
}

// ChargeableWeight returns the weight an order is billed for: the greater of
// the actual and volumetric weights.
func (d Dimensions) ChargeableWeight() float64 {
	if v := d.VolumetricWeight(); v > d.weight {
		return v
	}
	return d.weight
}
