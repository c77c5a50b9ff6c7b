package registration

import (
	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
)

// ComputeFinalPrice returns the payable amount: the course's sale price when
// one is set, otherwise its list price, minus the resolved coupon discount.
// The result is not floored at zero; a discount larger than the price yields
// a negative total.
// TODO: decide with product whether negative totals should clamp to zero.
func ComputeFinalPrice(crs catalog.Course, desc coupon.Descriptor) float64 {
	return crs.BasePrice() - desc.Discount
}
