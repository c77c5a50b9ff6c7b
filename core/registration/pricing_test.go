package registration

import (
	"testing"

	"github.com/chuodata/usajili/core/catalog"
	"github.com/chuodata/usajili/core/coupon"
)

func TestComputeFinalPrice(t *testing.T) {
	discounted := 399.0
	tests := []struct {
		name string
		crs  catalog.Course
		desc coupon.Descriptor
		want float64
	}{
		{
			name: "list price, no coupon",
			crs:  catalog.Course{Price: 450},
			want: 450,
		},
		{
			name: "sale price wins over list price",
			crs:  catalog.Course{Price: 450, DiscountPrice: &discounted},
			want: 399,
		},
		{
			name: "coupon applies on top of sale price",
			crs:  catalog.Course{Price: 450, DiscountPrice: &discounted},
			desc: coupon.Descriptor{Valid: true, Discount: 50},
			want: 349,
		},
		{
			name: "oversized discount goes negative",
			crs:  catalog.Course{Price: 30},
			desc: coupon.Descriptor{Valid: true, Discount: 100},
			want: -70,
		},
		{
			name: "zero-price course",
			crs:  catalog.Course{},
			want: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ComputeFinalPrice(tt.crs, tt.desc); got != tt.want {
				t.Errorf("ComputeFinalPrice() = %v; want %v", got, tt.want)
			}
		})
	}
}
