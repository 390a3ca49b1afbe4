package enums

import "fmt"

// PromotionRegion tags the sales region a promotion applies to.
type PromotionRegion string

const (
	PromotionRegionNationwide PromotionRegion = "nationwide"
	PromotionRegionNorth      PromotionRegion = "north"
	PromotionRegionCentral    PromotionRegion = "central"
	PromotionRegionSouth      PromotionRegion = "south"
)

var validPromotionRegions = []PromotionRegion{
	PromotionRegionNationwide,
	PromotionRegionNorth,
	PromotionRegionCentral,
	PromotionRegionSouth,
}

// String implements fmt.Stringer.
func (p PromotionRegion) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PromotionRegion.
func (p PromotionRegion) IsValid() bool {
	for _, candidate := range validPromotionRegions {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePromotionRegion converts raw input into a PromotionRegion.
func ParsePromotionRegion(value string) (PromotionRegion, error) {
	for _, candidate := range validPromotionRegions {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid promotion region %q", value)
}
