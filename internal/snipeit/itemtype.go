package snipeit

import (
	"fmt"
	"strings"
)

// ItemType identifies the kind of inventory item a label targets. Values use
// the operator-facing keywords; the API path segment differs for assets.
type ItemType string

const (
	ItemAssets      ItemType = "assets"
	ItemAccessories ItemType = "accessories"
	ItemConsumables ItemType = "consumables"
	ItemComponents  ItemType = "components"
)

// ItemTypes returns every supported item type in a stable order.
func ItemTypes() []ItemType {
	return []ItemType{ItemAssets, ItemAccessories, ItemConsumables, ItemComponents}
}

// ParseItemType validates an operator-supplied item type keyword.
func ParseItemType(value string) (ItemType, error) {
	normalized := ItemType(strings.ToLower(strings.TrimSpace(value)))
	for _, known := range ItemTypes() {
		if normalized == known {
			return known, nil
		}
	}
	names := make([]string, 0, len(ItemTypes()))
	for _, known := range ItemTypes() {
		names = append(names, string(known))
	}
	return "", fmt.Errorf("item type %q must be one of: %s", value, strings.Join(names, ", "))
}

// APISegment returns the path segment the Snipe-IT API uses for this item
// type. The API entry point for assets is "hardware".
func (t ItemType) APISegment() string {
	if t == ItemAssets {
		return "hardware"
	}
	return string(t)
}

func (t ItemType) String() string {
	return string(t)
}
