package shipping

import (
	"errors"
	"fmt"
)

// ZoneType is the canonical zone discriminator. Older admin clients send
// `metro_station`; ParseZoneType folds that alias into TypeMetro.
type ZoneType string

const (
	TypeCommune     ZoneType = "commune"
	TypeRegion      ZoneType = "region"
	TypeMetro       ZoneType = "metro"
	TypePickupStore ZoneType = "pickup_store"
)

func ParseZoneType(raw string) (ZoneType, error) {
	switch raw {
	case string(TypeCommune):
		return TypeCommune, nil
	case string(TypeRegion):
		return TypeRegion, nil
	case string(TypeMetro), "metro_station":
		return TypeMetro, nil
	case string(TypePickupStore):
		return TypePickupStore, nil
	}
	return "", fmt.Errorf("unknown zone type %q", raw)
}

// Zone is one vendor-configured shipping rule. Which location fields are
// required depends on the type.
type Zone struct {
	ID            int      `json:"zoneId"`
	VendorID      int      `json:"vendorId"`
	Name          string   `json:"name"`
	Type          ZoneType `json:"type"`
	Commune       string   `json:"commune,omitempty"`
	Region        string   `json:"region,omitempty"`
	Station       string   `json:"station,omitempty"`
	Street        string   `json:"street,omitempty"`
	Cost          int      `json:"cost"`
	EstimatedDays int      `json:"estimatedDays"`
	Enabled       bool     `json:"enabled"`
	PickupAllowed bool     `json:"pickupAllowed"`
	Instructions  string   `json:"instructions,omitempty"`
}

var errMissingLocation = errors.New("missing location fields for zone type")

// Validate enforces the type-dependent required fields and the cost floor.
func (z Zone) Validate() error {
	if z.Cost < 0 {
		return errors.New("cost must be non-negative")
	}
	switch z.Type {
	case TypeCommune:
		if z.Commune == "" || z.Region == "" {
			return errMissingLocation
		}
	case TypeRegion:
		if z.Region == "" {
			return errMissingLocation
		}
	case TypeMetro:
		if z.Station == "" || z.Commune == "" {
			return errMissingLocation
		}
	case TypePickupStore:
		if z.Street == "" || z.Commune == "" || z.Region == "" {
			return errMissingLocation
		}
	default:
		return fmt.Errorf("unknown zone type %q", z.Type)
	}
	return nil
}

// IsPickup reports whether the zone hands goods over at the vendor's store.
func (z Zone) IsPickup() bool {
	return z.Type == TypePickupStore
}

// Matches reports whether the zone serves the given customer address. Pickup
// zones always match; customers can collect no matter where they live.
func (z Zone) Matches(commune, region string) bool {
	switch z.Type {
	case TypeCommune:
		return z.Commune == commune
	case TypeRegion:
		return z.Region == region
	case TypeMetro:
		return z.Commune == commune
	case TypePickupStore:
		return true
	}
	return false
}

// Option is the checkout-facing view of a matching zone.
type Option struct {
	ZoneID        int      `json:"zoneId"`
	Name          string   `json:"name"`
	Type          ZoneType `json:"type"`
	Cost          int      `json:"cost"`
	EstimatedDays int      `json:"estimatedDays"`
	Instructions  string   `json:"instructions,omitempty"`
	Pickup        bool     `json:"pickup"`
}

func (z Zone) option() Option {
	return Option{
		ZoneID:        z.ID,
		Name:          z.Name,
		Type:          z.Type,
		Cost:          z.Cost,
		EstimatedDays: z.EstimatedDays,
		Instructions:  z.Instructions,
		Pickup:        z.IsPickup(),
	}
}
