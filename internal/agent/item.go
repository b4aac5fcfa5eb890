package agent

import (
	"strings"

	"github.com/vovakirdan/tui-shooter/internal/core"
)

// ItemType is the kind of pickup.
type ItemType int

const (
	ItemCoin ItemType = iota
	ItemHealth
	ItemAmmo
	ItemWeapon
)

// String returns the name used in config files and events.
func (t ItemType) String() string {
	switch t {
	case ItemHealth:
		return "health"
	case ItemAmmo:
		return "ammo"
	case ItemWeapon:
		return "weapon"
	default:
		return "coin"
	}
}

// ParseItemType maps a name to a type; ok is false for unknown names.
func ParseItemType(s string) (ItemType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "coin":
		return ItemCoin, true
	case "health":
		return ItemHealth, true
	case "ammo":
		return ItemAmmo, true
	case "weapon":
		return ItemWeapon, true
	default:
		return ItemCoin, false
	}
}

// ItemValues maps item types to their payload value.
type ItemValues map[ItemType]int

// DefaultItemValues returns the built-in values.
func DefaultItemValues() ItemValues {
	return ItemValues{ItemCoin: 10, ItemHealth: 20, ItemAmmo: 10, ItemWeapon: 1}
}

// ItemValuesFrom overlays named config values on the defaults.
func ItemValuesFrom(named map[string]int) ItemValues {
	v := DefaultItemValues()
	for name, value := range named {
		if t, ok := ParseItemType(name); ok {
			v[t] = value
		}
	}
	return v
}

// Pickup is what collecting an item yields.
type Pickup struct {
	Type  ItemType
	Value int
}

// Item is a collectible lying in the world.
type Item struct {
	body

	Type      ItemType
	Value     int
	collected bool
}

// Collected reports whether the item has been picked up.
func (it *Item) Collected() bool { return it.collected }

// Collect picks the item up. Only the first call succeeds.
func (it *Item) Collect() (Pickup, bool) {
	if it.collected {
		return Pickup{}, false
	}
	it.collected = true
	return Pickup{Type: it.Type, Value: it.Value}, true
}

// Cumulative thresholds of the second draw of a drop roll.
const (
	weaponThreshold = 0.10
	healthThreshold = 0.30
	ammoThreshold   = 0.50
)

// DropTable decides what, if anything, a killed enemy leaves behind.
type DropTable struct {
	Chance float64
}

// DefaultDropTable drops an item on 30% of kills.
func DefaultDropTable() DropTable {
	return DropTable{Chance: 0.30}
}

// Roll draws once for whether an item drops and, if it does, once more for
// its type: weapon 10%, health 20%, ammo 20%, coin 50%.
func (d DropTable) Roll(rng core.Rand) (ItemType, bool) {
	if rng.Float64() >= d.Chance {
		return 0, false
	}
	r := rng.Float64()
	switch {
	case r < weaponThreshold:
		return ItemWeapon, true
	case r < healthThreshold:
		return ItemHealth, true
	case r < ammoThreshold:
		return ItemAmmo, true
	default:
		return ItemCoin, true
	}
}
