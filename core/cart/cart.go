// Package cart holds license tiers and the shopping cart.
package cart

import (
	"errors"
	"fmt"

	"beatwave/model"
)

var (
	// ErrUnknownLicense is returned for a license type that is not on offer.
	ErrUnknownLicense = errors.New("unknown license type")
	// ErrOfferOnly is returned when adding a license that must be negotiated.
	ErrOfferOnly = errors.New("license is negotiated, make an offer")
	// ErrItemNotFound is returned when removing an item that is not in the cart.
	ErrItemNotFound = errors.New("cart item not found")
)

// OfferContact is where exclusive-rights offers go.
const OfferContact = "offer@beatwave.com"

func price(v float64) *float64 { return &v }

var licenses = []model.License{
	{
		Type:     model.LicenseMP3,
		Name:     "Basic License",
		Price:    price(20),
		Features: []string{"MP3 Untagged", "Limited Streams (50k)", "1 Music Video", "Non-Profit Use"},
	},
	{
		Type:     model.LicenseWAV,
		Name:     "Premium License",
		Price:    price(40),
		Features: []string{"WAV + MP3 Untagged", "Max Streams (500k)", "2 Music Videos", "For Profit Live Performances"},
	},
	{
		Type:     model.LicenseUnlimited,
		Name:     "Unlimited License",
		Price:    price(80),
		Features: []string{"WAV + MP3 + Stems", "Unlimited Streams", "Unlimited Videos", "Radio Broadcasting"},
	},
	{
		Type:     model.LicenseExclusive,
		Name:     "Exclusive Rights",
		Features: []string{"Full Ownership", "Removed from Store", "Unlimited Commercial Use", "Contract Agreement"},
	},
}

// Licenses returns the license tiers in display order.
func Licenses() []model.License {
	out := make([]model.License, len(licenses))
	for i, l := range licenses {
		out[i] = l
		out[i].Features = append([]string(nil), l.Features...)
		if l.Price != nil {
			out[i].Price = price(*l.Price)
		}
	}
	return out
}

// LicenseFor looks up a license tier by type.
func LicenseFor(t model.LicenseType) (model.License, error) {
	for _, l := range Licenses() {
		if l.Type == t {
			return l, nil
		}
	}
	return model.License{}, fmt.Errorf("%w: %s", ErrUnknownLicense, t)
}

// ItemID builds the cart item identity for a beat/license pair.
func ItemID(beatID string, t model.LicenseType) string {
	return beatID + "-" + string(t)
}

// Cart is an ordered list of items without duplicates. It is not
// synchronized; session.AppState guards it.
type Cart struct {
	items []model.CartItem
}

// Items returns a copy of the cart contents in insertion order.
func (c *Cart) Items() []model.CartItem {
	return append([]model.CartItem(nil), c.items...)
}

// Len returns the number of items.
func (c *Cart) Len() int { return len(c.items) }

// Add puts beat under license into the cart. It reports whether a new item
// was added; adding an existing beat/license pair is a no-op.
func (c *Cart) Add(beat model.Beat, t model.LicenseType) (model.CartItem, bool, error) {
	license, err := LicenseFor(t)
	if err != nil {
		return model.CartItem{}, false, err
	}
	if license.IsOffer() {
		return model.CartItem{}, false, fmt.Errorf("%w: contact %s", ErrOfferOnly, OfferContact)
	}
	id := ItemID(beat.ID, t)
	for _, it := range c.items {
		if it.ID == id {
			return it, false, nil
		}
	}
	item := model.CartItem{ID: id, Beat: beat, License: license}
	c.items = append(c.items, item)
	return item, true, nil
}

// Remove deletes the item with the given id.
func (c *Cart) Remove(id string) error {
	for i, it := range c.items {
		if it.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrItemNotFound, id)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.items = nil
}

// Total sums fixed license prices; negotiated licenses contribute nothing.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.items {
		if it.License.Price != nil {
			total += *it.License.Price
		}
	}
	return total
}
