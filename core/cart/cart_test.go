package cart

import (
	"errors"
	"testing"

	"beatwave/model"
)

func TestLicenses(t *testing.T) {
	ls := Licenses()
	if len(ls) != 4 {
		t.Fatalf("expected 4 tiers, got %d", len(ls))
	}
	wantPrices := map[model.LicenseType]float64{
		model.LicenseMP3:       20,
		model.LicenseWAV:       40,
		model.LicenseUnlimited: 80,
	}
	for _, l := range ls {
		if l.Type == model.LicenseExclusive {
			if !l.IsOffer() {
				t.Error("exclusive rights must be an offer")
			}
			continue
		}
		if l.Price == nil || *l.Price != wantPrices[l.Type] {
			t.Errorf("%s price = %v", l.Type, l.Price)
		}
	}

	ls[0].Features[0] = "changed"
	if Licenses()[0].Features[0] == "changed" {
		t.Fatal("Licenses must return a copy")
	}

	if _, err := LicenseFor("VINYL"); !errors.Is(err, ErrUnknownLicense) {
		t.Fatalf("LicenseFor(VINYL) error = %v", err)
	}
}

func TestLicensesAreCopies(t *testing.T) {
	ls := Licenses()
	*ls[0].Price = 1
	ls[0].Features[0] = "changed"

	mp3, err := LicenseFor(model.LicenseMP3)
	if err != nil {
		t.Fatal(err)
	}
	if *mp3.Price != 20 || mp3.Features[0] != "MP3 Untagged" {
		t.Fatalf("license table was modified through a copy: %+v", mp3)
	}

	var c Cart
	item, _, err := c.Add(model.Beat{ID: "1"}, model.LicenseWAV)
	if err != nil {
		t.Fatal(err)
	}
	*item.License.Price = 0
	if wav, _ := LicenseFor(model.LicenseWAV); *wav.Price != 40 {
		t.Fatalf("WAV price = %v after editing a cart item", *wav.Price)
	}
}

func TestCartAddRemoveTotal(t *testing.T) {
	var c Cart
	beat := model.Beat{ID: "1", Title: "Neon Nights"}

	item, added, err := c.Add(beat, model.LicenseMP3)
	if err != nil || !added {
		t.Fatalf("Add: added=%v err=%v", added, err)
	}
	if item.ID != "1-MP3" {
		t.Fatalf("item id = %q", item.ID)
	}
	if _, added, _ := c.Add(beat, model.LicenseMP3); added {
		t.Fatal("duplicate add must be a no-op")
	}
	if _, added, _ := c.Add(beat, model.LicenseWAV); !added {
		t.Fatal("different license is a new item")
	}
	if _, _, err := c.Add(beat, model.LicenseExclusive); !errors.Is(err, ErrOfferOnly) {
		t.Fatalf("exclusive add error = %v", err)
	}
	if _, _, err := c.Add(beat, "BOGUS"); !errors.Is(err, ErrUnknownLicense) {
		t.Fatalf("bogus add error = %v", err)
	}

	if c.Len() != 2 || c.Total() != 60 {
		t.Fatalf("len=%d total=%v", c.Len(), c.Total())
	}

	if err := c.Remove("1-MP3"); err != nil {
		t.Fatal(err)
	}
	if err := c.Remove("1-MP3"); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("second remove error = %v", err)
	}
	if items := c.Items(); len(items) != 1 || items[0].ID != "1-WAV" {
		t.Fatalf("items = %+v", items)
	}
	c.Clear()
	if c.Len() != 0 || c.Total() != 0 {
		t.Fatal("Clear should empty the cart")
	}
}

func TestCartTotalSkipsOffers(t *testing.T) {
	c := Cart{items: []model.CartItem{
		{ID: "1-UNLIMITED", License: model.License{Price: price(80)}},
		{ID: "1-EXCLUSIVE", License: model.License{Type: model.LicenseExclusive}},
	}}
	if c.Total() != 80 {
		t.Fatalf("total = %v, want 80", c.Total())
	}
}
