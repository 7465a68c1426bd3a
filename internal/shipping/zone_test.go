package shipping

import "testing"

func TestParseZoneType(t *testing.T) {
	tests := []struct {
		raw  string
		want ZoneType
		ok   bool
	}{
		{"commune", TypeCommune, true},
		{"region", TypeRegion, true},
		{"metro", TypeMetro, true},
		{"metro_station", TypeMetro, true},
		{"pickup_store", TypePickupStore, true},
		{"custom_area", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, err := ParseZoneType(tt.raw)
		if tt.ok && err != nil {
			t.Fatalf("ParseZoneType(%q) failed: %v", tt.raw, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("ParseZoneType(%q) should fail", tt.raw)
		}
		if got != tt.want {
			t.Fatalf("ParseZoneType(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestZoneValidate(t *testing.T) {
	tests := []struct {
		name string
		zone Zone
		ok   bool
	}{
		{"commune complete", Zone{Type: TypeCommune, Commune: "Ñuñoa", Region: "Metropolitana", Cost: 3000}, true},
		{"commune missing region", Zone{Type: TypeCommune, Commune: "Ñuñoa"}, false},
		{"region complete", Zone{Type: TypeRegion, Region: "Valparaíso", Cost: 5000}, true},
		{"region missing region", Zone{Type: TypeRegion}, false},
		{"metro complete", Zone{Type: TypeMetro, Station: "Baquedano", Commune: "Providencia"}, true},
		{"metro missing station", Zone{Type: TypeMetro, Commune: "Providencia"}, false},
		{"pickup complete", Zone{Type: TypePickupStore, Street: "Av. Italia 1439", Commune: "Providencia", Region: "Metropolitana"}, true},
		{"pickup missing street", Zone{Type: TypePickupStore, Commune: "Providencia", Region: "Metropolitana"}, false},
		{"negative cost", Zone{Type: TypeRegion, Region: "Biobío", Cost: -1}, false},
		{"unknown type", Zone{Type: "custom_area", Commune: "Ñuñoa", Region: "Metropolitana"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.zone.Validate()
			if tt.ok && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestZoneMatches(t *testing.T) {
	commune := Zone{Type: TypeCommune, Commune: "Ñuñoa", Region: "Metropolitana"}
	if !commune.Matches("Ñuñoa", "Metropolitana") {
		t.Fatal("commune zone should match its own commune")
	}
	if commune.Matches("Providencia", "Metropolitana") {
		t.Fatal("commune zone should not match another commune")
	}

	region := Zone{Type: TypeRegion, Region: "Valparaíso"}
	if !region.Matches("Viña del Mar", "Valparaíso") {
		t.Fatal("region zone should match any commune inside the region")
	}
	if region.Matches("Ñuñoa", "Metropolitana") {
		t.Fatal("region zone should not match another region")
	}

	metro := Zone{Type: TypeMetro, Station: "Baquedano", Commune: "Providencia"}
	if !metro.Matches("Providencia", "Metropolitana") {
		t.Fatal("metro zone should match its commune")
	}

	pickup := Zone{Type: TypePickupStore, Street: "Av. Italia 1439", Commune: "Providencia", Region: "Metropolitana"}
	if !pickup.Matches("Arica", "Arica y Parinacota") {
		t.Fatal("pickup zone should match regardless of customer address")
	}
}
