package domain

import "testing"

func TestProductKey(t *testing.T) {
	a := Product{Brand: "Acme", ProductName: "Widget", Timeline: []float64{10, 20}}
	b := Product{Brand: "Acme", ProductName: "Widget", Timeline: []float64{10, 20}}
	c := Product{Brand: "Acme", ProductName: "Widget", Timeline: []float64{30, 40}}

	if a.Key() != b.Key() {
		t.Errorf("identical products produced different keys")
	}
	if a.Key() == c.Key() {
		t.Errorf("different timelines produced the same key")
	}

	// A separator inside the brand must not collide with another product's
	// key, unlike the string-concatenation scheme this replaces.
	d := Product{Brand: "Acme-Widget", ProductName: "X", Timeline: []float64{10, 20}}
	e := Product{Brand: "Acme", ProductName: "Widget-X", Timeline: []float64{10, 20}}
	if d.Key() == e.Key() {
		t.Errorf("brand containing separator collided with another key")
	}
}

func TestProductActiveAt(t *testing.T) {
	p := Product{ProductName: "X", Timeline: []float64{10, 20}}

	tests := []struct {
		t    float64
		want bool
	}{
		{9.999, false},
		{10, true},
		{15, true},
		{20, true},
		{20.001, false},
	}

	for _, tt := range tests {
		if got := p.ActiveAt(tt.t); got != tt.want {
			t.Errorf("ActiveAt(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"$12.99", 12.99},
		{"12.99", 12.99},
		{"12,99 EUR", 12.99},
		{"about $5", 5},
		{"Not specified", 0},
		{"", 0},
		{"free", 0},
	}

	for _, tt := range tests {
		if got := ParsePrice(tt.in); got != tt.want {
			t.Errorf("ParsePrice(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestHasPrice(t *testing.T) {
	sentinels := []string{"", "Unknown", "not specified", "N/A", "  None  "}
	for _, s := range sentinels {
		p := Product{Price: s}
		if p.HasPrice() {
			t.Errorf("HasPrice() = true for sentinel %q", s)
		}
	}

	p := Product{Price: "$3.50"}
	if !p.HasPrice() {
		t.Errorf("HasPrice() = false for a real price")
	}
}
