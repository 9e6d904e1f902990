package catalog

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
)

func TestParseCents(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Cents
		wantErr error
	}{
		{in: "0", want: 0},
		{in: "699.99", want: 69999},
		{in: "1200", want: 120000},
		{in: "1200.0", want: 120000},
		{in: "0.5", want: 50},
		{in: " 12.34 ", want: 1234},
		{in: "99999999.99", want: 9999999999},
		{in: "", wantErr: ErrInvalidPrice},
		{in: "-1", wantErr: ErrNegativePrice},
		{in: "1.999", wantErr: ErrInvalidPrice},
		{in: "1.", wantErr: ErrInvalidPrice},
		{in: ".5", wantErr: ErrInvalidPrice},
		{in: "1e3", wantErr: ErrInvalidPrice},
		{in: "12a", wantErr: ErrInvalidPrice},
		{in: "+1", wantErr: ErrInvalidPrice},
		{in: "123456789", wantErr: ErrInvalidPrice},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCents(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseCents(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCents(%q)でエラーが発生: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseCents(%q) = %d, want %d", tt.in, got, tt.want)
			}
		})
	}
}

func TestFormatCents(t *testing.T) {
	t.Parallel()

	tests := map[int64]string{
		0:       "0.00",
		5:       "0.05",
		69999:   "699.99",
		120000:  "1200.00",
		-150:    "-1.50",
		1234567: "12345.67",
	}
	for in, want := range tests {
		if got := FormatCents(in); got != want {
			t.Errorf("FormatCents(%d) = %q, want %q", in, got, want)
		}
	}
	if got := Cents(69999).String(); got != "699.99" {
		t.Errorf("Cents.String() = %q, want %q", got, "699.99")
	}
}

func TestCentsUnmarshalJSON(t *testing.T) {
	t.Parallel()

	var v struct {
		Price *Cents `json:"price"`
	}

	for in, want := range map[string]Cents{
		`{"price": 699.99}`:   69999,
		`{"price": "699.99"}`: 69999,
		`{"price": 1000}`:     100000,
	} {
		v.Price = nil
		if err := json.Unmarshal([]byte(in), &v); err != nil {
			t.Fatalf("json.Unmarshal(%s)でエラーが発生: %v", in, err)
		}
		if v.Price == nil || *v.Price != want {
			t.Errorf("json.Unmarshal(%s) = %v, want %d", in, v.Price, want)
		}
	}

	v.Price = nil
	if err := json.Unmarshal([]byte(`{"price": null}`), &v); err != nil || v.Price != nil {
		t.Errorf("nullはnilのままであるべき: price=%v, err=%v", v.Price, err)
	}
	for _, in := range []string{`{"price": -1}`, `{"price": true}`, `{"price": 1.005}`} {
		if err := json.Unmarshal([]byte(in), &v); err == nil {
			t.Errorf("json.Unmarshal(%s)がエラーを返すべき", in)
		}
	}
}

func TestOrderCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		price    int64
		quantity int64
		want     int64
		wantErr  bool
	}{
		{name: "単価×数量", price: 100000, quantity: 3, want: 300000},
		{name: "単価0", price: 0, quantity: 5, want: 0},
		{name: "数量0はエラー", price: 100, quantity: 0, wantErr: true},
		{name: "負の単価はエラー", price: -1, quantity: 1, wantErr: true},
		{name: "桁あふれはエラー", price: math.MaxInt64 / 2, quantity: 3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := orderCost(tt.price, tt.quantity)
			if tt.wantErr {
				if err == nil {
					t.Errorf("orderCost(%d, %d)がエラーを返すべき", tt.price, tt.quantity)
				}
				return
			}
			if err != nil {
				t.Fatalf("orderCost()でエラーが発生: %v", err)
			}
			if got != tt.want {
				t.Errorf("orderCost(%d, %d) = %d, want %d", tt.price, tt.quantity, got, tt.want)
			}
		})
	}
}
