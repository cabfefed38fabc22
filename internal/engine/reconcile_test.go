package engine

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

func TestReconcileCents(t *testing.T) {
	tests := []struct {
		name   string
		exact  []string
		target int64
		want   []int64
	}{
		{
			name:   "already whole cents are untouched",
			exact:  []string{"100", "250", "50"},
			target: 400,
			want:   []int64{100, 250, 50},
		},
		{
			name:   "largest remainder takes the extra cent",
			exact:  []string{"1.5", "1.5", "1.0"},
			target: 4,
			want:   []int64{2, 1, 1},
		},
		{
			name:   "two cents land on the two largest remainders",
			exact:  []string{"2.6", "2.6", "2.6"},
			target: 8,
			want:   []int64{3, 3, 2},
		},
		{
			name:   "ties resolve by input order",
			exact:  []string{"3.335", "3.335", "3.33"},
			target: 10,
			want:   []int64{4, 3, 3},
		},
		{
			name:   "overshoot from division noise comes off the smallest remainder",
			exact:  []string{"2", "2"},
			target: 3,
			want:   []int64{2, 1},
		},
		{
			name:   "single recipient absorbs everything",
			exact:  []string{"9.999"},
			target: 10,
			want:   []int64{10},
		},
		{
			name:   "empty input",
			exact:  nil,
			target: 0,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exact := make([]decimal.Decimal, len(tt.exact))
			for i, s := range tt.exact {
				exact[i] = decimal.RequireFromString(s)
			}

			got := reconcileCents(exact, tt.target)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("reconcileCents() = %v, want %v", got, tt.want)
			}

			var sum int64
			for _, c := range got {
				sum += c
			}
			if len(got) > 0 && sum != tt.target {
				t.Errorf("reconciled cents sum to %d, want %d", sum, tt.target)
			}
		})
	}
}

func TestNormalizeWeights(t *testing.T) {
	items := []Item{
		{ID: "i1", UnitPrice: decimal.RequireFromString("10.00"), Quantity: 1},
		{ID: "i2", UnitPrice: decimal.RequireFromString("5.00"), Quantity: 1},
	}
	shares := []ItemShare{
		{ItemID: "i1", PersonID: "a", Weight: decimal.RequireFromString("3")},
		{ItemID: "i1", PersonID: "b", Weight: decimal.RequireFromString("1")},
	}

	fractions := normalizeWeights(items, shares)

	if len(fractions["i1"]) != 2 {
		t.Fatalf("i1 has %d fractions, want 2", len(fractions["i1"]))
	}
	if got := fractions["i1"][0].fraction; !got.Equal(decimal.RequireFromString("0.75")) {
		t.Errorf("a's fraction = %s, want 0.75", got)
	}
	if got := fractions["i1"][1].fraction; !got.Equal(decimal.RequireFromString("0.25")) {
		t.Errorf("b's fraction = %s, want 0.25", got)
	}
	if _, ok := fractions["i2"]; ok {
		t.Error("unshared item should have no fractions")
	}
}
