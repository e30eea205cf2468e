package paging

import "testing"

func TestClamp(t *testing.T) {
	tests := []struct {
		name                 string
		limit, offset        int
		wantLimit, wantOffset int
	}{
		{"in range", 50, 10, 50, 10},
		{"zero limit defaults", 0, 0, DefaultLimit, 0},
		{"negative limit defaults", -5, 0, DefaultLimit, 0},
		{"limit capped", 5000, 0, MaxLimit, 0},
		{"negative offset clamped", 10, -3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			limit, offset := Clamp(tt.limit, tt.offset)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Errorf("Clamp(%d, %d) = (%d, %d), want (%d, %d)",
					tt.limit, tt.offset, limit, offset, tt.wantLimit, tt.wantOffset)
			}
		})
	}
}
