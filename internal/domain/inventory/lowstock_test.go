package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intp(v int) *int { return &v }

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name         string
		availableQty *int
		threshold    int
		expected     bool
	}{
		{"below threshold", intp(5), 10, true},
		{"equal to threshold counts as low", intp(10), 10, true},
		{"above threshold", intp(15), 10, false},
		{"zero quantity zero threshold", intp(0), 0, true},
		{"unknown quantity never fires", nil, 10, false},
		{"negative threshold above", intp(0), -1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := &Item{
				SKU:          "A1",
				WarehouseID:  "W1",
				AvailableQty: tt.availableQty,
				Threshold:    tt.threshold,
			}
			assert.Equal(t, tt.expected, IsLowStock(item))
		})
	}
}
