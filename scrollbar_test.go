package scrollview

import "testing"

func TestThumbSpan(t *testing.T) {
	tests := []struct {
		name      string
		track     int
		visible   int
		total     int
		offset    int
		wantStart int
		wantSize  int
	}{
		{"content fits", 10, 10, 5, 0, 0, 10},
		{"content equals viewport", 10, 10, 10, 0, 0, 10},
		{"top", 10, 10, 100, 0, 0, 1},
		{"bottom", 10, 10, 100, 90, 9, 1},
		{"middle", 10, 10, 20, 5, 2, 5},
		{"tiny thumb floors at one", 5, 1, 1000, 0, 0, 1},
		{"zero track", 0, 10, 100, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, size := thumbSpan(tt.track, tt.visible, tt.total, tt.offset)
			if start != tt.wantStart || size != tt.wantSize {
				t.Errorf("thumbSpan(%d, %d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.track, tt.visible, tt.total, tt.offset, start, size, tt.wantStart, tt.wantSize)
			}
		})
	}
}

func TestThumbStaysOnTrack(t *testing.T) {
	for offset := 0; offset <= 990; offset += 37 {
		start, size := thumbSpan(24, 10, 1000, offset)
		if start < 0 || start+size > 24 {
			t.Fatalf("offset %d: thumb [%d, %d) escapes track", offset, start, start+size)
		}
	}
}
