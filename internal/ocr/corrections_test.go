package ocr

import "testing"

func TestCorrectText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"letter O as zero in percent", "4O% ALC/VOL", "40% ALC/VOL"},
		{"letter l as one before digit", "AGED l2 YEARS", "AGED 12 YEARS"},
		{"letter l as one before period", "4l. PROOF", "41. PROOF"},
		{"leading letter l as one", "l.5 LITERS", "1.5 LITERS"},
		{"plain words untouched", "OLD FASHIONED label", "OLD FASHIONED label"},
		{"multiple fixes in one line", "4O% ALC/VOL AGED l2 YEARS", "40% ALC/VOL AGED 12 YEARS"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CorrectText(tt.in); got != tt.want {
				t.Errorf("CorrectText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
