package protocol

import "testing"

func TestEncodeMotor(t *testing.T) {
	tests := []struct {
		output   int
		velocity int
		want     string
	}{
		{0, 50, "+105a"},
		{0, 100, "+155a"},
		{1, -100, "-155b"},
		{2, 1, "+056c"},
		{2, -1, "-056c"},
		{0, 0, "+000a"},
		{1, 0, "+000b"},
		{2, 0, "+000c"},
	}

	for _, tt := range tests {
		got := string(EncodeMotor(tt.output, tt.velocity))
		if got != tt.want {
			t.Errorf("EncodeMotor(%d, %d) = %q, want %q", tt.output, tt.velocity, got, tt.want)
		}
		if len(got) != 5 {
			t.Errorf("EncodeMotor(%d, %d) length = %d, want 5", tt.output, tt.velocity, len(got))
		}
	}
}

func TestEncodeStop(t *testing.T) {
	for output, want := range []string{"+000a", "+000b", "+000c"} {
		if got := string(EncodeStop(output)); got != want {
			t.Errorf("EncodeStop(%d) = %q, want %q", output, got, want)
		}
	}
}

func TestParseVoltage(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"3.251", 3.251, false},
		{"4.1", 4.1, false},
		{" 3.3 ", 3.3, false},
		{"3.251\x00\x00", 3.251, false},
		{"", 0, true},
		{"\x00", 0, true},
		{"volts", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseVoltage([]byte(tt.in))
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseVoltage(%q) expected error, got %v", tt.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVoltage(%q) error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseVoltage(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseAppearance(t *testing.T) {
	if got := ParseAppearance([]byte{0x03, 0xC0}); got != 960 {
		t.Errorf("ParseAppearance(0x03C0) = %d, want 960", got)
	}
	if got := ParseAppearance([]byte{0x00}); got != 0 {
		t.Errorf("ParseAppearance(0x00) = %d, want 0", got)
	}
	if got := ParseAppearance(nil); got != 0 {
		t.Errorf("ParseAppearance(nil) = %d, want 0", got)
	}
}
