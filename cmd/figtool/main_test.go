package main

import "testing"

func TestParseFrame(t *testing.T) {
	tests := []struct {
		arg     string
		want    float32
		wantErr bool
	}{
		{"15", 15, false},
		{"2.5", 2.5, false},
		{"-3", -3, false},
		{"NaN", 0, true},
		{"nan", 0, true},
		{"Inf", 0, true},
		{"-inf", 0, true},
		{"ten", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.arg, func(t *testing.T) {
			got, err := parseFrame(tt.arg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseFrame(%q) error = %v, wantErr %v", tt.arg, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("parseFrame(%q) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}
