package commands

import (
	"reflect"
	"testing"
)

func TestParseIntList(t *testing.T) {
	tests := []struct {
		input    string
		expected []int
		wantErr  bool
	}{
		{"1,2,5", []int{1, 2, 5}, false},
		{"0-3", []int{0, 1, 2, 3}, false},
		{"1, 4-5 ,9", []int{1, 4, 5, 9}, false},
		{"7", []int{7}, false},
		{"", nil, true},
		{"5-2", nil, true},
		{"a", nil, true},
		{"1-x", nil, true},
		{"-3", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseIntList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("parseIntList(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.expected) {
				t.Errorf("parseIntList(%q) = %v, expected %v", tt.input, got, tt.expected)
			}
		})
	}
}
