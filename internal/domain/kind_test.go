package domain

import (
	"encoding/json"
	"testing"
)

func TestKindText(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
	}{
		{"moonshine", KindMoonshine},
		{"rum", KindRum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.name {
				t.Fatalf("String: expected %q, got %q", tt.name, got)
			}
			if got := KindFromString(tt.name); got != tt.kind {
				t.Fatalf("KindFromString: expected %v, got %v", tt.kind, got)
			}

			data, err := json.Marshal(tt.kind)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			var back Kind
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal %s: %v", data, err)
			}
			if back != tt.kind {
				t.Fatalf("expected %v, got %v", tt.kind, back)
			}
		})
	}
}

func TestKindUnknown(t *testing.T) {
	if KindFromString("whiskey") != KindUnknown {
		t.Fatal("expected KindUnknown")
	}
	var k Kind
	if err := k.UnmarshalText([]byte("whiskey")); err == nil {
		t.Fatal("expected error for unknown kind")
	}
	if KindUnknown.String() != "unknown" {
		t.Fatalf("unexpected %q", KindUnknown.String())
	}
}
