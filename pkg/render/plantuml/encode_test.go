package plantuml

import (
	"strings"
	"testing"
)

func TestEncode64(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
	}{
		{"empty", nil, ""},
		{"single zero byte", []byte{0}, "0000"},
		{"one byte", []byte("A"), "GG00"},
		{"two bytes", []byte("AB"), "GK80"},
		{"three bytes", []byte("ABC"), "GK93"},
		{"four bytes", []byte("ABCA"), "GK93GG00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := encode64(tt.in); got != tt.want {
				t.Errorf("encode64(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	texts := []string{
		"",
		"@startuml\n@enduml\n",
		"@startuml\n skinparam componentStyle uml2\n\npackage \"Orders\" {}\n@enduml\n",
		"unicode: éü世界",
		strings.Repeat("package \"Service\" {}\n", 200),
	}

	for _, text := range texts {
		encoded, err := Encode(text)
		if err != nil {
			t.Fatalf("Encode(%q): %v", text, err)
		}
		decoded, err := Decode(encoded)
		if err != nil {
			t.Fatalf("Decode of %q: %v", text, err)
		}
		if decoded != text {
			t.Errorf("round trip changed text: got %q, want %q", decoded, text)
		}
	}
}

func TestEncodeUsesURLSafeAlphabet(t *testing.T) {
	encoded, err := Encode("@startuml\nA --> B\n@enduml\n")
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if encoded == "" {
		t.Fatal("Encode returned empty string")
	}
	for i := 0; i < len(encoded); i++ {
		if strings.IndexByte(encodeTable, encoded[i]) < 0 {
			t.Fatalf("character %q at offset %d is outside the alphabet", encoded[i], i)
		}
	}
}

func TestDecodeRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"bad length", "abc"},
		{"invalid character", "ab+="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Decode(tt.in); err == nil {
				t.Errorf("Decode(%q) should fail", tt.in)
			}
		})
	}
}
