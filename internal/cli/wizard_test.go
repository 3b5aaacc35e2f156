package cli

import "testing"

func TestValidateInt(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{in: "45"},
		{in: " 60 "},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
		{in: "4.5", wantErr: true},
	}
	for _, tt := range tests {
		err := validateInt(tt.in)
		if tt.wantErr && err == nil {
			t.Errorf("validateInt(%q) should fail", tt.in)
		}
		if !tt.wantErr && err != nil {
			t.Errorf("validateInt(%q): %v", tt.in, err)
		}
	}
}

func TestSplitHosts(t *testing.T) {
	got := splitHosts(" instagram.com , example.dev ,, ")
	if len(got) != 2 || got[0] != "instagram.com" || got[1] != "example.dev" {
		t.Fatalf("splitHosts wrong: %v", got)
	}
	if splitHosts("") != nil {
		t.Fatal("empty input should yield nil")
	}
}
