package util

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		want  bool
	}{
		{name: "plain address", email: "user@example.com", want: true},
		{name: "plus tag", email: "user+tag@example.com", want: true},
		{name: "subdomain", email: "user@mail.example.co.uk", want: true},
		{name: "missing at", email: "userexample.com", want: false},
		{name: "missing tld", email: "user@example", want: false},
		{name: "spaces", email: "user @example.com", want: false},
		{name: "empty", email: "", want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateEmail(tt.email); got != tt.want {
				t.Errorf("ValidateEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		want     bool
	}{
		{name: "meets all rules", password: "Sup3rsecret", want: true},
		{name: "too short", password: "Ab1", want: false},
		{name: "no uppercase", password: "sup3rsecret", want: false},
		{name: "no lowercase", password: "SUP3RSECRET", want: false},
		{name: "no digit", password: "Supersecret", want: false},
		{name: "exactly eight", password: "Abcdef12", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidatePassword(tt.password); got != tt.want {
				t.Errorf("ValidatePassword(%q) = %v, want %v", tt.password, got, tt.want)
			}
		})
	}
}

func TestValidateName(t *testing.T) {
	if ValidateName("") {
		t.Error("empty name accepted")
	}
	if !ValidateName("A") {
		t.Error("single character name rejected")
	}
	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	if ValidateName(string(long)) {
		t.Error("101 character name accepted")
	}
}
