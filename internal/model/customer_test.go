package model

import "testing"

func TestCustomerFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		c    Customer
		want string
	}{
		{Customer{FirstName: "Ana", FamilyName: "Silva"}, "Ana Silva"},
		{Customer{FamilyName: "Silva"}, "Silva"},
		{Customer{FirstName: "Ana"}, "Ana"},
	}
	for _, tt := range tests {
		if got := tt.c.FullName(); got != tt.want {
			t.Fatalf("FullName(%+v) = %q, want %q", tt.c, got, tt.want)
		}
	}
}
