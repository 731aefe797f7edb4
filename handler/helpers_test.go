package handler

import (
	"reflect"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  My 1st Post!  ", "my-1st-post"},
		{"already-a-slug", "already-a-slug"},
		{"---", ""},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a, b ,c", []string{"a", "b", "c"}},
		{"a\nb\r\nc", []string{"a", "b", "c"}},
		{"", nil},
		{" , ,\n", nil},
	}
	for _, tt := range tests {
		if got := splitList(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/posts/hello", "/posts/hello"},
		{"", "/"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
	}
	for _, tt := range tests {
		if got := safeRedirect(tt.in); got != tt.want {
			t.Errorf("safeRedirect(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
