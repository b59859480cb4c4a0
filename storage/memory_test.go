package storage

import (
	"context"
	"strings"
	"testing"
)

func TestPublicURL(t *testing.T) {
	cases := []struct {
		base, key, want string
	}{
		{"https://cdn.example.com", "snapshots/a.json", "https://cdn.example.com/snapshots/a.json"},
		{"https://cdn.example.com/backups", "/snapshots/a.json", "https://cdn.example.com/backups/snapshots/a.json"},
		{"https://cdn.example.com/backups/", "a.json", "https://cdn.example.com/backups/a.json"},
		{"", "a.json", ""},
		{"https://cdn.example.com", "", ""},
	}
	for _, tc := range cases {
		if got := publicURL(tc.base, tc.key); got != tc.want {
			t.Fatalf("publicURL(%q, %q) = %q, want %q", tc.base, tc.key, got, tc.want)
		}
	}
}

func TestMemoryUploaderListAndDelete(t *testing.T) {
	ctx := context.Background()
	u := NewMemoryUploader("https://cdn.example.com")

	for _, key := range []string{"snapshots/2/b.csv", "snapshots/1/a.json", "other/c.txt"} {
		res, err := u.Upload(ctx, key, "text/plain", strings.NewReader(key))
		if err != nil {
			t.Fatalf("upload %s: %v", key, err)
		}
		if res.Location != "https://cdn.example.com/"+key {
			t.Fatalf("location = %q", res.Location)
		}
	}

	listed, err := u.List(ctx, "snapshots/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 2 || listed[0].Key != "snapshots/1/a.json" || listed[1].Size != int64(len("snapshots/2/b.csv")) {
		t.Fatalf("listed = %+v", listed)
	}

	if err := u.Delete(ctx, "snapshots/1/a.json"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := u.Object("snapshots/1/a.json"); ok {
		t.Fatalf("deleted object still present")
	}
	if body, ok := u.Object("other/c.txt"); !ok || string(body) != "other/c.txt" {
		t.Fatalf("object = %q, %v", body, ok)
	}
}
