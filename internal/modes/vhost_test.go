package modes

import (
	"context"
	"testing"

	"github.com/maxvaer/netbuster/internal/scanner"
)

func TestVhostCandidates(t *testing.T) {
	wl := writeWordlist(t, "dev\nstaging\n")
	opts := baseOptions(wl)
	opts.Domain = "example.com"
	opts.IgnoreBody = []string{"default page"}

	v, err := NewVhost(opts)
	if err != nil {
		t.Fatalf("NewVhost: %v", err)
	}

	ch, err := v.Candidates(context.Background())
	if err != nil {
		t.Fatalf("Candidates: %v", err)
	}
	got := collect(t, ch)

	want := []string{"dev.example.com", "staging.example.com"}
	if len(got) != len(want) {
		t.Fatalf("expected %d candidates, got %d", len(want), len(got))
	}
	for i, c := range got {
		if c.Host != want[i] {
			t.Errorf("candidate %d: got host %s, want %s", i, c.Host, want[i])
		}
		if c.URL != opts.URL {
			t.Errorf("candidate %d: URL must stay the target, got %s", i, c.URL)
		}
		if c.Mode != scanner.ModeVhost {
			t.Errorf("candidate %d: wrong mode %v", i, c.Mode)
		}
	}
}

func TestVhostAcceptAndKey(t *testing.T) {
	wl := writeWordlist(t, "dev\n")
	opts := baseOptions(wl)
	opts.Domain = "example.com"
	opts.IgnoreBody = []string{"default page"}

	v, err := NewVhost(opts)
	if err != nil {
		t.Fatalf("NewVhost: %v", err)
	}

	if v.Accept(&scanner.Result{Host: "dev.example.com", Ignored: true}) {
		t.Error("ignored response must not be accepted")
	}
	res := &scanner.Result{Host: "dev.example.com", Ignored: false}
	if !v.Accept(res) {
		t.Error("distinct response must be accepted")
	}
	if v.Key(res) != "dev.example.com" {
		t.Errorf("unexpected key %q", v.Key(res))
	}
}
