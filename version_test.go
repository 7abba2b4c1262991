package sarf

import "testing"

func TestFullVersion(t *testing.T) {
	commit := GitCommit
	defer func() { GitCommit = commit }()

	GitCommit = "unknown"
	if got := FullVersion(); got != Version {
		t.Errorf("FullVersion() = %q, want %q", got, Version)
	}

	GitCommit = "0123456789abcdef"
	if got, want := FullVersion(), Version+"+0123456"; got != want {
		t.Errorf("FullVersion() = %q, want %q", got, want)
	}

	GitCommit = "abc"
	if got, want := FullVersion(), Version+"+abc"; got != want {
		t.Errorf("FullVersion() = %q, want %q", got, want)
	}
}

func TestUserAgent(t *testing.T) {
	if got, want := UserAgent(), "sarf/"+Version; got != want {
		t.Errorf("UserAgent() = %q, want %q", got, want)
	}
}
