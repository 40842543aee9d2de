package git

import "testing"

func TestCommit_Summary(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    string
	}{
		{name: "SingleLine", message: "fix bug", want: "fix bug"},
		{name: "TrailingNewline", message: "fix bug\n", want: "fix bug"},
		{name: "MultiLine", message: "fix bug\n\ndetails here", want: "fix bug"},
		{name: "Empty", message: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Commit{Message: tt.message}.Summary()
			if got != tt.want {
				t.Fatalf("Summary() = %q, expected %q", got, tt.want)
			}
		})
	}
}

func TestHeadState_String(t *testing.T) {
	tests := []struct {
		name string
		head HeadState
		want string
	}{
		{name: "OnBranch", head: HeadState{Kind: HeadOnBranch, Branch: "main"}, want: "main"},
		{name: "Unborn", head: HeadState{Kind: HeadUnborn}, want: NoBranchSentinel},
		{name: "Detached", head: HeadState{Kind: HeadDetached}, want: NoBranchSentinel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.head.String(); got != tt.want {
				t.Fatalf("String() = %q, expected %q", got, tt.want)
			}
		})
	}
}
