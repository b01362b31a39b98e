package builder_test

import (
	"pagesmith/internal/builder"
	"strings"
	"testing"
)

func TestNormalizeTask(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{
			name: "lowercase slug",
			in:   "Captcha-Solver",
			out:  "captcha-solver",
			ok:   true,
		},
		{
			name: "trim whitespace",
			in:   "  markdown-editor ",
			out:  "markdown-editor",
			ok:   true,
		},
		{
			name: "dots underscores and digits allowed",
			in:   "task_42.v2",
			out:  "task_42.v2",
			ok:   true,
		},
		{
			name: "already normalized",
			in:   "captcha-solver",
			out:  "captcha-solver",
			ok:   true,
		},
		{
			name: "empty task returns error",
			in:   "   ",
			out:  "",
			ok:   false,
		},
		{
			name: "leading dash returns error",
			in:   "-task",
			out:  "",
			ok:   false,
		},
		{
			name: "slash returns error",
			in:   "owner/repo",
			out:  "",
			ok:   false,
		},
		{
			name: "space inside returns error",
			in:   "captcha solver",
			out:  "",
			ok:   false,
		},
		{
			name: "git suffix returns error",
			in:   "captcha.git",
			out:  "",
			ok:   false,
		},
		{
			name: "over 100 characters returns error",
			in:   strings.Repeat("a", 101),
			out:  "",
			ok:   false,
		},
	}

	for _, tc := range cases {
		got, err := builder.NormalizeTask(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("%s: unexpected error: %v", tc.name, err)
			}
			if got != tc.out {
				t.Errorf("%s: got %q, want %q", tc.name, got, tc.out)
			}
		} else if err == nil {
			t.Errorf("%s: expected error, got none (result %q)", tc.name, got)
		}
	}
}
