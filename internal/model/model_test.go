package model

import "testing"

func TestWinnerSide(t *testing.T) {
	cases := []struct {
		in   Winner
		want Side
	}{
		{"Blue", SideBlue},
		{"BLUE", SideBlue},
		{"blue", SideBlue},
		{"Red", SideRed},
		{" Red side ", SideRed},
		{"RED SIDE", SideRed},
		{"", SideUnknown},
		{"Green", SideUnknown},
		{"Draw", SideUnknown},
	}
	for _, c := range cases {
		if got := c.in.Side(); got != c.want {
			t.Errorf("Winner(%q).Side() = %q, want %q", c.in, got, c.want)
		}
	}
}
