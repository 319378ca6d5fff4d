package core

import "testing"

func TestParseGameState(t *testing.T) {
	cases := []struct {
		in   string
		want GameState
		ok   bool
	}{
		{"ATTRACT", StateAttract, true},
		{"attract", StateAttract, true},
		{"0", StateAttract, true},
		{"GAME", StateGame, true},
		{"game", StateGame, true},
		{"1", StateGame, true},
		{"PAUSED", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseGameState(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseGameState(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestVec3Arithmetic(t *testing.T) {
	a := Vec3{X: 1, Y: 2, Z: 3}
	b := Vec3{X: 0.5, Y: -1, Z: 2}

	if got := a.Add(b); got != (Vec3{X: 1.5, Y: 1, Z: 5}) {
		t.Errorf("Add = %+v", got)
	}
	if got := a.Sub(b); got != (Vec3{X: 0.5, Y: 3, Z: 1}) {
		t.Errorf("Sub = %+v", got)
	}
	if got := b.Scale(2); got != (Vec3{X: 1, Y: -2, Z: 4}) {
		t.Errorf("Scale = %+v", got)
	}
}
