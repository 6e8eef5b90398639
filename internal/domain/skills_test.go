package domain

import "testing"

func TestLevelForXP(t *testing.T) {
	tests := []struct {
		xp   float64
		want int
	}{
		{0, 1},
		{82, 1},
		{83, 2},
		{174, 2},
		{175, 3},
		{200000000, 99},
	}
	for _, tt := range tests {
		if got := LevelForXP(tt.xp); got != tt.want {
			t.Errorf("LevelForXP(%v) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestXPForLevelRoundTrip(t *testing.T) {
	for level := 1; level <= MaxLevel; level++ {
		if got := LevelForXP(XPForLevel(level)); got != level {
			t.Errorf("LevelForXP(XPForLevel(%d)) = %d", level, got)
		}
	}
}

func TestSkills_AddXP(t *testing.T) {
	s := DefaultSkills()
	if s.AddXP(SkillMining, 17.5) {
		t.Error("17.5 xp should not level up")
	}
	if s[SkillMining] != 17.5 {
		t.Errorf("mining xp = %v, want 17.5", s[SkillMining])
	}
	if !s.AddXP(SkillMining, 70) {
		t.Error("87.5 xp should reach level 2")
	}
}

func TestSkillsWireRoundTrip(t *testing.T) {
	in := map[string]float64{"mining": 100, "cooking": 5, "bogus": 9}
	s := SkillsFromWire(in)
	if s[SkillMining] != 100 || s[SkillCooking] != 5 {
		t.Errorf("unexpected skills %v", s)
	}
	if _, ok := s.ToWire()["bogus"]; ok {
		t.Error("unknown skill should be dropped")
	}
}
