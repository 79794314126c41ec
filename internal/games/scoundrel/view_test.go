package scoundrel

import "testing"

func TestViewHints(t *testing.T) {
	s := newTestSession(t, nil, 17, Room{m(12), m(4), h(6), w(3)}, Deck{m(2)})
	s.player.Weapon = &Weapon{Power: 5, LastSlain: 8}
	s.selected = 1

	v := s.View()
	if v.Weapon == nil || !v.Weapon.Bounded || v.Weapon.LastSlain != 8 {
		t.Fatalf("Weapon = %+v", v.Weapon)
	}

	tests := []struct {
		index    int
		armed    bool
		damage   int
		heals    int
		selected bool
	}{
		{0, false, 12, 0, false},
		{1, true, 0, 0, true},
		{2, false, 0, 3, false},
		{3, false, 0, 0, false},
	}
	for _, tt := range tests {
		cv := v.Room[tt.index]
		if cv.Armed != tt.armed || cv.Damage != tt.damage || cv.Heals != tt.heals || cv.Selected != tt.selected {
			t.Errorf("room[%d] = %+v, expected armed %v damage %d heals %d selected %v",
				tt.index, cv, tt.armed, tt.damage, tt.heals, tt.selected)
		}
	}

	s.dungeon.PotionUsed = true
	if heals := s.View().Room[2].Heals; heals != 0 {
		t.Errorf("Heals after a potion = %d, expected 0", heals)
	}
}

func TestViewCanRun(t *testing.T) {
	s := newTestSession(t, nil, 20, Room{m(2), m(3)}, nil)
	if s.View().CanRun {
		t.Error("cannot run with an empty deck")
	}
	s.dungeon.Deck = Deck{m(4)}
	if !s.View().CanRun {
		t.Error("should be able to run")
	}
	s.dungeon.CanRun = false
	if s.View().CanRun {
		t.Error("run already spent")
	}
}
