package utils

import "testing"

func TestMath_Min(t *testing.T) {
	if got := Min(2, 7); got != 2 {
		t.Errorf("Min expected to return 2. Got %v", got)
	}
	if got := Min(7, 2); got != 2 {
		t.Errorf("Min expected to return 2. Got %v", got)
	}
	if got := Min(1.5, 1.25); got != 1.25 {
		t.Errorf("Min expected to return 1.25. Got %v", got)
	}
}

func TestMath_Max(t *testing.T) {
	if got := Max(2, 7); got != 7 {
		t.Errorf("Max expected to return 7. Got %v", got)
	}
	if got := Max(7, 2); got != 7 {
		t.Errorf("Max expected to return 7. Got %v", got)
	}
	if got := Max("abc", "abd"); got != "abd" {
		t.Errorf("Max expected to return abd. Got %v", got)
	}
}

func TestMath_Abs(t *testing.T) {
	if got := Abs(-4); got != 4 {
		t.Errorf("Abs expected to return 4. Got %v", got)
	}
	if got := Abs(4); got != 4 {
		t.Errorf("Abs expected to return 4. Got %v", got)
	}
	if got := Abs(-2.5); got != 2.5 {
		t.Errorf("Abs expected to return 2.5. Got %v", got)
	}
}
