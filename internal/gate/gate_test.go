package gate

import (
	"errors"
	"testing"
)

var allActions = []Action{Create, Edit, Delete, ClearErrors, ToggleActive}

func TestForIsAllOrNothing(t *testing.T) {
	for _, scanning := range []bool{false, true} {
		caps := For(scanning)
		for _, action := range allActions {
			if got := caps.Allows(action); got == scanning {
				t.Fatalf("For(%v).Allows(%s) = %v, want %v", scanning, action, got, !scanning)
			}
		}
	}
}

func TestCheck(t *testing.T) {
	if err := Check(For(false), Delete); err != nil {
		t.Fatalf("Check() idle error = %v", err)
	}
	err := Check(For(true), Delete)
	if !errors.Is(err, ErrScanInProgress) {
		t.Fatalf("Check() scanning error = %v, want ErrScanInProgress", err)
	}
}

func TestUnknownActionIsDenied(t *testing.T) {
	if For(false).Allows(Action("rename")) {
		t.Fatal("Allows(rename) = true, want false")
	}
}

func TestRequiresConfirmation(t *testing.T) {
	want := map[Action]bool{Create: false, Edit: false, Delete: true, ClearErrors: true, ToggleActive: false}
	for action, expected := range want {
		if got := RequiresConfirmation(action); got != expected {
			t.Fatalf("RequiresConfirmation(%s) = %v, want %v", action, got, expected)
		}
	}
}
