package edition

import "testing"

func TestCheckEmptyConstraintAlwaysAdmits(t *testing.T) {
	ok, err := Check("1.0.0", "")
	if err != nil || !ok {
		t.Fatalf("expected empty constraint to admit, got ok=%v err=%v", ok, err)
	}
}

func TestCheckDefaultsToCurrentWhenModuleEditionEmpty(t *testing.T) {
	ok, err := Check("", ">=1.0.0, <2.0.0")
	if err != nil || !ok {
		t.Fatalf("expected empty module edition to default to Current and satisfy the range, got ok=%v err=%v", ok, err)
	}
}

func TestCheckSatisfiedConstraint(t *testing.T) {
	ok, err := Check("1.0.0", ">=1.0.0, <2.0.0")
	if err != nil || !ok {
		t.Fatalf("expected 1.0.0 to satisfy >=1.0.0,<2.0.0, got ok=%v err=%v", ok, err)
	}
}

func TestCheckUnsatisfiedConstraint(t *testing.T) {
	ok, err := Check("2.5.0", ">=1.0.0, <2.0.0")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ok {
		t.Fatalf("expected 2.5.0 to fail >=1.0.0,<2.0.0")
	}
}

func TestCheckInvalidConstraint(t *testing.T) {
	if _, err := Check("1.0.0", "not a constraint"); err == nil {
		t.Fatalf("expected an invalid constraint string to error")
	}
}

func TestCheckInvalidModuleEdition(t *testing.T) {
	if _, err := Check("not a version", ">=1.0.0"); err == nil {
		t.Fatalf("expected an invalid module edition to error")
	}
}
