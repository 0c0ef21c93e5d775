package ids

import "testing"

func TestAllocator_ClaimVariablesReturnsContiguousBlocks(t *testing.T) {
	a := NewAllocator()

	first := a.ClaimVariables(3)
	if first != 0 {
		t.Fatalf("first claim = %d, want 0", first)
	}
	second := a.ClaimVariables(2)
	if second != 3 {
		t.Fatalf("second claim = %d, want 3", second)
	}
	if a.VariableCount() != 5 {
		t.Fatalf("VariableCount() = %d, want 5", a.VariableCount())
	}
}

func TestAllocator_ConstraintsIndependentOfVariables(t *testing.T) {
	a := NewAllocator()

	a.ClaimVariables(10)
	first := a.ClaimConstraints(4)
	if first != 0 {
		t.Fatalf("first constraint claim = %d, want 0 (independent counter)", first)
	}
	if a.ConstraintCount() != 4 {
		t.Fatalf("ConstraintCount() = %d, want 4", a.ConstraintCount())
	}
}

func TestAllocator_ZeroClaimReturnsCurrentCounterWithoutAdvancing(t *testing.T) {
	a := NewAllocator()
	a.ClaimVariables(5)

	id := a.ClaimVariables(0)
	if id != 5 {
		t.Fatalf("zero-length claim = %d, want 5", id)
	}
	if a.VariableCount() != 5 {
		t.Fatalf("VariableCount() = %d, want 5 (unchanged by zero-length claim)", a.VariableCount())
	}
}
