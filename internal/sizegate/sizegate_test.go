package sizegate

import "testing"

func TestEvaluatePass(t *testing.T) {
	result := Evaluate(1000, 800, 0.9)
	if !result.Pass {
		t.Fatalf("expected pass, got %+v", result)
	}
	if result.SavedBytes != 200 {
		t.Fatalf("unexpected saved bytes: %d", result.SavedBytes)
	}
	if result.SizeRatio != 0.8 {
		t.Fatalf("unexpected ratio: %v", result.SizeRatio)
	}
}

func TestEvaluateFail(t *testing.T) {
	result := Evaluate(1000, 950, 0.9)
	if result.Pass {
		t.Fatalf("expected fail, got %+v", result)
	}
	if result.Reason == "" {
		t.Fatal("expected a reason for the failed gate")
	}
}

func TestEvaluateBoundaryIsExclusive(t *testing.T) {
	result := Evaluate(1000, 900, 0.9)
	if result.Pass {
		t.Fatal("expected equality at threshold to fail (strict less-than)")
	}
}

func TestEvaluateZeroOriginal(t *testing.T) {
	result := Evaluate(0, 100, 0.9)
	if result.Pass {
		t.Fatal("expected fail when original size is unavailable")
	}
}
