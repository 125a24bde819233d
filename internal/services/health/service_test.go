package health

import "testing"

func TestStatusIncludesRecipeCount(t *testing.T) {
	svc := NewService(func() int { return 8 })
	status := svc.Status()
	if status["ok"] != true {
		t.Fatalf("expected ok=true, got %v", status["ok"])
	}
	if status["recipes"] != 8 {
		t.Fatalf("expected recipes=8, got %v", status["recipes"])
	}
}

func TestStatusWithoutProbe(t *testing.T) {
	var svc *Service
	status := svc.Status()
	if _, ok := status["recipes"]; ok {
		t.Fatalf("expected no recipes key without a probe")
	}
}
