package audit

import "testing"

func TestMarshalOptional(t *testing.T) {
	out, err := marshalOptional(nil)
	if err != nil || out != nil {
		t.Fatalf("nil should stay nil, got %q %v", out, err)
	}
	out, err = marshalOptional(map[string]string{"title": "Ship v2"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(out) != `{"title":"Ship v2"}` {
		t.Fatalf("unexpected json %s", out)
	}
	if _, err := marshalOptional(func() {}); err == nil {
		t.Fatal("expected error for unmarshalable value")
	}
}
