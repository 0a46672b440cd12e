package engine

import "testing"

func TestDuplicateKey(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1,"b":2}`, ""},
		{`{"a":1,"a":2}`, "/a"},
		{`{"a":{"b":1},"c":{"b":2}}`, ""},
		{`{"a":{"b":1,"b":2}}`, "/a/b"},
		{`{"a":[1,{"x":1},{"x":1,"x":2}]}`, "/a/2/x"},
		{`{"a":[],"b":{},"b":1}`, "/b"},
		{`[{"k":1},{"k":2,"k":3}]`, "/1/k"},
		{`"scalar"`, ""},
	}
	for _, c := range cases {
		got, err := DuplicateKey([]byte(c.in))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", c.in, err)
		}
		if got != c.want {
			t.Fatalf("%s: got %q want %q", c.in, got, c.want)
		}
	}
}

func TestDuplicateKey_Malformed(t *testing.T) {
	if _, err := DuplicateKey([]byte(`{"a":`)); err == nil {
		t.Fatalf("expected error")
	}
}
