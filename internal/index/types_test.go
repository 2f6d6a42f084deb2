package index

import "testing"

func TestExtractCodes(t *testing.T) {
	cases := []struct {
		text string
		want []string
	}{
		{"Symptoms consistent with 6A70 and 6B00.2, revisiting 6A70.", []string{"6A70", "6B00.2"}},
		{"No codes in this sentence.", nil},
		{"Edge 7A00 at end", []string{"7A00"}},
		{"lowercase 6a70 does not count", nil},
	}

	for _, c := range cases {
		got := ExtractCodes(c.text)
		if len(got) != len(c.want) {
			t.Fatalf("ExtractCodes(%q): expected %v, got %v", c.text, c.want, got)
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Fatalf("ExtractCodes(%q): expected %v, got %v", c.text, c.want, got)
			}
		}
	}
}

func TestContainsCode(t *testing.T) {
	if !ContainsCode("Generalised Anxiety Disorder 6B00") {
		t.Fatal("expected code to be detected")
	}
	if ContainsCode("just anxiety, no code") {
		t.Fatal("expected no code")
	}
}
