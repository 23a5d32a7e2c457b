package utils

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestIsEmptyOrContains(t *testing.T) {
	type testCase struct {
		tag      string
		slice    []string
		value    string
		expected bool
	}

	cases := []testCase{
		{"nil slice", nil, "s0001", true},
		{"value present", []string{"s0001", "s0002"}, "s0002", true},
		{"value missing", []string{"s0001"}, "s0002", false},
	}

	for _, c := range cases {
		t.Log(c.tag)
		if res := IsEmptyOrContains(c.slice, c.value); res != c.expected {
			t.Errorf("Got %v, wanted %v", res, c.expected)
		}
	}
}

func TestWithTrailingSeparator(t *testing.T) {
	sep := string(os.PathSeparator)
	cases := map[string]string{
		"data":       "data" + sep,
		"data" + sep: "data" + sep,
	}

	for input, expected := range cases {
		if res := WithTrailingSeparator(input); res != expected {
			t.Errorf("Got %q, wanted %q", res, expected)
		}
	}
}

func TestParseFITSTime(t *testing.T) {
	type testCase struct {
		input    string
		expected time.Time
	}

	cases := []testCase{
		{"2018-07-25T19:01:42.708Z", time.Date(2018, 7, 25, 19, 1, 42, 708000000, time.UTC)},
		{"2018-07-25T19:01:42.708", time.Date(2018, 7, 25, 19, 1, 42, 708000000, time.UTC)},
		{"2018-07-25T19:01:42", time.Date(2018, 7, 25, 19, 1, 42, 0, time.UTC)},
		{"2018-07-25", time.Date(2018, 7, 25, 0, 0, 0, 0, time.UTC)},
	}

	for _, c := range cases {
		t.Log("Testing timestamp:", c.input)

		res, err := ParseFITSTime(c.input)
		if err != nil {
			t.Fatal(err)
		}
		if !res.Equal(c.expected) {
			t.Errorf("Got %v, wanted %v", res, c.expected)
		}
	}

	if _, err := ParseFITSTime("yesterday"); err == nil {
		t.Error("Expected an error for an invalid timestamp")
	}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable([]string{"sector", "files"}, [][]string{{"s0001", "2"}, {"s0002"}}, []Alignment{AlignLeft, AlignRight})

	// Headers may be upper-cased by the style
	for _, s := range []string{"sector", "files", "s0001", "s0002"} {
		if !strings.Contains(strings.ToLower(out), s) {
			t.Errorf("Rendered table does not contain %q:\n%s", s, out)
		}
	}

	if RenderTable(nil, nil, nil) != "" {
		t.Error("Expected an empty string without headers")
	}
}
