package pdf

import "testing"

func TestHeadingsFromTextDetection(t *testing.T) {
	text := "1. INTRODUCTION\n" + // 15 chars, below minimum length
		"EXPERIMENTAL SETUP AND RESULTS\n" + // 30-char all-caps line
		"2.1 Observations From The Initial Trial\n" + // numeric enumeration
		"## Implementation notes and caveats\n" + // markdown-style
		"a perfectly ordinary body sentence of medium length\n"

	headings := HeadingsFromText(text)
	if len(headings) != 3 {
		t.Fatalf("got %d headings, want 3: %+v", len(headings), headings)
	}

	if headings[0].Text != "EXPERIMENTAL SETUP AND RESULTS" {
		t.Errorf("first heading: got %q", headings[0].Text)
	}
	if headings[0].Level != 3 {
		t.Errorf("all-caps heading without periods: got level %d, want 3", headings[0].Level)
	}
}

func TestHeadingsFromTextRejectsShortAndLong(t *testing.T) {
	short := "1. INTRODUCTION" // rejected: too short
	long := "THIS HEADING GOES ON AND ON WELL PAST THE UPPER BOUND OF ONE HUNDRED AND TWENTY CHARACTERS WHICH MAKES IT A PARAGRAPH NOT A HEADING AT ALL"

	if got := HeadingsFromText(short); len(got) != 0 {
		t.Errorf("short line accepted: %+v", got)
	}
	if got := HeadingsFromText(long); len(got) != 0 {
		t.Errorf("overlong line accepted: %+v", got)
	}
}

func TestHeadingLevelFromPeriods(t *testing.T) {
	cases := []struct {
		line string
		want int
	}{
		{"EXPERIMENTAL SETUP AND RESULTS", 3},
		{"3. Architecture Of The Proposed System", 2},
		{"2.1 Observations From The Initial Trial", 2},
		{"2.1.4 Sensitivity Of The Main Parameters", 1},
	}
	for _, c := range cases {
		if got := headingLevel(c.line); got != c.want {
			t.Errorf("headingLevel(%q): got %d, want %d", c.line, got, c.want)
		}
	}
}

func TestIsUpperLine(t *testing.T) {
	if !isUpperLine("RESULTS AND DISCUSSION 2024") {
		t.Error("all-caps line with digits rejected")
	}
	if isUpperLine("Results And Discussion") {
		t.Error("mixed-case line accepted")
	}
	if isUpperLine("1234 5678") {
		t.Error("line without letters accepted")
	}
}
