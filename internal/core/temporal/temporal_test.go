package temporal

import "testing"

func TestNormalizeTimestamp(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2022-05-05", "2022-05-05T00:00:00Z"},
		{"2022-05-05T00:00:00Z", "2022-05-05T00:00:00Z"},
		{"2022-05-05T00:00:00+00:00", "2022-05-05T00:00:00Z"},
		{"2022-05-05T13:45:00+03:00", "2022-05-05T10:45:00Z"},
		{"", ""},
		{"garbageZ", "garbageZ"},
		{"garbage", "garbageZ"},
	}
	for _, c := range cases {
		if got := NormalizeTimestamp(c.in); got != c.want {
			t.Fatalf("NormalizeTimestamp(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestTerm(t *testing.T) {
	cases := []struct {
		start, end string
		want       string
	}{
		{"2022-07-26", "2024-09-23", "2022 Jul - 2024 Sep"},
		{"2022-07-26", "", "2022 Jul - Present"},
		{"", "2022-07-26", "Unknown"},
		{"", "", "Unknown"},
		{"2022-07-26T00:00:00Z", "2024-09-23T00:00:00Z", "2022 Jul - 2024 Sep"},
	}
	for _, c := range cases {
		if got := Term(c.start, c.end); got != c.want {
			t.Fatalf("Term(%q, %q) = %q, want %q", c.start, c.end, got, c.want)
		}
	}
}

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                     string
		termStart, termEnd       string
		intervalStart, intervalEnd string
		want                     bool
	}{
		{"presidency ends inside ministry", "2019-01-01", "2020-06-01", "2020-01-01", "2021-01-01", true},
		{"disjoint intervals", "2022-01-01", "2023-01-01", "2020-01-01", "2021-01-01", false},
		{"ongoing presidency started before ministry end", "2020-06-01", "", "2020-01-01", "2021-01-01", true},
		{"ministry ends exactly when presidency starts", "2021-01-01", "2022-01-01", "2020-01-01", "2021-01-01", false},
		{"presidency ends exactly when ministry starts", "2019-01-01", "2020-01-01", "2020-01-01", "2021-01-01", true},
		{"both ongoing", "2020-01-01", "", "2021-01-01", "", true},
		{"missing term start", "", "", "2020-01-01", "2021-01-01", false},
	}
	for _, c := range cases {
		got := Overlaps(c.termStart, c.termEnd, c.intervalStart, c.intervalEnd)
		if got != c.want {
			t.Fatalf("%s: Overlaps = %v, want %v", c.name, got, c.want)
		}
	}
}

func TestExtractYear(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"", 9999},
		{"2020-01-01T00:00:00Z", 2020},
		{"bad", 9999},
		{"1999-12-31", 1999},
	}
	for _, c := range cases {
		if got := ExtractYear(c.in); got != c.want {
			t.Fatalf("ExtractYear(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := []struct{ in, want string }{
		{"my nAme is?", "My Name Is"},
		{"hello_world-test", "Hello World Test"},
		{"", ""},
		{"population", "Population"},
		{"  spaced   out  ", "Spaced Out"},
	}
	for _, c := range cases {
		if got := TitleCase(c.in); got != c.want {
			t.Fatalf("TitleCase(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestStripYearSuffix(t *testing.T) {
	cases := []struct{ in, want string }{
		{"population-2020", "population"},
		{"population", "population"},
		{"population-202", "population-202"},
		{"census-2020-2021", "census-2020"},
	}
	for _, c := range cases {
		if got := StripYearSuffix(c.in); got != c.want {
			t.Fatalf("StripYearSuffix(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMatchScore(t *testing.T) {
	cases := []struct {
		query, text string
		want        float64
	}{
		{"health", "Health", 1.0},
		{"health", "Health Ministry", 0.8},
		{"health", "Department of Health", 0.6},
		{"health", "Education", 0},
		{"health", "", 0},
	}
	for _, c := range cases {
		if got := MatchScore(c.query, c.text); got != c.want {
			t.Fatalf("MatchScore(%q, %q) = %v, want %v", c.query, c.text, got, c.want)
		}
	}
}

func TestSameDate(t *testing.T) {
	if !SameDate("2022-05-05T00:00:00Z", "2022-05-05T23:00:00Z") {
		t.Fatal("same calendar date expected")
	}
	if SameDate("2022-05-05", "2022-05-06") {
		t.Fatal("different dates must not match")
	}
	if SameDate("", "") {
		t.Fatal("empty dates must not match")
	}
}
