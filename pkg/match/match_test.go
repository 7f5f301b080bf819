package match

import (
	"reflect"
	"strings"
	"testing"
	"unicode"
)

func TestMatchScores(t *testing.T) {
	testCases := []struct {
		candidate   string
		query       string
		matched     bool
		score       int
		positions   []int
		description string
	}{
		{"abc", "ac", true, 9, []int{0, 2}, "skip one letter"},
		{"fooBar", "fb", true, 16, []int{0, 3}, "camel hump"},
		{"foo.Bar", "fb", true, 15, []int{0, 4}, "letter after dot"},
		{"xaxb", "ab", true, -5, []int{1, 3}, "leading penalty"},
		{"zzzzza_b", "ab", true, -5, []int{5, 7}, "leading penalty is capped"},
		{"Len", "len", true, 20, []int{0, 1, 2}, "case-insensitive scan"},
		{"aXa_b", "ab", true, 18, []int{0, 4}, "weaker repeat does not replace"},
		{"xa_aXb", "ab", true, 3, []int{3, 5}, "better repeat replaces pending letter"},
		{"length", "len", true, 150, []int{0, 1, 2}, "substring shortcut"},
		{"len", "len", true, 300, []int{0, 1, 2}, "equal length doubles"},
		{"fmt.println", "rint", true, 200, []int{5, 6, 7, 8}, "inner substring"},
		{"abc", "", true, 0, nil, "empty query"},
		{"", "a", false, 0, nil, "empty candidate"},
		{"abc", "abd", false, 0, nil, "missing letter"},
		{"abc", "cb", false, 0, nil, "out of order"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			r := Match(tc.candidate, tc.query)
			if r.Matched != tc.matched {
				t.Fatalf("Input '%s'/'%s': expected matched=%v, got %v", tc.candidate, tc.query, tc.matched, r.Matched)
			}
			if !tc.matched {
				return
			}
			if r.Score != tc.score {
				t.Errorf("Input '%s'/'%s': expected score %d, got %d", tc.candidate, tc.query, tc.score, r.Score)
			}
			if len(tc.positions) == 0 && len(r.Positions) == 0 {
				return
			}
			if !reflect.DeepEqual(r.Positions, tc.positions) {
				t.Errorf("Input '%s'/'%s': expected positions %v, got %v", tc.candidate, tc.query, tc.positions, r.Positions)
			}
		})
	}
}

func TestSubsequenceSoundness(t *testing.T) {
	candidates := []string{
		"strings.to_lower", "strings.to_upper", "fmt.println", "fmt.printf",
		"os.read_entire_file", "runtime.DEFAULT_ALIGNMENT", "mem.Allocator_Mode",
		"a_a_a_b", "aaaa", "Name.Name.Name",
	}
	queries := []string{"a", "aa", "ab", "tolo", "rfil", "pr", "ST", "amo", "nn", "DEF", "re_f"}

	for _, c := range candidates {
		for _, q := range queries {
			r := Match(c, q)
			if !r.Matched {
				continue
			}
			cr := []rune(c)
			qr := []rune(q)
			if len(r.Positions) != len(qr) {
				t.Errorf("%q/%q: expected %d positions, got %v", c, q, len(qr), r.Positions)
				continue
			}
			for i, p := range r.Positions {
				if i > 0 && p <= r.Positions[i-1] {
					t.Errorf("%q/%q: positions not increasing: %v", c, q, r.Positions)
				}
				if unicode.ToLower(cr[p]) != unicode.ToLower(qr[i]) {
					t.Errorf("%q/%q: position %d is %q, want %q", c, q, p, cr[p], qr[i])
				}
			}
		}
	}
}

func TestSubstringDominatesScan(t *testing.T) {
	m := Default()
	pairs := [][2]string{
		{"fmt.println", "print"},
		{"strings.Builder", "Build"},
		{"a_b_c", "b_c"},
		{"DEFAULT", "DEF"},
		{"to_lower", "to_lower"},
	}
	for _, p := range pairs {
		r := m.Match(p[0], p[1])
		if !r.Substring {
			t.Fatalf("%q/%q: expected substring shortcut", p[0], p[1])
		}
		scanned := m.scan([]rune(p[0]), []rune(p[1]))
		if r.Score < scanned.Score {
			t.Errorf("%q/%q: substring score %d below scan score %d", p[0], p[1], r.Score, scanned.Score)
		}
	}
}

func TestSubstringIsCaseSensitive(t *testing.T) {
	r := Match("strings.Builder", "builder")
	if !r.Matched {
		t.Fatal("expected a case-insensitive scan match")
	}
	if r.Substring {
		t.Error("lowercase query must not take the substring shortcut")
	}
}

func TestMatchIdempotent(t *testing.T) {
	for i := 0; i < 3; i++ {
		a := Match("os.read_entire_file", "rfil")
		b := Match("os.read_entire_file", "rfil")
		if !reflect.DeepEqual(a, b) {
			t.Fatalf("expected identical results, got %+v and %+v", a, b)
		}
	}
}

func TestSeenDotBonus(t *testing.T) {
	w := DefaultWeights()
	w.SeenDotBonus = 10
	m := New(w)

	plain := Match("ab.cd", "ac")
	dotted := m.Match("ab.cd", "ac")
	if !plain.Matched || !dotted.Matched {
		t.Fatal("expected both to match")
	}
	if dotted.Score != plain.Score+w.SeenDotBonus {
		t.Errorf("expected seen-dot bonus of %d, got %d vs %d", w.SeenDotBonus, dotted.Score, plain.Score)
	}
}

func TestHighlight(t *testing.T) {
	testCases := []struct {
		input       string
		positions   []int
		substring   bool
		expected    string
		description string
	}{
		{"abc", []int{0, 2}, false, "<b>a</b>b<b>c</b>", "individual runes"},
		{"abc", []int{0, 1}, false, "<b>a</b><b>b</b>c", "adjacent runes are not merged"},
		{"length", []int{0, 1, 2}, true, "<b>len</b>gth", "substring span"},
		{"abc", nil, false, "abc", "no positions"},
		{"héllo", []int{1}, false, "h<b>é</b>llo", "rune indices"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := Highlight(tc.input, tc.positions, tc.substring, "<b>", "</b>")
			if got != tc.expected {
				t.Errorf("Input '%s': expected '%s', got '%s'", tc.input, tc.expected, got)
			}
		})
	}
}

func TestSegments(t *testing.T) {
	got := Segments("fooBar", []int{0, 3})
	want := []string{"", "f", "oo", "B", "ar"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
	if strings.Join(got, "") != "fooBar" {
		t.Errorf("segments do not rebuild input: %q", got)
	}
}

func BenchmarkMatchScan(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Match("os.read_entire_file_from_filename", "rfilf")
	}
}

func BenchmarkMatchSubstring(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Match("os.read_entire_file_from_filename", "entire")
	}
}

func TestScanScoresBelowSubstring(t *testing.T) {
	scan := Match("foo.Bar", "fb")
	if !scan.Matched || scan.Substring {
		t.Fatalf("expected a scan match, got %+v", scan)
	}
	sub := Match("foo.Bar", "Bar")
	if !sub.Substring {
		t.Fatalf("expected a substring match, got %+v", sub)
	}
	if scan.Score >= sub.Score {
		t.Errorf("scan score %d should be below substring score %d", scan.Score, sub.Score)
	}
}
