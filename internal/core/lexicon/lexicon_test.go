package lexicon

import (
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestLoad(t *testing.T) {
	l, err := Load()
	if err != nil {
		t.Fatalf("Load(): %v", err)
	}
	if l.Version != 1 {
		t.Fatalf("version = %d", l.Version)
	}
	if len(l.Cliches) == 0 || len(l.Personal) == 0 || len(l.Emotional) == 0 || len(l.Details) == 0 {
		t.Fatalf("expected every marker list to be populated: %+v", l)
	}
	for _, g := range append(append(append([]Group{}, l.Cliches...), l.Personal...), l.Emotional...) {
		for _, term := range g.Terms {
			if !norm.NFD.IsNormalString(term) {
				t.Fatalf("term %q not stored in NFD", term)
			}
		}
	}
}

func TestCounts_English(t *testing.T) {
	l := MustLoad()

	if got := l.CountCliches("Furthermore, it works. Moreover it scales. furthermore!"); got != 3 {
		t.Fatalf("CountCliches = %d, want 3", got)
	}
	// whole-word: "i" must not match inside "this" or "it"
	if got := l.CountPersonal("this is it"); got != 0 {
		t.Fatalf("CountPersonal(no markers) = %d", got)
	}
	if got := l.CountPersonal("I think my dog likes me. In my experience it does."); got != 5 {
		// i, my, me, my, in my experience
		t.Fatalf("CountPersonal = %d, want 5", got)
	}
	if got := l.CountEmotional("She was so happy and proud."); got != 2 {
		t.Fatalf("CountEmotional = %d, want 2", got)
	}
	if got := l.CountDetails("In March 2019, for example, we moved. Specifically in 2020."); got != 5 {
		// march, 2019, for example, specifically, 2020
		t.Fatalf("CountDetails = %d, want 5", got)
	}
}

func TestCounts_KoreanNFD(t *testing.T) {
	l := MustLoad()
	text := norm.NFD.String("나는 2023년 5월 3일에 정말 행복했다. 또한 예를 들어 설명하자면 그렇다.")

	if got := l.CountPersonal(text); got != 1 {
		t.Fatalf("CountPersonal = %d, want 1", got)
	}
	if got := l.CountEmotional(text); got != 1 {
		t.Fatalf("CountEmotional = %d, want 1", got)
	}
	if got := l.CountCliches(text); got != 1 {
		t.Fatalf("CountCliches = %d, want 1", got)
	}
	// 2023 (year), 2023년, 5월, 3일, 예를 들어
	if got := l.CountDetails(text); got != 5 {
		t.Fatalf("CountDetails = %d, want 5", got)
	}
}

func TestCountCliches_KoreanSyllableBoundary(t *testing.T) {
	l := MustLoad()
	tests := []struct {
		text string
		want int
	}{
		{"게다가 비가 왔다.", 1},
		{"게다간 늦는다.", 0},    // 게다 + 간, the final ㄴ closes the last syllable
		{"게다간 게다가 왔다.", 1}, // a rejected match does not hide the next one
		{"나아가 보자.", 1},
		{"나아간 길.", 0},
		{"또한 또한", 2},
	}
	for _, tc := range tests {
		t.Run(tc.text, func(t *testing.T) {
			if got := l.CountCliches(norm.NFD.String(tc.text)); got != tc.want {
				t.Fatalf("CountCliches(%q) = %d, want %d", tc.text, got, tc.want)
			}
		})
	}
}

func TestCountClosed(t *testing.T) {
	term := norm.NFD.String("가")
	tests := map[string]int{
		"가":   1,
		"각":   0,
		"가각가": 2,
		"간가나": 1,
		"":    0,
	}
	for in, want := range tests {
		if got := countClosed(norm.NFD.String(in), term); got != want {
			t.Errorf("countClosed(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestParse_Errors(t *testing.T) {
	cases := map[string]string{
		"bad json": `{`,
		"version":  `{"version": 2}`,
		"mode":     `{"version": 1, "cliches": [{"lang": "en", "mode": "fuzzy", "terms": ["x"]}]}`,
		"pattern":  `{"version": 1, "details": [{"lang": "en", "pattern": "("}]}`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestParse_DedupAndLowercase(t *testing.T) {
	l, err := Parse([]byte(`{"version": 1, "cliches": [{"lang": "en", "mode": "substring", "terms": ["Moreover", " moreover ", ""]}]}`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(l.Cliches) != 1 || len(l.Cliches[0].Terms) != 1 || l.Cliches[0].Terms[0] != "moreover" {
		t.Fatalf("unexpected terms: %+v", l.Cliches)
	}
}

func TestCountSeq(t *testing.T) {
	toks := []string{"in", "my", "view", "in", "my", "experience"}
	if got := countSeq(toks, []string{"in", "my"}); got != 2 {
		t.Fatalf("countSeq = %d", got)
	}
	if got := countSeq(toks, []string{"experience", "again"}); got != 0 {
		t.Fatalf("countSeq tail = %d", got)
	}
}
