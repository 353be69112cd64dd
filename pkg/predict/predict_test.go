package predict

import (
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestPhraseTablePredict(t *testing.T) {
	pt := NewPhraseTable()
	err := pt.Load(strings.NewReader(`
# comment
ni 你
ni'hao 你好
hao 好
shi'jie 世界
shi 是
broken
`))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if pt.Len() != 5 {
		t.Fatalf("expected 5 phrases, got %d", pt.Len())
	}

	testCases := []struct {
		input       string
		expected    string
		description string
	}{
		{"ni'hao'shi'jie", "你好世界", "longest phrases win"},
		{"ni'hao", "你好", "exact phrase"},
		{"ni'shi", "你是", "single syllables"},
		{"hao'ni", "好你", "any order"},
		{"ni'zh", "", "uncovered abbreviation"},
		{"", "", "empty input"},
		{"nih", "", "no partial syllable matches"},
	}
	for _, tc := range testCases {
		if got := pt.Predict(tc.input); got != tc.expected {
			t.Errorf("%s: Predict(%q) = %q, expected %q", tc.description, tc.input, got, tc.expected)
		}
	}
}

func TestPhraseTableReplace(t *testing.T) {
	pt := NewPhraseTable()
	pt.Add("ni'hao", "你好")
	pt.Add("ni'hao", "拟好")
	if pt.Len() != 1 {
		t.Errorf("expected 1 phrase, got %d", pt.Len())
	}
	if got := pt.Predict("ni'hao"); got != "拟好" {
		t.Errorf("expected replacement, got %q", got)
	}
}

func TestNop(t *testing.T) {
	if Nop.Predict("ni'hao") != "" {
		t.Error("Nop should never predict")
	}
}
