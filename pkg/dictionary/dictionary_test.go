package dictionary

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bastiangx/shuangpin/pkg/predict"
	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/store"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

var testScheme = scheme.NewXiaohe(scheme.DefaultSyllables(), map[string]string{
	"你": "rx",
	"好": "nv",
	"拟": "ty",
	"泥": "sn",
})

var testOracle = predict.Func(func(quanpin string) string {
	if quanpin == "ni'hao'shi" {
		return "你好是"
	}
	return ""
})

func newTestDictionary(t *testing.T) (*Dictionary, *store.Table) {
	t.Helper()
	table, err := store.Open("bolt", filepath.Join(t.TempDir(), "dict.db"))
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { table.Close() })

	seed := []struct {
		key, word string
		weight    int
	}{
		{"ni", "你", 100},
		{"ni", "泥", 50},
		{"nihc", "你好", 50},
		{"nihf", "你很", 20},
		{"nihc", "拟好", 10},
		{"nimf", "你们", 90},
		{"hdbu", "还不", 5},
		{"hwbu", "黑布", 8},
		{"nihcba", "你好吧", 30},
		{"nihdbu", "你还不", 20},
		{"nlhcba", "娘好吧", 99},
	}
	for _, s := range seed {
		abbr := scheme.Abbreviation(s.key)
		rec := store.Record{Key: s.key, Abbr: abbr, Word: s.word, Weight: s.weight}
		if err := table.Insert(store.Partition(s.key, len(abbr), store.DefaultOverflowLength), rec); err != nil {
			t.Fatalf("seed %v: %v", s, err)
		}
	}
	return New(testScheme, table, testOracle, DefaultOptions()), table
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestLookup(t *testing.T) {
	d, _ := newTestDictionary(t)

	testCases := []struct {
		seq         string
		expected    []string
		description string
	}{
		{"", nil, "empty input"},
		{"nihc", []string{"你好", "拟好"}, "full syllables"},
		{"hb", []string{"黑布", "还不"}, "abbreviations only"},
		{"nih", []string{"你好", "你很", "拟好"}, "one abbreviation widens to a key range"},
		{"nihb", []string{"你好吧", "你还不"}, "several abbreviations filtered by shape"},
		{"uiuu", nil, "no match"},
	}
	for _, tc := range testCases {
		seg := testScheme.Segment(tc.seq)
		got := word.Words(d.Lookup(tc.seq, seg))
		if !equal(got, tc.expected) {
			t.Errorf("%s: Lookup(%q, %q) = %v, expected %v", tc.description, tc.seq, seg, got, tc.expected)
		}
	}
}

func TestLookupSingleLetter(t *testing.T) {
	d, table := newTestDictionary(t)
	table.Close()

	for c := byte('a'); c <= 'z'; c++ {
		seq := string(c)
		items := d.Lookup(seq, seq)
		if len(items) != len(singleLetter[c]) {
			t.Fatalf("Lookup(%q) returned %d items, expected %d", seq, len(items), len(singleLetter[c]))
		}
		for i, it := range items {
			if it.Key != seq || it.Weight != 1 || it.Word != singleLetter[c][i] {
				t.Errorf("Lookup(%q)[%d] = %+v", seq, i, it)
			}
		}
	}
	if got := word.Words(d.LookupSeries("y", "y")); got[0] != "一" {
		t.Errorf("LookupSeries(y) should use the letter table, got %v", got)
	}
}

func TestLookupStoreDown(t *testing.T) {
	d, table := newTestDictionary(t)
	table.Close()

	if items := d.Lookup("nihc", "ni'hc"); len(items) != 0 {
		t.Errorf("closed store should yield no candidates, got %v", word.Words(items))
	}
	if err := d.CreateWord("nihc", "拟号"); err == nil {
		t.Error("closed store should fail writes")
	}
}

func TestLookupSeries(t *testing.T) {
	d, _ := newTestDictionary(t)

	items := d.LookupSeries("nihcui", "ni'hc'ui")
	got := word.Words(items)
	expected := []string{"你好是", "你好", "拟好", "你", "泥"}
	if !equal(got, expected) {
		t.Fatalf("LookupSeries = %v, expected %v", got, expected)
	}
	if items[0].Key != "nihcui" || items[0].Weight != 1 {
		t.Errorf("oracle item = %+v", items[0])
	}

	// an exact match suppresses the oracle
	got = word.Words(d.LookupSeries("nihc", "ni'hc"))
	expected = []string{"你好", "拟好", "你", "泥"}
	if !equal(got, expected) {
		t.Errorf("LookupSeries(nihc) = %v, expected %v", got, expected)
	}
}

func TestLookupWithHelpCodes(t *testing.T) {
	d, _ := newTestDictionary(t)

	got := word.Words(d.LookupWithHelpCodes("nihc", "ni'hc", "nihcrn", "rn"))
	if !equal(got, []string{"你好"}) {
		t.Errorf("double code = %v", got)
	}

	got = word.Words(d.LookupWithHelpCodes("nihc", "ni'hc", "nihcn", "n"))
	expected := []string{
		"你好", "拟好", "泥", // last character matches
		"你好", "拟好", "你", "泥", // series of nihcn
		"你", // the rest
	}
	if !equal(got, expected) {
		t.Errorf("single code = %v, expected %v", got, expected)
	}

	// cached under the original sequence
	stats := d.Stats()
	if stats["singleCodeEntries"] != 1 || stats["doubleCodeEntries"] != 1 {
		t.Errorf("unexpected cache stats %v", stats)
	}
	again := word.Words(d.LookupWithHelpCodes("nihc", "ni'hc", "nihcn", "n"))
	if !equal(again, expected) {
		t.Errorf("cached single code = %v", again)
	}
	if d.Stats()["singleCodeHits"] != 1 {
		t.Errorf("expected a single-code cache hit")
	}
}

func TestCreateWordInvalidatesCaches(t *testing.T) {
	d, _ := newTestDictionary(t)

	before := word.Words(d.Lookup("nihc", "ni'hc"))
	d.LookupSeries("nihc", "ni'hc")
	d.LookupWithHelpCodes("nihc", "ni'hc", "nihcn", "n")
	if len(before) != 2 {
		t.Fatalf("unexpected seed state %v", before)
	}

	if err := d.CreateWord("nihc", "拟号"); err != nil {
		t.Fatalf("CreateWord: %v", err)
	}
	stats := d.Stats()
	for _, name := range []string{"plain", "singleCode", "doubleCode", "series"} {
		if stats[name+"Entries"] != 0 {
			t.Errorf("%s cache not cleared: %v", name, stats)
		}
	}

	after := d.Lookup("nihc", "ni'hc")
	if len(after) != 3 || after[0].Word != "拟号" || after[0].Weight != 10000 {
		t.Errorf("new word missing after create: %+v", after)
	}
}

func TestCreateWord(t *testing.T) {
	d, table := newTestDictionary(t)
	countBefore, _ := table.Count("tbl_2_n")

	testCases := []struct {
		pinyin, word string
		valid        bool
	}{
		{"nihao", "你好", false},
		{"nihc", "你", false},
		{"", "", false},
		{"ni1c", "你好", false},
		{"nihc", "你好", true},
	}
	for _, tc := range testCases {
		err := d.CreateWord(tc.pinyin, tc.word)
		if tc.valid && err != nil {
			t.Errorf("CreateWord(%q, %q): %v", tc.pinyin, tc.word, err)
		}
		if !tc.valid && !errors.Is(err, ErrInvalidWord) {
			t.Errorf("CreateWord(%q, %q) = %v, expected ErrInvalidWord", tc.pinyin, tc.word, err)
		}
	}

	countAfter, _ := table.Count("tbl_2_n")
	if countAfter != countBefore {
		t.Errorf("row count changed from %d to %d", countBefore, countAfter)
	}
	// existing word keeps its weight
	if items := d.Lookup("nihc", "ni'hc"); items[0].Weight != 50 {
		t.Errorf("existing word was rewritten: %+v", items[0])
	}
}

func TestUpdateWeight(t *testing.T) {
	d, _ := newTestDictionary(t)
	d.Lookup("nihc", "ni'hc")

	if err := d.UpdateWeight("nihcuijp", "拟好"); err != nil {
		t.Fatalf("UpdateWeight: %v", err)
	}
	items := d.Lookup("nihc", "ni'hc")
	if items[0].Word != "拟好" || items[0].Weight != 51 {
		t.Errorf("expected 拟好 promoted to 51, got %+v", items)
	}

	if err := d.UpdateWeight("nihc", "泥蒿"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := d.UpdateWeight("ni", "你好"); !errors.Is(err, ErrInvalidWord) {
		t.Errorf("expected ErrInvalidWord, got %v", err)
	}
}

func TestDeleteWord(t *testing.T) {
	d, _ := newTestDictionary(t)
	d.Lookup("nihc", "ni'hc")

	if err := d.DeleteWord("nihc", "你好"); err != nil {
		t.Fatalf("DeleteWord: %v", err)
	}
	if got := word.Words(d.Lookup("nihc", "ni'hc")); !equal(got, []string{"拟好"}) {
		t.Errorf("after delete got %v", got)
	}
	if err := d.DeleteWord("nihc", "你好"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete = %v, expected ErrNotFound", err)
	}
}

func TestWordsForCreating(t *testing.T) {
	d, _ := newTestDictionary(t)

	got := word.Words(d.WordsForCreating("nihcbau"))
	expected := []string{"你好吧", "你好", "拟好", "你", "泥"}
	if !equal(got, expected) {
		t.Errorf("WordsForCreating = %v, expected %v", got, expected)
	}
	if items := d.WordsForCreating("n"); len(items) != 0 {
		t.Errorf("single letter should yield nothing, got %v", word.Words(items))
	}
}

func TestImport(t *testing.T) {
	d, table := newTestDictionary(t)
	d.Lookup("uijp", "ui'jp")

	n, err := d.Import(strings.NewReader(`# words
uijp 世界 300
uijp 视界
nihao 你好
uiji 世纪 bad
ni
`))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if n != 2 {
		t.Errorf("imported %d words, expected 2", n)
	}
	items := d.Lookup("uijp", "ui'jp")
	if got := word.Words(items); !equal(got, []string{"视界", "世界"}) {
		t.Errorf("Lookup after import = %v", got)
	}
	if count, _ := table.Count("tbl_2_u"); count != 2 {
		t.Errorf("tbl_2_u has %d rows", count)
	}
}

func TestMatchShape(t *testing.T) {
	groups := []string{"ni", "h", "b"}
	testCases := []struct {
		key      string
		expected bool
	}{
		{"nihcba", true},
		{"nihdbu", true},
		{"nlhcba", false},
		{"nihcb", false},
		{"nihcca", false},
		{"nih_ba", false},
	}
	for _, tc := range testCases {
		if got := matchShape(groups, tc.key); got != tc.expected {
			t.Errorf("matchShape(%v, %q) = %v, expected %v", groups, tc.key, got, tc.expected)
		}
	}
}

func TestKeyBounds(t *testing.T) {
	lo, hi := keyBounds([]string{"ni", "h", "ui"})
	if lo != "nihaui" || hi != "nihzui" {
		t.Errorf("keyBounds = %q, %q", lo, hi)
	}
}
