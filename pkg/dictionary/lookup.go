package dictionary

import (
	"sort"

	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/store"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

// singleLetter holds the fixed candidates for a one-letter input, in display order.
var singleLetter = map[byte][]string{
	'a': {"啊", "按", "爱", "安", "暗", "阿", "案", "艾", "傲", "奥"},
	'b': {"把", "被", "不", "本", "边", "吧", "白", "别", "部", "比"},
	'c': {"从", "才", "此", "次", "错", "曾", "存", "草", "刺", "层"},
	'd': {"的", "到", "大", "地", "地", "但", "得", "得", "对", "多"},
	'e': {"嗯", "嗯", "而", "儿", "二", "尔", "饿", "呃", "恶", "耳"},
	'f': {"放", "发", "法", "分", "风", "飞", "反", "非", "服", "房"},
	'g': {"个", "过", "国", "给", "高", "感", "光", "果", "公", "更"},
	'h': {"或", "好", "会", "还", "后", "和", "很", "话", "回", "行"},
	'i': {"成", "长", "出", "处", "常", "吃", "场", "车", "城", "传"},
	'j': {"就", "级", "集", "家", "经", "见", "间", "几", "进", "将"},
	'k': {"看", "开", "口", "快", "空", "可", "刻", "苦", "克", "客"},
	'l': {"来", "里", "老", "啦", "了", "两", "力", "连", "理", "脸"},
	'm': {"吗", "没", "面", "明", "门", "名", "马", "美", "命", "目"},
	'n': {"那", "年", "女", "难", "内", "你", "男", "哪", "拿", "南"},
	'o': {"哦", "噢", "欧", "偶", "呕", "殴", "鸥", "藕", "区", "怄"},
	'p': {"平", "怕", "片", "跑", "破", "旁", "朋", "品", "派", "皮"},
	'q': {"请", "去", "起", "前", "气", "其", "却", "全", "轻", "清"},
	'r': {"人", "然", "如", "让", "日", "入", "任", "认", "容", "若"},
	's': {"所", "三", "色", "死", "四", "思", "算", "虽", "似", "斯"},
	't': {"他", "她", "天", "头", "同", "听", "太", "特", "它", "通"},
	'u': {"是", "说", "上", "时", "神", "深", "手", "生", "事", "声"},
	'v': {"这", "中", "只", "知", "真", "长", "正", "种", "主", "住"},
	'w': {"我", "为", "无", "问", "外", "王", "位", "文", "望", "完"},
	'x': {"下", "小", "想", "些", "笑", "行", "向", "学", "新", "相"},
	'y': {"一", "有", "也", "要", "以", "样", "已", "又", "意", "于"},
	'z': {"在", "子", "自", "做", "走", "再", "最", "怎", "作", "总"},
}

func singleLetterItems(seq string) []word.Item {
	chars := singleLetter[seq[0]]
	items := make([]word.Item, len(chars))
	for i, c := range chars {
		items[i] = word.Item{Key: seq, Word: c, Weight: 1}
	}
	return items
}

// Lookup returns the candidates matching seq exactly, given its segmentation.
func (d *Dictionary) Lookup(seq, seg string) []word.Item {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lookup(seq, seg)
}

func (d *Dictionary) lookup(seq, seg string) []word.Item {
	switch len(seq) {
	case 0:
		return nil
	case 1:
		return singleLetterItems(seq)
	}
	if items, ok := cached(d.plain, seq); ok {
		return items
	}

	groups := scheme.Groups(seg)
	partition := d.partition(seq, len(groups))
	abbrs := 0
	for _, g := range groups {
		if len(g) == 1 {
			abbrs++
		}
	}

	var rows []store.Record
	var err error
	switch {
	case abbrs == 0:
		rows, err = d.table.SelectByKey(partition, seq, d.opts.PageLimit)
	case abbrs == len(groups):
		rows, err = d.table.SelectByAbbr(partition, seq, d.opts.PageLimit)
	case abbrs == 1:
		lo, hi := keyBounds(groups)
		rows, err = d.table.SelectKeyRange(partition, lo, hi, d.opts.PageLimit)
	default:
		rows, err = d.selectByShape(partition, groups)
	}
	if err != nil {
		log.Errorf("Lookup %q in %s failed: %v", seq, partition, err)
		return nil
	}
	return remember(d.plain, seq, toItems(rows))
}

// keyBounds widens the single abbreviation group to every syllable starting with its letter.
func keyBounds(groups []string) (lo, hi string) {
	for _, g := range groups {
		if len(g) == 1 {
			lo += g + "a"
			hi += g + "z"
			continue
		}
		lo += g
		hi += g
	}
	return lo, hi
}

// selectByShape fetches every row sharing the abbreviation and keeps those whose key fits the
// group shape. The surviving rows are ordered by weight.
func (d *Dictionary) selectByShape(partition string, groups []string) ([]store.Record, error) {
	abbr := make([]byte, len(groups))
	for i, g := range groups {
		abbr[i] = g[0]
	}
	rows, err := d.table.SelectByAbbrUnordered(partition, string(abbr))
	if err != nil {
		return nil, err
	}

	kept := rows[:0]
	for _, r := range rows {
		if matchShape(groups, r.Key) {
			kept = append(kept, r)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].Weight > kept[j].Weight
	})
	if len(kept) > d.opts.PageLimit {
		kept = kept[:d.opts.PageLimit]
	}
	return kept, nil
}

// matchShape reports whether key spells the groups: two-letter groups literally, one-letter
// groups as that letter followed by any lowercase letter.
func matchShape(groups []string, key string) bool {
	if len(key) != 2*len(groups) {
		return false
	}
	for i, g := range groups {
		if key[2*i] != g[0] {
			return false
		}
		next := key[2*i+1]
		if len(g) == 2 {
			if next != g[1] {
				return false
			}
		} else if next < 'a' || next > 'z' {
			return false
		}
	}
	return true
}
