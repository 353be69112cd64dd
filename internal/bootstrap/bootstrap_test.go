package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bastiangx/shuangpin/pkg/config"
	"github.com/bastiangx/shuangpin/pkg/word"
	"github.com/charmbracelet/log"
)

func init() {
	log.SetLevel(log.ErrorLevel)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	write("helpcode.txt", "你=rx\n好=nv\n")
	write("phrases.txt", "ni'hao 你好\nshi'jie 世界\n")

	for _, engine := range []string{"bolt", "kv"} {
		t.Run(engine, func(t *testing.T) {
			cfg := config.DefaultConfig()
			cfg.Data.StorageEngine = engine
			cfg.Data.DictPath = "dict_" + engine + ".db"
			cfg.Data.PhraseFile = "phrases.txt"
			cfg.Data.SyllableFile = "missing.txt"
			cfg.ResolveDataPaths(dir)

			d, err := Open(cfg)
			if err != nil {
				t.Fatalf("Open: %v", err)
			}
			defer d.Close()

			if d.Scheme().HelpCodeCount() != 2 || !d.Scheme().IsSyllable("zhuang") {
				t.Errorf("scheme not loaded")
			}

			s := NewSession(d, cfg)
			s.Type("nihcuijp")
			got := word.Words(s.Candidates())
			if len(got) == 0 || got[0] != "你好世界" {
				t.Errorf("expected predicted phrase, got %v", got)
			}
		})
	}
}

func TestOpenUnknownEngine(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Data.StorageEngine = "sqlite"
	cfg.ResolveDataPaths(t.TempDir())

	if _, err := Open(cfg); err == nil {
		t.Error("expected an error for an unknown engine")
	}
}
