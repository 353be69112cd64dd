// Command spdict maintains the shuangpin dictionary store.
//
//	spdict [-config path] [-d] import FILE...
//	spdict create PINYIN WORD
//	spdict delete PINYIN WORD
//	spdict promote PINYIN WORD
//	spdict show PINYIN
//
// Import files hold one `pinyin word [weight]` entry per line, pinyin in Xiaohe keys
// (e.g. "nihc 你好 500").
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bastiangx/shuangpin/internal/bootstrap"
	"github.com/bastiangx/shuangpin/internal/logger"
	"github.com/bastiangx/shuangpin/internal/utils"
	"github.com/bastiangx/shuangpin/pkg/config"
	"github.com/bastiangx/shuangpin/pkg/dictionary"
	"github.com/charmbracelet/log"
)

func usage() {
	fmt.Fprintln(os.Stderr, "usage: spdict [-config path] [-d] import FILE... | create|delete|promote PINYIN WORD | show PINYIN")
	flag.PrintDefaults()
}

func main() {
	configPath := flag.String("config", "", "Path to a config file")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	flag.Usage = usage
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}
	log.SetOutput(os.Stderr)
	out := logger.New("spdict")

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	cfg, loadedFrom, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		out.Fatalf("Failed to load config: %v", err)
	}
	if loadedFrom != "" {
		cfg.ResolveDataPaths(filepath.Dir(loadedFrom))
	}

	dict, err := bootstrap.Open(cfg)
	if err != nil {
		out.Fatalf("Failed to open dictionary: %v", err)
	}
	defer dict.Close()

	if err := run(dict, args); err != nil {
		out.Error(err)
		dict.Close()
		os.Exit(1)
	}
}

func run(dict *dictionary.Dictionary, args []string) error {
	out := logger.New("spdict")
	cmd, rest := args[0], args[1:]

	switch cmd {
	case "import":
		if len(rest) == 0 {
			return fmt.Errorf("import needs at least one file")
		}
		for _, path := range rest {
			n, err := dict.ImportFile(path)
			if err != nil {
				return err
			}
			out.Info("imported", "file", path, "words", n)
		}
	case "create", "delete", "promote":
		if len(rest) != 2 {
			return fmt.Errorf("%s needs PINYIN WORD", cmd)
		}
		pinyin, w := utils.NormalizeKeys(rest[0]), rest[1]
		var err error
		switch cmd {
		case "create":
			err = dict.CreateWord(pinyin, w)
		case "delete":
			err = dict.DeleteWord(pinyin, w)
		default:
			err = dict.UpdateWeight(pinyin, w)
		}
		if err != nil {
			return err
		}
		out.Info(cmd, "pinyin", pinyin, "word", w)
	case "show":
		if len(rest) != 1 {
			return fmt.Errorf("show needs PINYIN")
		}
		pinyin := utils.NormalizeKeys(rest[0])
		seg := dict.Scheme().Segment(pinyin)
		for i, it := range dict.LookupSeries(pinyin, seg) {
			fmt.Printf("%3d. %s\t%s\t%d\n", i+1, it.Word, it.Key, it.Weight)
		}
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}
