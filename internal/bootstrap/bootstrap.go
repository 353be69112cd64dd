// Package bootstrap assembles a Dictionary from configuration for the binaries.
package bootstrap

import (
	"fmt"

	"github.com/bastiangx/shuangpin/internal/utils"
	"github.com/bastiangx/shuangpin/pkg/config"
	"github.com/bastiangx/shuangpin/pkg/dictionary"
	"github.com/bastiangx/shuangpin/pkg/predict"
	"github.com/bastiangx/shuangpin/pkg/scheme"
	"github.com/bastiangx/shuangpin/pkg/session"
	"github.com/bastiangx/shuangpin/pkg/store"
	"github.com/charmbracelet/log"
)

// Open loads the scheme, the phrase oracle and the store named by cfg. Data paths must already
// be resolved. Missing optional files (help codes, phrases) are logged and skipped.
func Open(cfg *config.Config) (*dictionary.Dictionary, error) {
	syllableFile := optional(cfg.Data.SyllableFile, "syllable")
	helpCodeFile := optional(cfg.Data.HelpCodeFile, "help code")

	sch, err := scheme.LoadFiles(syllableFile, helpCodeFile)
	if err != nil {
		return nil, err
	}

	var oracle predict.Oracle = predict.Nop
	if phraseFile := optional(cfg.Data.PhraseFile, "phrase"); phraseFile != "" {
		table, err := predict.LoadFile(phraseFile)
		if err != nil {
			return nil, err
		}
		oracle = table
	}

	engine := cfg.Data.StorageEngine
	if engine == "" {
		engine = store.DefaultEngine
	}
	table, err := store.Open(engine, cfg.Data.DictPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open dictionary store: %w", err)
	}

	log.Debugf("Dictionary ready: engine=%s, path=%s, syllables=%d, helpCodes=%d",
		engine, cfg.Data.DictPath, sch.SyllableCount(), sch.HelpCodeCount())
	return dictionary.New(sch, table, oracle, cfg.DictionaryOptions()), nil
}

// NewSession creates a session configured by cfg.
func NewSession(d *dictionary.Dictionary, cfg *config.Config, opts ...session.Option) *session.Session {
	base := []session.Option{
		session.WithKeyHistory(cfg.Engine.KeyHistory),
		session.WithMaxSequence(cfg.Server.MaxSequence),
	}
	return session.New(d, append(base, opts...)...)
}

func optional(path, what string) string {
	if path == "" {
		return ""
	}
	if !utils.FileExists(path) {
		log.Warnf("No %s file at %s, skipping", what, path)
		return ""
	}
	return path
}
