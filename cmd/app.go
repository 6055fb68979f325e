package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/resume-matcher/internal/extract"
	"github.com/spigell/resume-matcher/internal/filtering"
	"github.com/spigell/resume-matcher/internal/logger"
	"github.com/spigell/resume-matcher/internal/portal"
	"github.com/spigell/resume-matcher/internal/vocabulary"
)

type application struct {
	config  *Config
	logger  *zap.Logger
	portal  *portal.Portal
	filters []filtering.Filter
}

// newApplication builds everything a command needs from the loaded configuration.
func newApplication() (*application, error) {
	log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
	if err != nil {
		return nil, fmt.Errorf("creating a logger: %w", err)
	}

	config, err := getConfig()
	if err != nil {
		return nil, fmt.Errorf("getting a config: %w", err)
	}

	// do not bother error since there is a valid parseable config
	pretty, _ := json.MarshalIndent(config, "", "  ")
	log.Debug(fmt.Sprintf("starting with config: \n %s", pretty))

	filterCfg, err := filtering.DecodeConfig(config.Filters)
	if err != nil {
		return nil, err
	}

	vocab, err := vocabulary.Load(vocabulary.Source{Name: "skills", File: config.SkillsFile})
	if err != nil {
		// Matching still works, it just finds no skills.
		log.Warn("loading skills vocabulary", zap.Error(err))
	}
	log.Info("skills vocabulary loaded", zap.String("file", config.SkillsFile), zap.Int("skills", vocab.Len()))

	steps := filtering.Default()
	extractor := extract.New(log, extract.WithMaxLogLength(config.MaxLogLength))

	return &application{
		config:  config,
		logger:  log,
		portal:  portal.New(vocab, extractor, log, portal.WithFilters(filterCfg, steps...)),
		filters: steps,
	}, nil
}

// uploadFiles reads every path and hands it to upload. Failures are logged and
// skipped; the error reports how many files could not be used.
func uploadFiles[T any](log *zap.Logger, paths []string, upload func(name string, data []byte) (T, error)) ([]T, error) {
	records := make([]T, 0, len(paths))
	failed := 0
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Warn("reading file", zap.String("filename", path), zap.Error(err))
			failed++
			continue
		}

		record, err := upload(filepath.Base(path), data)
		if err != nil {
			failed++
			continue
		}
		records = append(records, record)
	}

	if failed > 0 {
		return records, fmt.Errorf("%d of %d files were not processed", failed, len(paths))
	}
	return records, nil
}
