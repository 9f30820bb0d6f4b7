package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/magefree/mage-oracle-go/internal/config"
	"github.com/magefree/mage-oracle-go/internal/oracle"
	"github.com/magefree/mage-oracle-go/internal/scryfall"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	corpusPath = flag.String("corpus", "", "path to a Scryfall oracle-cards.json dump (overrides config)")
	cardName   = flag.String("name", "", "card name for -text")
	cardText   = flag.String("text", "", "parse a single oracle text instead of a corpus")
	topUnknown = flag.Int("top-unknown", 20, "number of most frequent unrecognized clauses to report")
	version    = "dev" // set via ldflags during build
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if *cardText != "" {
		parseSingle(*cardText, *cardName)
		return
	}

	path := cfg.Corpus.Path
	if *corpusPath != "" {
		path = *corpusPath
	}

	logger.Info("parsing corpus",
		zap.String("version", version),
		zap.String("corpus", path),
	)

	cards, err := scryfall.ReadFile(path)
	if err != nil {
		logger.Fatal("failed to read corpus", zap.Error(err))
	}

	report := auditCorpus(cards, logger)
	report.print(os.Stdout, *topUnknown)
}

type coverageReport struct {
	cards        int
	faces        int
	abilities    int
	steps        int
	unknownSteps int
	cleanFaces   int // faces with no unknown steps
	unknownTexts map[string]int
}

func auditCorpus(cards []scryfall.Card, logger *zap.Logger) *coverageReport {
	report := &coverageReport{unknownTexts: make(map[string]int)}
	for _, card := range cards {
		report.cards++
		for _, face := range card.Faces() {
			if face.OracleText == "" {
				continue
			}
			report.faces++
			result := oracle.Parse(face.OracleText, face.Name)
			report.abilities += len(result.Abilities)
			report.steps += result.StepCount()

			unknown := result.UnknownSteps()
			if len(unknown) == 0 {
				report.cleanFaces++
				continue
			}
			report.unknownSteps += len(unknown)
			for _, step := range unknown {
				report.unknownTexts[step.Raw]++
			}
			logger.Debug("coverage gap",
				zap.String("card", face.Name),
				zap.Int("unknown_steps", len(unknown)),
			)
		}
	}
	return report
}

func (r *coverageReport) print(w *os.File, topN int) {
	fmt.Fprintf(w, "cards:          %d\n", r.cards)
	fmt.Fprintf(w, "faces parsed:   %d\n", r.faces)
	fmt.Fprintf(w, "abilities:      %d\n", r.abilities)
	fmt.Fprintf(w, "steps:          %d\n", r.steps)
	fmt.Fprintf(w, "unknown steps:  %d\n", r.unknownSteps)
	if r.faces > 0 {
		fmt.Fprintf(w, "clean faces:    %d (%.1f%%)\n",
			r.cleanFaces, 100*float64(r.cleanFaces)/float64(r.faces))
	}

	if topN <= 0 || len(r.unknownTexts) == 0 {
		return
	}
	type entry struct {
		text  string
		count int
	}
	entries := make([]entry, 0, len(r.unknownTexts))
	for text, count := range r.unknownTexts {
		entries = append(entries, entry{text, count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].text < entries[j].text
	})
	if len(entries) > topN {
		entries = entries[:topN]
	}
	fmt.Fprintf(w, "\ntop unrecognized clauses:\n")
	for _, e := range entries {
		fmt.Fprintf(w, "%6d  %s\n", e.count, e.text)
	}
}

func parseSingle(text, name string) {
	result := oracle.Parse(text, name)
	for _, ability := range result.Abilities {
		fmt.Printf("%s  %s", ability.ID, ability.Type)
		if ability.TriggerWord != "" {
			fmt.Printf("  [%s %s]", ability.TriggerWord, ability.TriggerCondition)
		}
		if ability.HasInterveningIf {
			fmt.Printf("  if(%s)", ability.InterveningIfClause)
		}
		fmt.Println()
		for _, step := range ability.Steps {
			fmt.Printf("    %s", step.Kind)
			if step.Who.Kind != "" {
				fmt.Printf(" who=%s", step.Who.Kind)
			}
			if step.Amount.Kind != "" {
				fmt.Printf(" amount=%s", step.Amount)
			}
			if step.Optional {
				fmt.Printf(" optional")
			}
			if step.Kind == oracle.StepUnknown {
				fmt.Printf("  raw=%q", step.Raw)
			}
			fmt.Println()
		}
	}
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
