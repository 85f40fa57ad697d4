package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"lead_scoring_backend/internal/leads"
	"lead_scoring_backend/internal/leads/csvio"
	"lead_scoring_backend/internal/leads/domain"
	"lead_scoring_backend/internal/leads/scoring"
	"lead_scoring_backend/platform/config"
	"lead_scoring_backend/platform/logger"
	"lead_scoring_backend/platform/validator"

	"gopkg.in/yaml.v3"
)

type offerFile struct {
	Name          string   `json:"name" yaml:"name" validate:"required,notblank"`
	ValueProps    []string `json:"value_props" yaml:"value_props"`
	IdealUseCases []string `json:"ideal_use_cases" yaml:"ideal_use_cases" validate:"required"`
}

func main() {
	leadsPath := flag.String("leads", "", "path to the leads CSV (required)")
	offerPath := flag.String("offer", "", "path to the offer YAML or JSON file (required)")
	outPath := flag.String("out", "", "write results CSV here instead of stdout")
	flag.Parse()

	if *leadsPath == "" || *offerPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Logs go to stderr so stdout stays a clean CSV stream.
	log := logger.NewWithWriter(cfg.Env, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, *leadsPath, *offerPath, *outPath); err != nil {
		log.Error("score-csv failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger, leadsPath, offerPath, outPath string) error {
	offer, err := loadOffer(offerPath)
	if err != nil {
		return err
	}

	in, err := os.Open(leadsPath)
	if err != nil {
		return fmt.Errorf("open leads: %w", err)
	}
	defer in.Close()

	leadList, err := csvio.ParseLeads(in)
	if err != nil {
		return fmt.Errorf("parse leads: %w", err)
	}

	classifier, cleanup, err := leads.NewClassifier(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer cleanup()

	svc := scoring.New(classifier, log, scoring.WithConcurrency(cfg.GetScoringConcurrency()))
	results, summary, err := svc.Run(ctx, leadList, offer)
	if err != nil {
		return fmt.Errorf("score leads: %w", err)
	}

	var out io.Writer = os.Stdout
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}
	if err := csvio.WriteResults(out, results); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	log.Info("scoring finished", "leads", summary.Leads, "fallbacks", summary.Fallbacks, "runId", summary.RunID)
	return nil
}

func loadOffer(path string) (domain.Offer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return domain.Offer{}, fmt.Errorf("read offer: %w", err)
	}
	return decodeOffer(raw, filepath.Ext(path))
}

func decodeOffer(raw []byte, ext string) (domain.Offer, error) {
	var of offerFile
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(raw, &of); err != nil {
			return domain.Offer{}, fmt.Errorf("decode offer json: %w", err)
		}
	case ".yaml", ".yml", "":
		if err := yaml.Unmarshal(raw, &of); err != nil {
			return domain.Offer{}, fmt.Errorf("decode offer yaml: %w", err)
		}
	default:
		return domain.Offer{}, fmt.Errorf("unsupported offer format %q", ext)
	}

	if err := validator.New().Struct(of); err != nil {
		return domain.Offer{}, errors.Join(errors.New("offer needs name and ideal_use_cases"), err)
	}
	if of.ValueProps == nil {
		of.ValueProps = []string{}
	}
	return domain.Offer{Name: of.Name, ValueProps: of.ValueProps, IdealUseCases: of.IdealUseCases}, nil
}
