package factory

import (
	"go.uber.org/zap"

	"github.com/B0LK13/email-intel-hub/internal/config"
	"github.com/B0LK13/email-intel-hub/internal/core"
	"github.com/B0LK13/email-intel-hub/internal/detect"
	"github.com/B0LK13/email-intel-hub/internal/trust"
)

// AnalysisFactory builds the detector set and service configuration from the
// validated application configuration
type AnalysisFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewAnalysisFactory creates a new analysis factory
func NewAnalysisFactory(cfg *config.Config, logger *zap.Logger) *AnalysisFactory {
	return &AnalysisFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateDetectors creates the full threat detector set
func (f *AnalysisFactory) CreateDetectors() ([]core.Detector, error) {
	analysisCfg, err := f.cfg.GetAnalysis()
	if err != nil {
		return nil, err
	}
	detectorCfg, err := f.cfg.GetDetectors()
	if err != nil {
		return nil, err
	}

	trusted := trust.NewDomainSet(detectorCfg.TrustedDomains, f.logger)
	return detect.All(analysisCfg.ThreatThreshold, trusted), nil
}

// CreateServiceConfig creates the intelligence service configuration
func (f *AnalysisFactory) CreateServiceConfig() (core.ServiceConfig, error) {
	analysisCfg, err := f.cfg.GetAnalysis()
	if err != nil {
		return core.ServiceConfig{}, err
	}
	detectorCfg, err := f.cfg.GetDetectors()
	if err != nil {
		return core.ServiceConfig{}, err
	}

	return core.ServiceConfig{
		ThreatThreshold: analysisCfg.ThreatThreshold,
		Weights: map[core.ThreatType]float64{
			core.ThreatPhishing:          detectorCfg.Weights.Phishing,
			core.ThreatMalware:           detectorCfg.Weights.Malware,
			core.ThreatSocialEngineering: detectorCfg.Weights.SocialEngineering,
			core.ThreatSpam:              detectorCfg.Weights.Spam,
			core.ThreatBEC:               detectorCfg.Weights.BEC,
		},
		SentimentPenaltyThreshold: analysisCfg.SentimentPenaltyThreshold,
		BatchChunkSize:            analysisCfg.BatchChunkSize,
		FingerprintBodyLength:     analysisCfg.FingerprintBodyLength,
		BodyPreviewLength:         analysisCfg.BodyPreviewLength,
	}, nil
}
