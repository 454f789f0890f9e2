package core

// assessmentOrder fixes the evaluation order of threat categories so that the
// aggregated category never depends on map iteration order.
var assessmentOrder = []ThreatType{
	ThreatPhishing,
	ThreatMalware,
	ThreatSocialEngineering,
	ThreatSpam,
	ThreatBEC,
}

// Assessment is the aggregated outcome over all detector results
type Assessment struct {
	RiskScore  float64
	RiskLevel  RiskLevel
	Category   string
	Confidence float64
}

// CalculateOverallAssessment combines the per-threat detector results and the
// sentiment score into a single risk assessment. Each detected threat
// contributes confidence * weight * 100 to the risk score; the reported
// category is the detected threat with the highest confidence. A strongly
// negative sentiment adds a flat penalty of 10 on top of the weighted sum.
func CalculateOverallAssessment(
	threats map[ThreatType]DetectorResult,
	sentimentScore float64,
	weights map[ThreatType]float64,
	sentimentPenaltyThreshold float64,
) Assessment {
	a := Assessment{Category: CategoryLegitimate}

	best := 0.0
	for _, threat := range assessmentOrder {
		result, ok := threats[threat]
		if !ok || !result.Detected {
			continue
		}
		a.RiskScore += result.Confidence * weights[threat] * 100
		if result.Confidence > best {
			best = result.Confidence
			a.Category = string(threat)
			a.Confidence = result.Confidence
		}
	}

	if sentimentScore < sentimentPenaltyThreshold {
		a.RiskScore += 10
	}

	if a.RiskScore < 0 {
		a.RiskScore = 0
	} else if a.RiskScore > 100 {
		a.RiskScore = 100
	}
	a.RiskLevel = RiskLevelForScore(a.RiskScore)

	return a
}
