package sim

// Tier classifies a subject's chance of getting at least one section.
type Tier string

const (
	TierHigh   Tier = "HIGH"
	TierMedium Tier = "MEDIUM"
	TierLow    Tier = "LOW"
)

// Advice is the suggested action for a subject.
type Advice string

const (
	// AdviceNone: single sure-enough section, nothing to change.
	AdviceNone Advice = "none"
	// AdviceReallocate: several alternatives and already HIGH; lower-ranked ones could be dropped
	// to free an application slot for another subject.
	AdviceReallocate Advice = "reallocate"
	// AdviceOptionalAlternative: MEDIUM; another alternative would help slightly.
	AdviceOptionalAlternative Advice = "optional-alternative"
	// AdviceAddAlternatives: LOW; more alternatives are strongly suggested.
	AdviceAddAlternatives Advice = "add-alternatives"
)

// Recommendation is the per-subject result of Recommend.
type Recommendation struct {
	Subject        string
	Sections       int     // number of alternative sections listed for the subject
	ProbAtLeastOne float64 // 1 - Π(1 - p_i)
	Tier           Tier
	Advice         Advice
}

// Recommendations are ordered by the first appearance of each subject.
type Recommendations []Recommendation

// For returns the recommendation for subject.
func (rs Recommendations) For(subject string) (Recommendation, bool) {
	for _, r := range rs {
		if r.Subject == subject {
			return r, true
		}
	}
	return Recommendation{}, false
}

// Recommend classifies every subject using DefaultThresholds.
func Recommend(sections []Section) Recommendations {
	return RecommendWith(sections, DefaultThresholds())
}

// RecommendWith computes, per subject, the probability of winning at least one
// of its sections, assuming independent draws, and assigns a tier and advice.
func RecommendWith(sections []Section, th Thresholds) Recommendations {
	recs := make(Recommendations, 0)
	index := make(map[string]int)
	for _, s := range sections {
		i, ok := index[s.Subject]
		if !ok {
			i = len(recs)
			index[s.Subject] = i
			recs = append(recs, Recommendation{Subject: s.Subject})
		}
		r := &recs[i]
		r.Sections++
		// Union of independent events; equals 1-Π(1-p) and is exactly p for one section.
		r.ProbAtLeastOne += s.probability * (1 - r.ProbAtLeastOne)
	}
	for i := range recs {
		recs[i].Tier, recs[i].Advice = classify(recs[i].ProbAtLeastOne, recs[i].Sections, th)
	}
	return recs
}

func classify(p float64, sections int, th Thresholds) (Tier, Advice) {
	switch {
	case p >= th.High:
		if sections > 1 {
			return TierHigh, AdviceReallocate
		}
		return TierHigh, AdviceNone
	case p >= th.Medium:
		return TierMedium, AdviceOptionalAlternative
	default:
		return TierLow, AdviceAddAlternatives
	}
}
