package model

// Category groups submitted ideas.
type Category string

const (
	CategoryContentInsights     Category = "content-insights"
	CategoryToolsTemplates      Category = "tools-templates"
	CategoryEducationLeadership Category = "education-leadership"
	CategoryPlatformFeature     Category = "platform-feature"
	CategoryOther               Category = "other"
)

// Categories returns the closed category vocabulary in display order.
func Categories() []Category {
	return []Category{
		CategoryContentInsights,
		CategoryToolsTemplates,
		CategoryEducationLeadership,
		CategoryPlatformFeature,
		CategoryOther,
	}
}

// Valid reports whether c belongs to the vocabulary.
func (c Category) Valid() bool {
	for _, candidate := range Categories() {
		if c == candidate {
			return true
		}
	}
	return false
}

// Tag is one selectable chip of the "problems solved" set.
type Tag string

const (
	TagBenchmarking       Tag = "benchmarking"
	TagValuationReadiness Tag = "valuation-readiness"
	TagGrowthPlanning     Tag = "growth-planning"
	TagTeamAlignment      Tag = "team-alignment"
	TagClientAdvisory     Tag = "client-advisory"
	TagProgressTracking   Tag = "progress-tracking"
	TagReportingTime      Tag = "reporting-time"
	TagRiskVisibility     Tag = "risk-visibility"
)

// Tags returns the fixed tag vocabulary in display order.
func Tags() []Tag {
	return []Tag{
		TagBenchmarking,
		TagValuationReadiness,
		TagGrowthPlanning,
		TagTeamAlignment,
		TagClientAdvisory,
		TagProgressTracking,
		TagReportingTime,
		TagRiskVisibility,
	}
}

// Valid reports whether t belongs to the vocabulary.
func (t Tag) Valid() bool {
	for _, candidate := range Tags() {
		if t == candidate {
			return true
		}
	}
	return false
}

// Urgency is the optional priority hint from step 3.
type Urgency string

const (
	UrgencyNiceToHave Urgency = "nice-to-have"
	UrgencyImportant  Urgency = "important"
	UrgencyCritical   Urgency = "critical"
)

func Urgencies() []Urgency {
	return []Urgency{UrgencyNiceToHave, UrgencyImportant, UrgencyCritical}
}

// Valid reports whether u is empty (not provided) or part of the vocabulary.
func (u Urgency) Valid() bool {
	if u == "" {
		return true
	}
	for _, candidate := range Urgencies() {
		if u == candidate {
			return true
		}
	}
	return false
}

// BetaTesting captures interest in early access.
type BetaTesting string

const (
	BetaTestingYes   BetaTesting = "yes"
	BetaTestingMaybe BetaTesting = "maybe"
	BetaTestingNo    BetaTesting = "no"
)

func BetaTestingOptions() []BetaTesting {
	return []BetaTesting{BetaTestingYes, BetaTestingMaybe, BetaTestingNo}
}

// Valid reports whether b is empty (not provided) or part of the vocabulary.
func (b BetaTesting) Valid() bool {
	if b == "" {
		return true
	}
	for _, candidate := range BetaTestingOptions() {
		if b == candidate {
			return true
		}
	}
	return false
}
