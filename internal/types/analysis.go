// Package types provides type definitions for structured data used throughout the resume-analyzer system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/go-playground/validator/v10"

// ExperienceLevel is a coarse seniority bucket
type ExperienceLevel string

// Experience levels, ordered from least to most senior
const (
	LevelEntry  ExperienceLevel = "entry"
	LevelJunior ExperienceLevel = "junior"
	LevelMid    ExperienceLevel = "mid"
	LevelSenior ExperienceLevel = "senior"
	LevelStaff  ExperienceLevel = "staff"
)

// Levels lists every experience level in ascending order
var Levels = []ExperienceLevel{LevelEntry, LevelJunior, LevelMid, LevelSenior, LevelStaff}

// Rank returns the position of the level in Levels, or -1 when unknown
func (l ExperienceLevel) Rank() int {
	for i, level := range Levels {
		if level == l {
			return i
		}
	}
	return -1
}

// AnalysisInput is the raw request handed to the analysis engine
type AnalysisInput struct {
	Text              string          `json:"text"`
	JobDescription    string          `json:"job_description,omitempty"`
	ExperienceLevel   ExperienceLevel `json:"experience_level,omitempty" validate:"omitempty,oneof=entry junior mid senior staff"`
	YearsOfExperience *int            `json:"years_of_experience,omitempty" validate:"omitempty,min=0,max=60"`
	Category          string          `json:"category,omitempty" validate:"omitempty,max=64"`
}

// Validate checks the enumerated and ranged fields of the input. Category
// names come from the pattern library and are checked by the engine.
func (in *AnalysisInput) Validate() error {
	validate := validator.New()
	return validate.Struct(in)
}

// ScoreBreakdown holds the overall score and its three weighted components (0-100)
type ScoreBreakdown struct {
	Overall      int `json:"overall"`
	Keywords     int `json:"keywords"`
	Format       int `json:"format"`
	Completeness int `json:"completeness"`
}

// ContactInfo records which contact channels were found, never their values
type ContactInfo struct {
	Email    bool `json:"email"`
	Phone    bool `json:"phone"`
	LinkedIn bool `json:"linkedin"`
}

// TextStats holds simple size statistics about the analyzed text
type TextStats struct {
	WordCount int `json:"word_count"`
	UnitCount int `json:"unit_count"`
}

// Keyword sources
const (
	KeywordSourceJobDescription  = "job_description"
	KeywordSourceCategoryDefault = "category_default"
)

// AnalysisResult is the complete, deterministic assessment of one resume
type AnalysisResult struct {
	Score                    ScoreBreakdown      `json:"score"`
	Grade                    string              `json:"grade"`
	Percentile               int                 `json:"percentile"`
	Category                 string              `json:"category"`
	KeywordSource            string              `json:"keyword_source"`
	MatchedKeywords          []Keyword           `json:"matched_keywords"`
	MissingKeywords          []Keyword           `json:"missing_keywords"`
	Issues                   []Issue             `json:"issues"`
	Sections                 []string            `json:"sections"`
	Contact                  ContactInfo         `json:"contact"`
	WeakPhrases              []WeakPhraseFinding `json:"weak_phrases"`
	UnquantifiedAchievements []MetricFinding     `json:"unquantified_achievements"`
	QuantifiedCount          int                 `json:"quantified_count"`
	Seniority                SeniorityEstimate   `json:"seniority"`
	Suggestions              []BulletSuggestion  `json:"suggestions"`
	Stats                    TextStats           `json:"stats"`
	PatternVersion           string              `json:"pattern_version"`
}
