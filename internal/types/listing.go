// Package types provides type definitions for the canonical job listing
// shape shared by every source adapter and the aggregation engine.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"net/url"
)

// WorkType classifies where the work happens.
type WorkType string

const (
	WorkRemote WorkType = "remote"
	WorkHybrid WorkType = "hybrid"
	WorkOnsite WorkType = "onsite"
)

// EmploymentType classifies the contract form.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full-time"
	EmploymentPartTime EmploymentType = "part-time"
	EmploymentContract EmploymentType = "contract"
)

// Seniority is the experience level inferred from the listing title.
type Seniority string

const (
	SeniorityEntry  Seniority = "entry"
	SeniorityMid    Seniority = "mid"
	SenioritySenior Seniority = "senior"
)

// Source identifies which upstream board a listing came from. The value is
// also the prefix of the composite listing id.
type Source string

const (
	SourceRemotive  Source = "remotive"
	SourceJSearch   Source = "jsearch"
	SourceArbeitnow Source = "arbeitnow"
	SourceAdzuna    Source = "adzuna"
)

// Sources lists every supported source in aggregation order.
func Sources() []Source {
	return []Source{SourceRemotive, SourceJSearch, SourceArbeitnow, SourceAdzuna}
}

// JobListing is the canonical record produced by every adapter. Requirements
// and Benefits are never empty; adapters substitute a fallback sentinel when
// the upstream gives nothing usable.
type JobListing struct {
	ID                string         `json:"id"`
	Title             string         `json:"title"`
	Company           string         `json:"company"`
	Location          string         `json:"location"`
	WorkType          WorkType       `json:"workType"`
	EmploymentType    EmploymentType `json:"employmentType"`
	Seniority         Seniority      `json:"seniority"`
	Salary            string         `json:"salary,omitempty"`
	PostedAt          string         `json:"postedAt"`
	Description       string         `json:"description"`
	Requirements      []string       `json:"requirements"`
	Benefits          []string       `json:"benefits"`
	ApplyURL          string         `json:"applyUrl"`
	CompanyReviewsURL string         `json:"companyReviewsUrl"`
	CompanyLogo       string         `json:"companyLogo,omitempty"`
	Tags              []string       `json:"tags"`
	Category          string         `json:"category,omitempty"`
	Source            Source         `json:"source"`
}

// CompositeID builds the globally unique listing id for a source and the
// upstream's native identifier.
func CompositeID(source Source, nativeID string) string {
	return fmt.Sprintf("%s-%s", source, nativeID)
}

// ReviewsURL synthesizes the external company-reviews link shown alongside a
// listing. It is always a Glassdoor keyword search; upstreams never provide
// one.
func ReviewsURL(company, title string) string {
	return "https://www.glassdoor.com/Search/results.htm?keyword=" +
		url.QueryEscape(company+" "+title)
}
