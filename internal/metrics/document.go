// SPDX-License-Identifier: MIT

// Package metrics provides Prometheus metrics for skwatch.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"

	"github.com/ManuGH/skwatch/internal/validate"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	documentValidationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skwatch_document_validations_total",
		Help: "Settings document validations by result",
	}, []string{"result"}) // result=success|invalid|error

	documentIssuesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skwatch_document_issues_total",
		Help: "Validation issues found in settings documents, by class",
	}, []string{"class"}) // class=structural|uniqueness|value

	documentReloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skwatch_document_reloads_total",
		Help: "Document reloads by result",
	}, []string{"result"})

	documentElements = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "skwatch_document_elements",
		Help: "Number of elements (any depth) in the served document",
	})

	settingsSubmissionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "skwatch_settings_submissions_total",
		Help: "Decoded settings submissions by result",
	}, []string{"result"})
)

// Outcome maps a validation or load error to a result label.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case len(validate.Issues(err)) > 0:
		return OutcomeInvalid
	default:
		return OutcomeError
	}
}

// RecordValidation counts one validation and its issues by class.
func RecordValidation(err error) {
	documentValidationsTotal.WithLabelValues(Outcome(err)).Inc()
	for _, issue := range validate.Issues(err) {
		documentIssuesTotal.WithLabelValues(issue.ClassName()).Inc()
	}
}

// RecordReload counts a reload attempt.
func RecordReload(err error) {
	documentReloadsTotal.WithLabelValues(Outcome(err)).Inc()
}

// SetDocumentElements records the element count of the served document.
func SetDocumentElements(n int) { documentElements.Set(float64(n)) }

// RecordSubmission counts a decoded settings submission.
func RecordSubmission(err error) {
	settingsSubmissionsTotal.WithLabelValues(Outcome(err)).Inc()
}

// ValidationCount returns the validation counter for result (for testing).
func ValidationCount(result string) float64 {
	return counterValue(documentValidationsTotal.WithLabelValues(result))
}

// IssueCount returns the issue counter for class (for testing).
func IssueCount(class string) float64 {
	return counterValue(documentIssuesTotal.WithLabelValues(class))
}

// ReloadCount returns the reload counter for result (for testing).
func ReloadCount(result string) float64 {
	return counterValue(documentReloadsTotal.WithLabelValues(result))
}

// SubmissionCount returns the submission counter for result (for testing).
func SubmissionCount(result string) float64 {
	return counterValue(settingsSubmissionsTotal.WithLabelValues(result))
}

// DocumentElements returns the current element gauge (for testing).
func DocumentElements() float64 {
	var m dto.Metric
	if err := documentElements.Write(&m); err != nil {
		return 0
	}
	return m.GetGauge().GetValue()
}

func counterValue(c prometheus.Counter) float64 {
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		return 0
	}
	return m.GetCounter().GetValue()
}
