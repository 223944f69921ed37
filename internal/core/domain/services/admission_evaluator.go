package services

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCapacityRejected is the sentinel for admission rejections.
// Use errors.As to obtain the *RejectionError carrying the full Decision.
var ErrCapacityRejected = errors.New("capacity admission rejected")

// Dimension identifies a capacity dimension in rejection reports.
// The values are the user-facing labels from the assignment screens.
type Dimension string

const (
	// DimensionWeight is the weight quota dimension.
	DimensionWeight Dimension = "PESO"
	// DimensionVolume is the volume quota dimension.
	DimensionVolume Dimension = "VOLUMEN"
)

// RejectionReason classifies why an admission was refused.
type RejectionReason string

const (
	// ReasonAlreadyFull means the departure was at or beyond 100% in some
	// dimension before this request; no further assignment is permitted
	// regardless of the delta size, including zero-sized deltas.
	ReasonAlreadyFull RejectionReason = "ALREADY_FULL"
	// ReasonCapacityExceeded means this specific delta would push a dimension
	// over 100%; a smaller delta might still succeed.
	ReasonCapacityExceeded RejectionReason = "CAPACITY_EXCEEDED"
)

// Load is a weight/volume pair: a capacity ceiling, a current usage or a delta.
type Load struct {
	Weight float64
	Volume float64
}

// Decision is the outcome of an admission evaluation.
type Decision struct {
	// Accepted is true when the delta fits within the remaining quota.
	Accepted bool
	// Reason classifies the rejection; empty when accepted.
	Reason RejectionReason
	// Dimensions lists the offending dimensions; empty when accepted.
	Dimensions []Dimension
	// ProjectedPctWeight is the weight percentage after applying the delta.
	// Zero-capacity dimensions report 0 here; they are handled by the
	// already-full rule, not by percentage arithmetic.
	ProjectedPctWeight float64
	// ProjectedPctVolume is the volume percentage after applying the delta.
	ProjectedPctVolume float64
}

// Message renders the user-facing rejection text. Accepted decisions have no message.
func (d Decision) Message() string {
	switch d.Reason {
	case ReasonAlreadyFull:
		return fmt.Sprintf(
			"El embarque está lleno por %s. No se pueden asignar más productos a este embarque programado.",
			joinDimensions(d.Dimensions, nil))
	case ReasonCapacityExceeded:
		pcts := map[Dimension]float64{
			DimensionWeight: d.ProjectedPctWeight,
			DimensionVolume: d.ProjectedPctVolume,
		}
		return fmt.Sprintf(
			"Capacidad excedida por %s. No se puede superar el 100%% de la capacidad.",
			joinDimensions(d.Dimensions, pcts))
	default:
		return ""
	}
}

func joinDimensions(dims []Dimension, pcts map[Dimension]float64) string {
	parts := make([]string, 0, len(dims))
	for _, dim := range dims {
		if pcts != nil {
			parts = append(parts, fmt.Sprintf("%s (%.1f%%)", dim, pcts[dim]))
			continue
		}
		parts = append(parts, string(dim))
	}
	return strings.Join(parts, " y ")
}

// RejectionError is the structured error returned when admission is refused.
// It wraps the full Decision so callers can render the reason code and the
// offending dimensions, and unwraps to ErrCapacityRejected for classification.
type RejectionError struct {
	Decision Decision
}

// NewRejectionError wraps a rejected Decision as an error.
func NewRejectionError(decision Decision) *RejectionError {
	return &RejectionError{Decision: decision}
}

func (e *RejectionError) Error() string {
	return e.Decision.Message()
}

func (e *RejectionError) Unwrap() error {
	return ErrCapacityRejected
}

// AdmissionEvaluator decides whether a weight/volume delta may be added to a
// departure given its declared capacity and current usage.
//
// The evaluator applies two rules in order:
//
//  1. Already-full: if any dimension is at or beyond 100% before the delta,
//     reject with ReasonAlreadyFull. A departure pinned at exactly 100% does
//     not accept a zero-sized product either; this is policy, not arithmetic.
//  2. Overshoot: if applying the delta would push a dimension over 100%,
//     reject with ReasonCapacityExceeded and the projected percentages.
//
// A dimension with zero declared capacity is immediately full for any positive
// usage or positive delta; a zero delta alone does not trip it. Negative
// deltas (weight reductions during an edit) can never trip the overshoot rule.
//
// Evaluate performs no I/O and is deterministic; callers must read the current
// usage under the departure row lock for the decision to be trustworthy.
type AdmissionEvaluator struct{}

// NewAdmissionEvaluator creates an AdmissionEvaluator.
func NewAdmissionEvaluator() AdmissionEvaluator {
	return AdmissionEvaluator{}
}

// Evaluate applies the admission rules to a single proposed delta.
func (e AdmissionEvaluator) Evaluate(capacity, current, delta Load) Decision {
	decision := Decision{
		ProjectedPctWeight: percentage(current.Weight+delta.Weight, capacity.Weight),
		ProjectedPctVolume: percentage(current.Volume+delta.Volume, capacity.Volume),
	}

	var full []Dimension
	if dimensionFull(capacity.Weight, current.Weight, delta.Weight) {
		full = append(full, DimensionWeight)
	}
	if dimensionFull(capacity.Volume, current.Volume, delta.Volume) {
		full = append(full, DimensionVolume)
	}
	if len(full) > 0 {
		decision.Reason = ReasonAlreadyFull
		decision.Dimensions = full
		return decision
	}

	var exceeded []Dimension
	if capacity.Weight > 0 && decision.ProjectedPctWeight > 100 {
		exceeded = append(exceeded, DimensionWeight)
	}
	if capacity.Volume > 0 && decision.ProjectedPctVolume > 100 {
		exceeded = append(exceeded, DimensionVolume)
	}
	if len(exceeded) > 0 {
		decision.Reason = ReasonCapacityExceeded
		decision.Dimensions = exceeded
		return decision
	}

	decision.Accepted = true
	return decision
}

// percentage returns used/capacity as a percentage, 0 for zero capacity.
func percentage(used, capacity float64) float64 {
	if capacity <= 0 {
		return 0
	}
	return used / capacity * 100
}

// dimensionFull reports whether a dimension blocks any further assignment.
// Positive capacity: full at or beyond 100% of current usage. Zero capacity:
// full for any positive usage or any positive incoming delta.
func dimensionFull(capacity, current, delta float64) bool {
	if capacity > 0 {
		return percentage(current, capacity) >= 100
	}
	return current > 0 || delta > 0
}
