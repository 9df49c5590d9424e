// Package triage provides the business boundary for Triago's symptom
// triage pipeline. It defines the Gate (keyword intent validation and
// symptom extraction), the upstream request builder and response
// normalizer, the Service (per-request orchestration), the Store
// interface (audit persistence), and domain models.
package triage
