// Package report validates huffreport input and renders the result of an
// encoding for people (text) or programs (JSON, YAML).
package report
