// Package report builds and writes the plain-text reports produced by the
// reconciliation passes: file transfer, asset completeness, relocation change
// log and the request list. Every report is written as
// Name_YYYYMMDD-HHMMSS.txt in the report directory.
package report
