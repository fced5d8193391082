// Package store persists uploaded draw datasets and completed draw results
// under content-derived keys.
//
// Datasets (competitors, groups, fixed positions) are keyed by a fingerprint
// of their content, so uploading the same data twice yields the same key and
// overwrites nothing. Results are keyed by the dataset keys plus the seed that
// produced them, so re-running an identical draw request is idempotent.
//
// Two implementations are provided: Memory for single-process use and tests,
// and NATSKV backed by a JetStream key-value bucket for durable multi-process
// deployments.
package store
