// Package extraction turns a free-text brain dump into categorized tasks.
//
// The pipeline has three stages applied to one input string:
//
//  1. Chunking: SplitIntoChunks breaks long input into bounded segments,
//     preferring sentence or line boundaries over hard cuts.
//  2. Model invocation: each chunk is sent to a generation.Generator with a
//     fixed system instruction, a user prompt listing the allowed categories,
//     and the strict "extracted_tasks" JSON schema.
//  3. Normalization: Normalize cleans titles, accepts a category only when it
//     is in the allowed set with confidence of at least
//     CategoryConfidenceThreshold, and removes case-insensitive duplicate
//     titles keeping the first occurrence.
//
// Chunks may be sent concurrently (WithConcurrency), but results are always
// accumulated in chunk order, so deduplication is deterministic.
//
// A generator failure or a malformed model response fails the whole
// extraction with an *Error. WithSkipMalformedChunks relaxes the latter so a
// malformed chunk contributes no tasks instead.
package extraction
