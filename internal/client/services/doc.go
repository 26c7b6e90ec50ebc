// Package services orchestrates the user-facing utilitybox operations.
//
// Every operation follows the same sequence:
//
//  1. validate the target path (a missing path ends with status 404 before
//     anything on disk is touched);
//  2. run the search, sort, delete, archive or data-protection step;
//  3. append exactly one message to the dated operation log (package oplog);
//  4. report the one-line status to the ResultSink;
//  5. journal the outcome to the history repository, when one is configured.
//
// Failures after validation are reported as status 500 and carried in
// Outcome.Err. Batch operations (sort, delete) keep whatever they managed
// before an error and report those files.
package services
