// Package core implements the bulk-ingestion pipeline: CSV parsing,
// bounded-concurrency replication of rows into the hospital directory,
// per-row outcome aggregation, and batch registration.
//
// This package has no HTTP-handler dependencies and can be driven by web
// handlers, CLI tools, or tests without modification.
//
// # Pipeline
//
// One bulk upload flows through [Service.Ingest]:
//
//  1. The raw bytes are parsed by [ParseCSV] into normalized creation
//     requests (header and blank rows dropped, cells trimmed).
//  2. Ingestion-level gates reject the upload before any network work:
//     wrong file extension, zero rows, or too many rows.
//  3. A fresh batch ID is generated and the dispatcher fans the rows out
//     to the directory's create endpoint under a concurrency ceiling.
//     Each row is validated, attempted at most twice, and always yields a
//     [RowOutcome]; a row's failure never aborts its siblings.
//  4. If at least one row was created, one best-effort batch activation
//     call is issued after all rows have finished.
//  5. The created hospital IDs are saved in the batch registry under the
//     batch ID, and the aggregate [BulkResult] is returned.
//
// Outcomes are collected in completion order; every outcome carries its
// 1-based input row index so callers can re-sort deterministically.
package core
