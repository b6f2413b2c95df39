// Package ingest builds the searchable content corpus from source items.
//
// The Pipeline type manages the ingestion workflow for source items, including:
//   - Validating and storing items
//   - Splitting content into token-boundary chunks
//   - Embedding chunk texts in bounded batches with retry
//   - Atomically replacing each item's stored chunks
//
// Items are processed concurrently using a worker pool. A failing item is
// logged and counted in the run report but never aborts the batch.
package ingest
