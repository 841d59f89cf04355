// Package finbook provides the core engine of a personal finance ledger:
// accounts, categories, transactions, transfers and budgets over an
// in-memory, single-writer store. It is designed to be local-first and
// auditable, with every derived value recomputable from the transaction list.
//
// The core functionalities include:
//   - Entity Management: Accounts, a two-level category tree, monthly budgets
//     and validated mutations returning machine-readable error codes.
//   - Transaction Reconciliation: Batch imports with automatic transfer-pair
//     detection, pending-transaction promotion and correlation-id
//     deduplication.
//   - Balance Computation: Full-replay balance recomputation with per-step
//     cent rounding, plus dated balance and monthly in/out queries.
//   - Querying: Typed column filters, stable sorting and pagination over the
//     transaction list.
//   - Data Persistence: A single canonical JSON snapshot with stable field
//     order, including on-load migration of legacy documents.
//
// This package serves as the foundational logic for the `fbk` command-line
// tool, ensuring that all operations are consistent and based on a single
// source of truth.
package finbook
