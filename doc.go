// Package pocketbook implements a single-user personal finance ledger.
//
// The whole state of the application is one [Book]: an optional registered
// user, two running cash balances (hand and bank), and the list of recorded
// transactions, newest first. Transactions come in four kinds: credits,
// debits, and peer-to-peer loans (lend and borrow). Loans stay open until
// they are settled, possibly through a different cash channel than the one
// they were disbursed from.
//
// The stored balances are a materialized cache of the transaction history:
// every mutation (add, edit, delete, settle) keeps the cache in sync by
// applying the exact inverse of a transaction's effect before applying a new
// one. [Book.ComputedBalance] replays the history from scratch and is the
// reference the cache is checked against.
//
// A Book is persisted as a single JSON document through a [Store]. The
// package assumes a single writer: commands read the document, mutate it in
// memory and write it back whole, with no locking. Sharing one book file
// between concurrent processes is not supported.
package pocketbook
