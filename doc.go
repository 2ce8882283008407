/*
Package vesting defines the interfaces used throughout the token streaming
chain, such as: storage, transactions, handlers and identities.

It also contains helpers to work with the execution context (block height,
chain id and logger). Look into this package to get a brief overview of the
design decisions made around interfaces and extension building blocks. The
token streaming escrow itself lives in x/stream, value transfer in x/cash.
*/
package vesting
