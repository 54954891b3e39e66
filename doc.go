// Package storefront implements a deterministic batch replay engine for a
// small marketplace: accounts with buy/sell/admin capabilities trade a
// catalog of listed digital goods.
//
// A run loads the prior day's registry snapshot, replays a file of
// fixed-width transaction records one at a time, and snapshots the registry
// for the next run. Record failures are classified as fatal (malformed
// record) or constraint (business rule) and reported; neither kind aborts
// the batch.
package storefront
