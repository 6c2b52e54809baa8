// Package folio tracks a portfolio of financial assets as a ledger of
// discrete operations (buy, sell, dividend, split) and derives, on demand,
// each asset's current holding, its money-weighted return, its valuation
// history, and portfolio-level rollups.
//
// The operation log is the source of truth. A [Book] holds the normalized
// log; a [Session] replays it against an external [PriceProvider] to
// produce [AssetSummary] and [PortfolioSummary] views. Derived artifacts
// are computed lazily and memoized under a hash of the book's contents.
package folio
