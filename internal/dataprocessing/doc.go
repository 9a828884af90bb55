// Package dataprocessing is the normalization and aggregation engine for
// brokerage delivery-order exports.
//
// It contains three components:
//
// Column mappers (schema.go): map one decoded tab-separated line onto a
// canonical delivery order, either through the fixed 20-column HTSC layout
// or through a title-driven layout where columns are located by header-name
// synonyms.
//
// Classifier: maps the vendor's free-text business-type tokens onto the
// trade taxonomy (buy, sell, transfer in, transfer out, ignore).
//
// Ledger: the shared running position per security code, which settles each
// record's quantity sign and running balance and cross-checks the vendor's
// own reported remaining quantity.
package dataprocessing
