// Package token implements the token lifecycle: claim construction,
// signing, and the ordered verification pipeline.
//
// Claims are built with New (merging caller options over configured
// defaults), turned into a compact JWT by a Signer, and checked by a
// Verifier which runs signature, time-window, and revocation stages in a
// fixed order, failing fast with one distinguishable reason per stage.
package token
