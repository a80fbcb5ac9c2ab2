// Package match resolves intake (primary) records against appointment
// (secondary) records that share no reliable common key.
//
// A run builds lookup indices over the secondary collection and then applies a
// tiered fallback strategy to every primary record:
//
//  1. ExactReference: the primary ID equals a secondary back-reference ID.
//  2. Email: normalized emails are equal.
//  3. Phone: normalized phone numbers are equal.
//  4. NameDate: a full scan for secondary records within a date window whose
//     name shares a token with the primary name (or whose email local part
//     overlaps it).
//
// The first tier that yields any candidate wins and the remaining tiers are not
// consulted. NameDate trades precision for recall and should be presented to
// callers as lower confidence than the first three tiers.
//
// # Lifecycle
//
// The engine is pure computation over in-memory collections. Every call to
// Engine.Run builds its index from scratch; nothing survives the call. Matching
// distinct primary records touches only read-only shared state, so Options.Workers
// may spread a run over a bounded worker pool without changing the result order.
//
// # Usage
//
//	engine, err := match.New(match.DefaultOptions(), logger)
//	if err != nil {
//	    return err
//	}
//	report, err := engine.Run(intakes, appointments)
//	fmt.Println(report.Summary.ByEmail)
package match
