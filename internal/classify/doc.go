// Package classify turns closed text tracks into a per-strategy verdict.
// Each track lands in exactly one category (subtitle, static overlay,
// screencast, ambiguous) via priority-ordered threshold rules, and the
// categorized set yields a has-subtitles decision with confidence and reason.
package classify
