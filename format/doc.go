// Package format turns ranked retrieval hits into user-facing response text.
//
// Hits are partitioned into three temporal categories in a fixed presentation
// order: date-specific events first, weekday-recurring events second, and
// appointment-based or daily events last. Within each category events sort by
// ascending start time; listings without a parseable time keep their
// retrieval rank at the end.
//
// The rendered shape depends on the query's specificity. Broad queries get a
// compact numbered list with related listings merged by shared contact or
// title. Specific queries get one fully structured block per event (When,
// Where, Contribution, Contact with a derived WhatsApp click-to-chat link,
// Note, and an interactive details reference).
//
// Rendering is deterministic and side-effect free.
package format
