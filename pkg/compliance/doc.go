// Package compliance rejects thruster and sensor layouts that the WAM-V xacro
// macros cannot accept. Checks are pure predicates over a layout.Source: a
// cheap entry count check and a per entry parameter check that reports the
// first violation in declaration order.
package compliance
