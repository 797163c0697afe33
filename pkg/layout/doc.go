// Package layout models the thruster and sensor layout files consumed by the
// WAM-V generator. A layout is an ordered set of named entries, each carrying
// the macro it instantiates and the attributes written in the YAML file.
// Declaration order is preserved end to end so generated xacro output is
// reproducible.
package layout
