// Package orchestrator wires the load → comply → assemble → emit pipeline for
// thruster and sensor layouts, then runs the xacro expansion that turns the
// WAM-V gazebo description and the generated files into a URDF.
package orchestrator
