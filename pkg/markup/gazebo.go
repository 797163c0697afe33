package markup

import (
	"github.com/goliatone/go-wamvgen/pkg/layout"
)

// GazeboThrusterConfigMacro configures one thruster inside the gazebo thrust
// plugin block.
const GazeboThrusterConfigMacro = "wamv_gazebo_thruster_config"

// GazeboThrusterConfig derives the plugin configuration entries for a
// validated thruster layout: one wamv_gazebo_thruster_config per thruster,
// named after its prefix.
func GazeboThrusterConfig(src *layout.Source) (*layout.Source, error) {
	entries := src.Entries()
	out := make([]layout.Entry, 0, len(entries))
	for _, entry := range entries {
		name := entry.Key
		if prefix, ok := entry.Lookup("prefix"); ok && !prefix.IsRecord() {
			name = prefix.Scalar
		}
		out = append(out, layout.Entry{
			Key:        entry.Key,
			Macro:      GazeboThrusterConfigMacro,
			Attributes: []layout.Attribute{layout.Attr("name", layout.String(name))},
		})
	}
	return layout.NewSource(src.ID(), out...)
}
