// Package markup turns validated layouts into xacro XML. Each entry becomes a
// self closing macro invocation whose attributes are escaped by the Element
// builder, wrapped in boilerplate rendered from embedded pongo2 templates.
package markup
