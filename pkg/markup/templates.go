package markup

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// Default companion includes declared by the boilerplate.
const (
	ThrusterCompanion     = "$(find wamv_description)/urdf/thrusters/engine.xacro"
	GazeboThrustCompanion = "$(find wamv_gazebo)/urdf/thruster_layouts/wamv_gazebo_thruster_config.xacro"
)

// Pair names a boilerplate pair.
type Pair string

const (
	// PairThruster opens the thruster document; its bottom is empty because
	// the gazebo thrust block closes the robot element.
	PairThruster Pair = "thruster"
	// PairGazeboThrust wraps the per thruster plugin configuration.
	PairGazeboThrust Pair = "gazebo_thrust"
	// PairSensor wraps sensor macros inside the yaml_sensors macro.
	PairSensor Pair = "sensor"
)

type pairFiles struct {
	top    string
	bottom string
}

var pairs = map[Pair]pairFiles{
	PairThruster:     {top: "thruster_top.tpl"},
	PairGazeboThrust: {top: "gazebo_thrust_top.tpl", bottom: "gazebo_thrust_bottom.tpl"},
	PairSensor:       {top: "sensor_top.tpl", bottom: "sensor_bottom.tpl"},
}

// TemplatesFS exposes the embedded boilerplate templates so callers can copy
// and adjust them.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// TemplateOption configures NewTemplates.
type TemplateOption func(*templateConfig)

type templateConfig struct {
	files fs.FS
}

// WithTemplateFS replaces the embedded templates. The filesystem must provide
// every file the built-in pairs reference.
func WithTemplateFS(files fs.FS) TemplateOption {
	return func(cfg *templateConfig) {
		cfg.files = files
	}
}

// Templates renders boilerplate pairs from pongo2 templates. A pair is
// parameterised only by the companion include it declares.
type Templates struct {
	parsed map[string]*pongo2.Template
}

// NewTemplates parses every boilerplate template up front.
func NewTemplates(options ...TemplateOption) (*Templates, error) {
	cfg := &templateConfig{files: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	if cfg.files == nil {
		return nil, errors.New("markup: template filesystem is nil")
	}

	set := pongo2.NewSet("wamvgen", pongo2.NewFSLoader(cfg.files))
	t := &Templates{parsed: make(map[string]*pongo2.Template)}
	for _, files := range pairs {
		for _, name := range []string{files.top, files.bottom} {
			if name == "" {
				continue
			}
			if _, done := t.parsed[name]; done {
				continue
			}
			tpl, err := set.FromFile(name)
			if err != nil {
				return nil, fmt.Errorf("markup: parse template %s: %w", name, err)
			}
			t.parsed[name] = tpl
		}
	}
	return t, nil
}

// Boilerplate renders the named pair. An empty companion omits the include.
func (t *Templates) Boilerplate(pair Pair, companion string) (Boilerplate, error) {
	files, ok := pairs[pair]
	if !ok {
		return Boilerplate{}, fmt.Errorf("markup: unknown boilerplate pair %q", pair)
	}
	ctx := pongo2.Context{"companion": companion}

	top, err := t.render(files.top, ctx)
	if err != nil {
		return Boilerplate{}, err
	}
	bottom, err := t.render(files.bottom, ctx)
	if err != nil {
		return Boilerplate{}, err
	}
	return Boilerplate{Top: top, Bottom: bottom}, nil
}

func (t *Templates) render(name string, ctx pongo2.Context) (string, error) {
	if name == "" {
		return "", nil
	}
	tpl, ok := t.parsed[name]
	if !ok {
		return "", fmt.Errorf("markup: template %s not loaded", name)
	}
	out, err := tpl.Execute(ctx)
	if err != nil {
		return "", fmt.Errorf("markup: render %s: %w", name, err)
	}
	return out, nil
}
