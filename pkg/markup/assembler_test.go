package markup_test

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-wamvgen/pkg/layout"
	"github.com/goliatone/go-wamvgen/pkg/markup"
)

func poseEntry(prefix, y string) layout.Entry {
	return layout.Entry{
		Key:   prefix,
		Macro: "engine",
		Attributes: []layout.Attribute{
			layout.Attr("prefix", layout.String(prefix)),
			layout.Attr("pose", layout.Record(
				layout.Attr("x", layout.Number("-2.37")),
				layout.Attr("y", layout.Number(y)),
				layout.Attr("z", layout.Number("0.31")),
				layout.Attr("roll", layout.Number("0")),
				layout.Attr("pitch", layout.Number("0")),
				layout.Attr("yaw", layout.Number("0")),
			)),
		},
	}
}

func mustSource(t *testing.T, entries ...layout.Entry) *layout.Source {
	t.Helper()
	src, err := layout.NewSource("layout.yaml", entries...)
	if err != nil {
		t.Fatalf("new source: %v", err)
	}
	return src
}

func TestAssemble_LeftRightThrusters(t *testing.T) {
	src := mustSource(t, poseEntry("left", "1.02"), poseEntry("right", "-1.02"))
	bp := markup.Boilerplate{Top: "<robot xmlns:xacro=\"http://ros.org/wiki/xacro\">\n", Bottom: "</robot>\n"}

	got := markup.Assemble(src, bp)

	want := bp.Top +
		`  <xacro:engine prefix="left" x="-2.37" y="1.02" z="0.31" roll="0" pitch="0" yaw="0" />` + "\n" +
		`  <xacro:engine prefix="right" x="-2.37" y="-1.02" z="0.31" roll="0" pitch="0" yaw="0" />` + "\n" +
		bp.Bottom
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("document mismatch (-want +got):\n%s", diff)
	}

	if !strings.HasPrefix(got, bp.Top) || !strings.HasSuffix(got, bp.Bottom) {
		t.Fatalf("boilerplate not preserved")
	}
	if n := strings.Count(got, "<xacro:engine "); n != 2 {
		t.Fatalf("expected 2 macro elements, got %d", n)
	}
	for _, attr := range []string{"x", "y", "z", "roll", "pitch", "yaw"} {
		if n := strings.Count(got, " "+attr+`="`); n != 2 {
			t.Fatalf("expected attribute %s twice, got %d", attr, n)
		}
	}
	assertWellFormed(t, got)
}

func TestAssemble_IsDeterministic(t *testing.T) {
	src := mustSource(t, poseEntry("left", "1"), poseEntry("right", "-1"))
	bp := markup.Boilerplate{Top: "<a>", Bottom: "</a>"}

	first := markup.Assemble(src, bp)
	second := markup.Assemble(src, bp)
	if first != second {
		t.Fatalf("assemble is not idempotent:\n%s\n---\n%s", first, second)
	}
}

func TestAssemble_PreservesDeclarationOrder(t *testing.T) {
	var entries []layout.Entry
	names := []string{"zulu", "alpha", "mike", "bravo"}
	for _, name := range names {
		entries = append(entries, layout.Entry{
			Key:        name,
			Macro:      "wamv_camera",
			Attributes: []layout.Attribute{layout.Attr("name", layout.String(name))},
		})
	}
	got := markup.Assemble(mustSource(t, entries...), markup.Boilerplate{})

	last := -1
	for _, name := range names {
		idx := strings.Index(got, `name="`+name+`"`)
		if idx <= last {
			t.Fatalf("entry %s out of order in:\n%s", name, got)
		}
		last = idx
	}
}

func TestAssemble_MinimalElement(t *testing.T) {
	src := mustSource(t, layout.Entry{
		Key:        "p3d_wamv",
		Macro:      "wamv_p3d",
		Attributes: []layout.Attribute{layout.Attr("name", layout.String("p3d_wamv"))},
	})
	got := markup.Assemble(src, markup.Boilerplate{})
	if want := "  <xacro:wamv_p3d name=\"p3d_wamv\" />\n"; got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestAssemble_EscapesAttributeValues(t *testing.T) {
	src := mustSource(t, layout.Entry{
		Key:   `cam"1`,
		Macro: "wamv_camera",
		Attributes: []layout.Attribute{
			layout.Attr("name", layout.String(`cam"1`)),
			layout.Attr("frame", layout.String("a&b<c>")),
			layout.Attr("P", layout.String("${radians(15)}")),
		},
	})
	got := markup.Assemble(src, markup.Boilerplate{Top: "<robot xmlns:xacro=\"x\">", Bottom: "</robot>"})

	want := `  <xacro:wamv_camera name="cam&quot;1" frame="a&amp;b&lt;c&gt;" P="${radians(15)}" />`
	if !strings.Contains(got, want) {
		t.Fatalf("expected escaped element %s in:\n%s", want, got)
	}

	values := attributeValues(t, got)
	wantValues := []string{`cam"1`, "a&b<c>", "${radians(15)}"}
	if diff := cmp.Diff(wantValues, values); diff != "" {
		t.Fatalf("decoded values mismatch (-want +got):\n%s", diff)
	}
}

func TestAssembler_Options(t *testing.T) {
	src := mustSource(t, layout.Entry{
		Key:        "left",
		Macro:      "thruster",
		Attributes: []layout.Attribute{layout.Attr("name", layout.String("left"))},
	})
	a := markup.New(markup.WithIndent("\t"), markup.WithTagPrefix("gz:"))
	if got, want := a.Assemble(src, markup.Boilerplate{}), "\t<gz:thruster name=\"left\" />\n"; got != want {
		t.Fatalf("want %q got %q", want, got)
	}
}

func TestGazeboThrusterConfig(t *testing.T) {
	src := mustSource(t, poseEntry("left", "1"), poseEntry("right", "-1"))
	cfg, err := markup.GazeboThrusterConfig(src)
	if err != nil {
		t.Fatalf("gazebo config: %v", err)
	}
	got := markup.New(markup.WithIndent("")).Assemble(cfg, markup.Boilerplate{})
	want := "<xacro:wamv_gazebo_thruster_config name=\"left\" />\n<xacro:wamv_gazebo_thruster_config name=\"right\" />\n"
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("gazebo config mismatch (-want +got):\n%s", diff)
	}
}

func TestElement_String(t *testing.T) {
	el := markup.NewElement("xacro:include").Attr("filename", "a\tb\nc")
	if got, want := el.String(), `<xacro:include filename="a&#x9;b&#xA;c" />`; got != want {
		t.Fatalf("want %s got %s", want, got)
	}
}

func assertWellFormed(t *testing.T, doc string) {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		_, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("document is not well formed: %v\n%s", err, doc)
		}
	}
}

func attributeValues(t *testing.T, doc string) []string {
	t.Helper()
	var values []string
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return values
		}
		if err != nil {
			t.Fatalf("decode: %v", err)
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == "wamv_camera" {
			for _, attr := range start.Attr {
				values = append(values, attr.Value)
			}
		}
	}
}
