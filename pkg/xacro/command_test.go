package xacro_test

import (
	"context"
	"os/exec"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kballard/go-shellquote"

	"github.com/goliatone/go-wamvgen/pkg/xacro"
)

func TestBuildCommand(t *testing.T) {
	cases := map[string]struct {
		params xacro.Params
		want   []string
	}{
		"no layouts": {
			params: xacro.Params{Target: "/tmp/wamv.urdf", Gazebo: "wamv_gazebo.urdf.xacro"},
			want:   []string{"xacro", "xacro", "--inorder", "-o", "/tmp/wamv.urdf", "wamv_gazebo.urdf.xacro"},
		},
		"thrusters only": {
			params: xacro.Params{Target: "out.urdf", Gazebo: "in.xacro", ThrusterXacro: "t.xacro"},
			want: []string{
				"xacro", "xacro", "--inorder", "-o", "out.urdf", "in.xacro",
				"yaml_thruster_generation:=true", "thruster_xacro_file:=t.xacro",
			},
		},
		"both layouts": {
			params: xacro.Params{Target: "out.urdf", Gazebo: "in.xacro", ThrusterXacro: "t.xacro", SensorXacro: "s.xacro"},
			want: []string{
				"xacro", "xacro", "--inorder", "-o", "out.urdf", "in.xacro",
				"yaml_thruster_generation:=true", "thruster_xacro_file:=t.xacro",
				"yaml_sensor_generation:=true", "sensor_xacro_file:=s.xacro",
			},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cmd, err := xacro.BuildCommand(tc.params)
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if cmd.Name != "rosrun" {
				t.Fatalf("unexpected program %q", cmd.Name)
			}
			if diff := cmp.Diff(tc.want, cmd.Args); diff != "" {
				t.Fatalf("args mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildCommand_RequiresTargets(t *testing.T) {
	if _, err := xacro.BuildCommand(xacro.Params{Gazebo: "in.xacro"}); err == nil {
		t.Fatalf("expected missing target error")
	}
	if _, err := xacro.BuildCommand(xacro.Params{Target: "out.urdf", Gazebo: " "}); err == nil {
		t.Fatalf("expected missing gazebo error")
	}
}

func TestCommand_String(t *testing.T) {
	cmd := xacro.Command{Name: "rosrun", Args: []string{"-o", "my robot.urdf", "it's", "", "sensor_xacro_file:=$HOME/s.xacro"}}
	words, err := shellquote.Split(cmd.String())
	if err != nil {
		t.Fatalf("split %q: %v", cmd.String(), err)
	}
	if diff := cmp.Diff(append([]string{cmd.Name}, cmd.Args...), words); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestExecRunner_ReturnsSubprocessError(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	err := xacro.ExecRunner{}.Run(context.Background(), xacro.Command{Name: "false"})
	if _, ok := err.(*exec.ExitError); !ok {
		t.Fatalf("expected *exec.ExitError, got %T: %v", err, err)
	}
}
