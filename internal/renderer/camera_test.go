package renderer

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewDefaultCamera(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	if cam == nil {
		t.Fatal("NewDefaultCamera returned nil")
	}

	if cam.Position == (mgl32.Vec3{0, 0, 0}) {
		t.Error("Camera position should not be at origin")
	}

	if cam.Fov <= 0 {
		t.Error("Camera field of view should be positive")
	}

	if cam.AspectRatio != float32(800)/float32(600) {
		t.Error("Camera aspect ratio should follow the surface")
	}
}

func TestCameraGetViewMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 5}
	cam.Front = mgl32.Vec3{0, 0, -1}
	cam.Up = mgl32.Vec3{0, 1, 0}

	view := cam.GetViewMatrix()

	if view.At(3, 3) != 1.0 {
		t.Error("View matrix should be valid (w component = 1)")
	}
}

func TestCameraGetProjectionMatrix(t *testing.T) {
	cam := NewDefaultCamera(800, 600)

	proj := cam.GetProjectionMatrix()

	if proj.At(3, 3) != 0.0 {
		t.Error("Perspective projection should have w=0 at (3,3)")
	}
}

func TestCameraSetAspectRatio(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	before := cam.GetProjectionMatrix()

	cam.SetAspectRatio(21.0 / 9.0)

	if cam.AspectRatio != 21.0/9.0 {
		t.Error("Aspect ratio should update")
	}
	if cam.GetProjectionMatrix() == before {
		t.Error("Projection should change with the aspect ratio")
	}
}

func TestCameraLookAt(t *testing.T) {
	cam := NewDefaultCamera(800, 600)
	cam.Position = mgl32.Vec3{0, 0, 10}

	cam.LookAt(mgl32.Vec3{0, 0, 0})

	front := cam.Front
	if math.Abs(float64(front.Z()+1)) > 1e-4 {
		t.Errorf("Camera should face -z after LookAt, front = %v", front)
	}
}
