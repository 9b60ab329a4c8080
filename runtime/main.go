package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"Facade3D/internal/engine"
	"Facade3D/internal/export"
	"Facade3D/internal/scene"
)

var (
	columns = flag.Int("columns", 10, "facade grid columns")
	rows    = flag.Int("rows", 6, "facade grid rows")
	seed    = flag.Int("seed", 1, "facade seed")
	preset  = flag.String("preset", string(scene.Daylight), "lighting preset: daylight, golden or overcast")

	exportFile   = flag.String("export", "", "render one still to this PNG file and exit (headless)")
	exportWidth  = flag.Int("export-width", 7680, "still width in pixels")
	exportHeight = flag.Int("export-height", 4320, "still height in pixels")
)

func main() {
	runtime.LockOSThread()
	flag.Parse()

	headless := *exportFile != ""
	studio := newStudio(headless)

	if headless {
		if err := studio.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "facade3d: %v\n", err)
			os.Exit(1)
		}
		defer studio.Cleanup()
		if err := exportStill(studio); err != nil {
			fmt.Fprintf(os.Stderr, "facade3d: %v\n", err)
			os.Exit(1)
		}
		return
	}

	studio.Run(-1, -1)
}

func newStudio(headless bool) *engine.Studio {
	kind := engine.OPENGL
	if headless {
		kind = engine.SOFTWARE
	}
	studio := engine.NewStudio(kind)
	studio.Configure(*columns, *rows, *seed)
	if err := studio.SetPreset(scene.PresetID(*preset)); err != nil {
		fmt.Fprintf(os.Stderr, "facade3d: %v\n", err)
		os.Exit(2)
	}
	return studio
}

func exportStill(studio *engine.Studio) error {
	handle, err := studio.RenderHighRes(int32(*exportWidth), int32(*exportHeight), 1)
	if err != nil {
		return err
	}
	if err := writeHandle(handle, *exportFile); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%dx%d, %d bytes)\n", *exportFile, handle.Width, handle.Height, len(handle.Data))
	return nil
}

func writeHandle(handle *export.ImageHandle, path string) error {
	return os.WriteFile(path, handle.Data, 0o644)
}
