package headless

import (
	"fmt"

	"github.com/emberloop/ember/internal/render"
)

// Surface hands out numbered swapchain textures. Set AcquireErr to make acquisition fail.
type Surface struct {
	Width, Height uint32
	Configured    int
	Acquired      int
	Presented     int

	AcquireErr error
}

func NewSurface(width, height uint32) *Surface {
	return &Surface{Width: width, Height: height}
}

func (s *Surface) CurrentTexture() (render.SurfaceTexture, error) {
	if s.AcquireErr != nil {
		return nil, s.AcquireErr
	}
	s.Acquired++
	return &surfaceTexture{surface: s, view: NewHandle(fmt.Sprintf("swapchain#%d", s.Acquired))}, nil
}

func (s *Surface) Configure(width, height uint32) error {
	if width == 0 || height == 0 {
		return fmt.Errorf("configure surface: invalid size %dx%d", width, height)
	}
	s.Width, s.Height = width, height
	s.Configured++
	return nil
}

type surfaceTexture struct {
	surface *Surface
	view    *Handle
}

func (t *surfaceTexture) View() render.TextureView { return t.view }

func (t *surfaceTexture) Present() { t.surface.Presented++ }
