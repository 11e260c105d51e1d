package bubbletea

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	patchfix "github.com/fourlexboehm/patchfix"
)

// Compile-time interface verification.
var _ patchfix.Viewer = (*Viewer)(nil)

// Viewer displays fix previews in a full-screen terminal program.
type Viewer struct {
	opts []Option
}

// NewViewer creates a Viewer. Options are applied to every preview model
// it creates.
func NewViewer(opts ...Option) *Viewer {
	return &Viewer{opts: opts}
}

// View displays the preview and blocks until the user exits.
func (v *Viewer) View(ctx context.Context, p *patchfix.Preview) error {
	prog := tea.NewProgram(NewModel(p, v.opts...),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)
	if _, err := prog.Run(); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}
