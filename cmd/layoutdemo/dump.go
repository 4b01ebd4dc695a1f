package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"layoutkit/internal/tui"
	"layoutkit/internal/ui"
)

func dumpCmd(f *flags) *cobra.Command {
	var (
		width, height float64
		text          bool
	)

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Lay out the demo once and print every widget's bounds",
		Long: `Lay out the demo at a fixed window size without a terminal and print
the widget tree as JSON, one object per widget in draw order. With --text
the painted frame is printed instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd.Context(), *f, os.Stderr)
			if err != nil {
				return err
			}
			defer s.close()

			if cmd.Flags().Changed("width") {
				s.cfg.Window.Width = width
			}
			if cmd.Flags().Changed("height") {
				s.cfg.Window.Height = height
			}
			if err := s.cfg.Validate(); err != nil {
				return err
			}
			return dump(cmd.OutOrStdout(), s, text)
		},
	}

	cmd.Flags().Float64Var(&width, "width", 0, "window width in cells (default from config)")
	cmd.Flags().Float64Var(&height, "height", 0, "window height in cells (default from config)")
	cmd.Flags().BoolVar(&text, "text", false, "print the painted frame instead of JSON")

	return cmd
}

func dump(w io.Writer, s *session, text bool) error {
	opts := append([]ui.Option{
		ui.WithLogger(s.logger),
		ui.WithScrollGain(s.cfg.Scroll.Gain),
	}, s.options...)
	u := ui.New(opts...)
	d, err := tui.BuildDemo(u, s.cfg.Demo)
	if err != nil {
		return err
	}
	u.Resize(s.cfg.Window.Width, s.cfg.Window.Height)
	if err := u.Process(); err != nil {
		return fmt.Errorf("layout: %w", err)
	}

	if text {
		c := tui.NewCanvas(int(s.cfg.Window.Width), int(s.cfg.Window.Height))
		tui.Paint(c, u, d.Decoration)
		for _, line := range c.Lines() {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(u.Snapshot())
}
