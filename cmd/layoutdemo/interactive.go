package main

import (
	"context"
	"fmt"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"layoutkit/internal/tui"
)

// logFile is where the interactive demo logs, since the terminal is
// taken by the alt screen.
const logFile = "layoutdemo.log"

func runInteractive(ctx context.Context, f flags) error {
	out := &lazyFile{path: logFile}
	defer out.Close()

	s, err := openSession(ctx, f, out)
	if err != nil {
		return err
	}
	defer s.close()

	m, err := tui.NewAppModel(s.cfg, s.logger, s.options...)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m.AsTeaModel(),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program: %w", err)
	}
	return m.Err()
}

// lazyFile creates its file on the first write, so quiet runs leave
// nothing behind.
type lazyFile struct {
	path string
	once sync.Once
	file *os.File
	err  error
}

func (l *lazyFile) Write(p []byte) (int, error) {
	l.once.Do(func() {
		l.file, l.err = os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	})
	if l.err != nil {
		return 0, l.err
	}
	return l.file.Write(p)
}

func (l *lazyFile) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
