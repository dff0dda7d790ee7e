// Package render turns HTML reports into PDF documents with headless Chrome.
package render

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"pcbuild/internal/config"
)

// ChromeRenderer prints HTML to PDF. The browser is launched on first use
// and shared by all renders until Close.
type ChromeRenderer struct {
	cfg    config.ChromeConfig
	logger *zap.Logger

	mu      sync.Mutex
	current *session
}

// session is one launched browser. A retired session is shut down once its
// last in-flight render releases it.
type session struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
	active   int
	retired  bool
	closed   bool
}

func (s *session) close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var err error
	if s.browser != nil {
		err = s.browser.Close()
	}
	if s.launcher != nil {
		s.launcher.Kill()
		s.launcher.Cleanup()
	}
	return err
}

func NewChromeRenderer(cfg config.ChromeConfig, logger *zap.Logger) *ChromeRenderer {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &ChromeRenderer{cfg: cfg, logger: logger}
}

// acquire returns a live session and counts the caller as in flight. Every
// successful acquire must be paired with release.
func (r *ChromeRenderer) acquire() (*session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if s := r.current; s != nil {
		if _, err := s.browser.Version(); err == nil {
			s.active++
			return s, nil
		}
		r.logger.Warn("stale browser connection, relaunching", zap.Int("in_flight", s.active))
		r.retireLocked(s)
	}

	l := launcher.New().Headless(true)
	if r.cfg.Bin != "" {
		l = l.Bin(r.cfg.Bin)
	}
	if r.cfg.NoSandbox {
		l = l.NoSandbox(true)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, eris.Wrap(err, "launch chrome")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, eris.Wrap(err, "connect to chrome")
	}

	s := &session{launcher: l, browser: browser, active: 1}
	r.current = s
	r.logger.Info("chrome started", zap.String("control_url", controlURL))
	return s, nil
}

func (r *ChromeRenderer) release(s *session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s.active--
	if s.retired && s.active == 0 {
		if err := s.close(); err != nil {
			r.logger.Debug("close retired browser", zap.Error(err))
		}
	}
}

// retireLocked detaches s from the renderer. It is closed now when idle,
// otherwise by the last release.
func (r *ChromeRenderer) retireLocked(s *session) error {
	if r.current == s {
		r.current = nil
	}
	s.retired = true
	if s.active > 0 {
		return nil
	}
	return s.close()
}

// RenderPDF loads html into a fresh tab and prints it using the page's own
// CSS page size.
func (r *ChromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	s, err := r.acquire()
	if err != nil {
		return nil, err
	}
	defer r.release(s)

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Timeout)
	defer cancel()

	page, err := s.browser.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, eris.Wrap(err, "open page")
	}
	defer func() {
		if cerr := page.Close(); cerr != nil {
			r.logger.Debug("close page", zap.Error(cerr))
		}
	}()

	p := page.Context(ctx)

	if err := p.SetDocumentContent(html); err != nil {
		return nil, eris.Wrap(err, "set document content")
	}
	if err := p.WaitLoad(); err != nil {
		return nil, eris.Wrap(err, "wait for load")
	}

	stream, err := p.PDF(&proto.PagePrintToPDF{
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, eris.Wrap(err, "print to pdf")
	}

	pdf, err := io.ReadAll(stream)
	if err != nil {
		return nil, eris.Wrap(err, "read pdf stream")
	}
	return pdf, nil
}

// Close shuts the browser down once in-flight renders finish. It is safe to
// call more than once.
func (r *ChromeRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current == nil {
		return nil
	}
	return r.retireLocked(r.current)
}
