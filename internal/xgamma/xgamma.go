// Package xgamma sets per-screen gamma correction on an X11 display using
// the XFree86-VidModeExtension.
package xgamma

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xf86vidmode"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/dariost/XRainbow/internal/rainbow"
)

// Gamma values accepted by the X server.
const (
	GammaMin = 0.1
	GammaMax = 10.0
)

var channelNames = [3]string{"red", "green", "blue"}

// Display owns a connection to an X server and applies gamma triples to one
// screen. It is not safe for concurrent use; SetGamma and Close must be
// issued sequentially.
type Display struct {
	conn   *xgb.Conn
	screen uint16
	logger *slog.Logger
	closed bool
}

// Open connects to the given X display (empty for $DISPLAY) and initializes
// the vidmode extension. A negative screen selects the display's default
// screen. If logger is not nil, it is used for debug logs from this package.
func Open(display string, screen int, logger *slog.Logger) (*Display, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, fmt.Errorf("open display: %w", err)
	}

	if err := xf86vidmode.Init(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("init vidmode extension: %w", err)
	}

	if screen < 0 {
		screen = conn.DefaultScreen
	}
	if n := len(xproto.Setup(conn).Roots); screen >= n {
		conn.Close()
		return nil, fmt.Errorf("screen %d out of range: display has %d screen(s)", screen, n)
	}

	d := &Display{conn: conn, screen: uint16(screen), logger: logger}

	if v, err := xf86vidmode.QueryVersion(conn).Reply(); err == nil {
		logger.Debug("xgamma: vidmode extension", "major", v.MajorVersion, "minor", v.MinorVersion, "screen", screen)
	}
	if g, err := xf86vidmode.GetGamma(conn, d.screen).Reply(); err == nil {
		logger.Debug("xgamma: gamma at startup",
			"red", wireToGamma(g.Red), "green", wireToGamma(g.Green), "blue", wireToGamma(g.Blue))
	}

	return d, nil
}

// SetGamma applies the triple as the screen's gamma correction. The request
// is checked, so it has round-tripped to the server by the time SetGamma
// returns. Channels outside [GammaMin, GammaMax] indicate a broken caller
// and are rejected before touching the connection.
func (d *Display) SetGamma(c rainbow.Triple) error {
	for i, v := range c {
		if v < GammaMin || v > GammaMax {
			return fmt.Errorf("%s gamma %g out of range [%g, %g]", channelNames[i], v, GammaMin, GammaMax)
		}
	}
	if err := xf86vidmode.SetGammaChecked(d.conn, d.screen,
		gammaToWire(c[0]), gammaToWire(c[1]), gammaToWire(c[2])).Check(); err != nil {
		return fmt.Errorf("set gamma: %w", err)
	}
	return nil
}

// Close restores neutral gamma, then releases the connection. Calling it
// more than once is a no-op.
func (d *Display) Close() error {
	if d.closed {
		return nil
	}
	d.closed = true
	err := d.SetGamma(rainbow.Neutral)
	d.conn.Close()
	if err != nil {
		return fmt.Errorf("restore neutral gamma: %w", err)
	}
	d.logger.Debug("xgamma: gamma restored, connection closed")
	return nil
}

// Vidmode gamma values are scaled by 10000 on the wire; the server divides
// on receipt and rejects results outside [0.1, 10.0].

func gammaToWire(v float64) uint32 {
	return uint32(v*10000 + 0.5)
}

func wireToGamma(v uint32) float64 {
	return float64(v) / 10000
}
