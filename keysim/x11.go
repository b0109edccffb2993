package keysim

import (
	"log/slog"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
	"github.com/jezek/xgb/xtest"
	"github.com/pkg/errors"
)

// X11 injects keys through the XTEST extension. Open it on one goroutine
// and then use it from exactly one other; it must never be driven from two
// goroutines at once.
type X11 struct {
	*Keyboard
	conn *xgb.Conn
	root xproto.Window
}

// Open connects to display, or to $DISPLAY when display is empty.
func Open(display string, logger *slog.Logger) (*X11, error) {
	if logger == nil {
		logger = slog.Default()
	}
	conn, err := xgb.NewConnDisplay(display)
	if err != nil {
		return nil, errors.Wrap(err, "could not connect to X display")
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "XTEST extension unavailable")
	}

	setup := xproto.Setup(conn)
	count := int(setup.MaxKeycode) - int(setup.MinKeycode) + 1
	reply, err := xproto.GetKeyboardMapping(conn, setup.MinKeycode, byte(count)).Reply()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "could not read keyboard mapping")
	}
	syms := make([]Keysym, len(reply.Keysyms))
	for i, s := range reply.Keysyms {
		syms[i] = Keysym(s)
	}
	keymap := NewKeymap(Keycode(setup.MinKeycode), int(reply.KeysymsPerKeycode), syms)

	x := &X11{
		conn: conn,
		root: setup.DefaultScreen(conn).Root,
	}
	x.Keyboard = NewKeyboard(keymap, x.fake)
	logger.Debug("keysim: connected", "display", display, "keysyms", keymap.Len())

	go x.drain(logger)
	return x, nil
}

// fake sends an unchecked XTEST request. Server side failures arrive
// asynchronously and are logged by drain.
func (x *X11) fake(press bool, code Keycode) error {
	typ := byte(xproto.KeyRelease)
	if press {
		typ = xproto.KeyPress
	}
	xtest.FakeInput(x.conn, typ, byte(code), 0, x.root, 0, 0, 0)
	return nil
}

func (x *X11) drain(logger *slog.Logger) {
	for {
		ev, xerr := x.conn.WaitForEvent()
		if ev == nil && xerr == nil {
			return
		}
		if xerr != nil {
			logger.Error("keysim: X error", "err", xerr.Error())
		}
	}
}

// Close disconnects from the display.
func (x *X11) Close() error {
	x.conn.Close()
	return nil
}
