package source

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"strings"

	"github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"
)

// OSCAddress is the OSC address carrying MIDI messages. Arguments are
// either one blob holding the raw bytes or one to three int32 values
// (status, data1, data2).
const OSCAddress = "/midi"

// OSC receives MIDI over OSC on UDP. Every packet is one cycle; bundles are
// flattened depth first.
type OSC struct {
	conn   net.PacketConn
	server *osc.Server
	logger *slog.Logger
	done   chan struct{}

	raw   [maxCycleEvents][3]byte
	cycle [][]byte
}

// StartOSC listens on addr and feeds sink from a single goroutine.
func StartOSC(addr string, sink Sink, logger *slog.Logger) (*OSC, error) {
	conn, err := net.ListenPacket("udp", addr)
	if err != nil {
		return nil, errors.Wrap(err, "could not start osc server")
	}
	announce(conn.LocalAddr())

	o := &OSC{
		conn:   conn,
		server: &osc.Server{Addr: addr},
		logger: logger,
		done:   make(chan struct{}),
		cycle:  make([][]byte, 0, maxCycleEvents),
	}
	go o.loop(sink)
	return o, nil
}

func (o *OSC) loop(sink Sink) {
	defer close(o.done)
	defer abortOnPanic(o.logger)

	for {
		packet, err := o.server.ReceivePacket(o.conn)
		if err != nil {
			if isClosed(err) {
				return
			}
			o.logger.Error("osc: bad packet", "err", err.Error())
			continue
		}
		o.cycle = o.cycle[:0]
		o.collect(packet)
		if len(o.cycle) > 0 {
			sink.Process(o.cycle)
		}
	}
}

func (o *OSC) collect(packet osc.Packet) {
	switch p := packet.(type) {
	case *osc.Message:
		o.add(p)
	case *osc.Bundle:
		for _, m := range p.Messages {
			o.add(m)
		}
		for _, b := range p.Bundles {
			o.collect(b)
		}
	}
}

// add appends the MIDI message carried by msg. Messages for other
// addresses or with unusable arguments are skipped, including numbers
// outside 0-255. MIDI validity is left to the sink.
func (o *OSC) add(msg *osc.Message) {
	if msg == nil || msg.Address != OSCAddress || len(o.cycle) == maxCycleEvents {
		return
	}
	if len(msg.Arguments) == 1 {
		if blob, ok := msg.Arguments[0].([]byte); ok {
			o.cycle = append(o.cycle, blob)
			return
		}
	}
	if len(msg.Arguments) == 0 || len(msg.Arguments) > 3 {
		o.logger.Debug("osc: ignoring message", "address", msg.Address, "args", len(msg.Arguments))
		return
	}
	buf := &o.raw[len(o.cycle)]
	for i, arg := range msg.Arguments {
		b, ok := argByte(arg)
		if !ok {
			o.logger.Debug("osc: ignoring message", "address", msg.Address, "arg", fmt.Sprintf("%T(%v)", arg, arg))
			return
		}
		buf[i] = b
	}
	o.cycle = append(o.cycle, buf[:len(msg.Arguments)])
}

func argByte(arg interface{}) (byte, bool) {
	var v int64
	switch a := arg.(type) {
	case int32:
		v = int64(a)
	case int64:
		v = a
	case float32:
		if a < 0 || a > 255 {
			return 0, false
		}
		v = int64(a)
	default:
		return 0, false
	}
	if v < 0 || v > 255 {
		return 0, false
	}
	return byte(v), true
}

// Close stops the listener and waits for the receive loop to exit.
func (o *OSC) Close() error {
	err := o.conn.Close()
	<-o.done
	if err != nil {
		return errors.Wrap(err, "could not stop osc server")
	}
	return nil
}

func isClosed(err error) bool {
	return errors.Is(err, net.ErrClosed) || strings.Contains(err.Error(), "use of closed network connection")
}

// announce tells the operator where to send OSC when listening on all
// interfaces.
func announce(addr net.Addr) {
	udp, ok := addr.(*net.UDPAddr)
	if !ok || !udp.IP.IsUnspecified() {
		fmt.Fprintln(os.Stderr, "Listening for OSC on UDP", addr)
		return
	}
	ip, err := getLocalIPAddress()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Listening for OSC on UDP", addr)
		return
	}
	fmt.Fprintf(os.Stderr, "Listening for OSC on UDP %v:%v\n", ip, udp.Port)
}

func getLocalIPAddress() (string, error) {
	interfaces, err := net.Interfaces()
	if err != nil {
		return "", errors.Wrap(err, "could not get network interfaces")
	}
	for _, iface := range interfaces {
		if iface.Flags&net.FlagUp == 0 || iface.Flags&net.FlagLoopback != 0 {
			continue
		}
		addresses, err := iface.Addrs()
		if err != nil {
			return "", errors.Wrapf(err, "could not get network addresses for interface %v", iface.Name)
		}
		for _, addr := range addresses {
			var ip net.IP
			switch v := addr.(type) {
			case *net.IPNet:
				ip = v.IP
			case *net.IPAddr:
				ip = v.IP
			}
			if ip == nil || ip.To4() == nil {
				continue
			}
			return ip.String(), nil
		}
	}
	return "", errors.New("could not find any network interfaces")
}
