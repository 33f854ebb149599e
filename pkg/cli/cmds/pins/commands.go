package pins

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/firmata.go/pkg/cli/sh"
	"github.com/robotalks/firmata.go/pkg/firmata"
)

// DigitalResult is the JSON output of a digital pin.
type DigitalResult struct {
	Pin   int  `json:"pin"`
	Value int  `json:"value"`
	High  bool `json:"high"`
}

// AnalogResult is the JSON output of an analog pin.
type AnalogResult struct {
	Pin   int `json:"pin"`
	Value int `json:"value"`
}

// PinsResult is the JSON output of all pins.
type PinsResult struct {
	Digital []int `json:"digital"`
	Analog  []int `json:"analog"`
}

func parsePin(c *ishell.Context, kind firmata.PinKind) (int, bool) {
	if len(c.Args) < 1 {
		c.Err(fmt.Errorf("PIN required"))
		return 0, false
	}
	pin, err := strconv.Atoi(c.Args[0])
	if err != nil {
		c.Err(fmt.Errorf("Invalid PIN: %v", err))
		return 0, false
	}
	if err := kind.Check(pin); err != nil {
		c.Err(err)
		return 0, false
	}
	return pin, true
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "1", "on", "high", "true":
		return true, nil
	case "0", "off", "low", "false":
		return false, nil
	}
	return false, fmt.Errorf("expect on or off: %q", s)
}

func formatPins(snap firmata.Snapshot) string {
	var w strings.Builder
	w.WriteString("digital:")
	for port := 0; port < firmata.DigitalPins/firmata.PinsPerPort; port++ {
		w.WriteByte(' ')
		for n := 0; n < firmata.PinsPerPort; n++ {
			w.WriteByte(byte('0' + snap.Digital[port*firmata.PinsPerPort+n].Bit()))
		}
	}
	w.WriteString("\nanalog:")
	for _, v := range snap.Analog {
		fmt.Fprintf(&w, " %d", v)
	}
	return w.String()
}

var (
	// ModeCmd sets the mode of a pin.
	ModeCmd = ishell.Cmd{
		Name:    "mode",
		Aliases: []string{"m"},
		Help:    "PIN input|output|analog|pwm|servo",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, firmata.KindDigital)
			if !ok {
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("MODE required"))
				return
			}
			mode, err := firmata.ParsePinMode(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Check(c, sh.ShellFrom(c).Board.SetPinMode(pin, mode))
		}),
	}

	// DigitalWriteCmd writes a digital pin.
	DigitalWriteCmd = ishell.Cmd{
		Name:    "dwrite",
		Aliases: []string{"dw"},
		Help:    "PIN 0|1",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, firmata.KindDigital)
			if !ok {
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			high, err := parseOnOff(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			state := firmata.Low
			if high {
				state = firmata.High
			}
			sh.Check(c, sh.ShellFrom(c).Board.DigitalWrite(pin, state))
		}),
	}

	// AnalogWriteCmd writes an analog pin.
	AnalogWriteCmd = ishell.Cmd{
		Name:    "awrite",
		Aliases: []string{"aw"},
		Help:    "PIN VALUE",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, firmata.KindAnalog)
			if !ok {
				return
			}
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("VALUE required"))
				return
			}
			val, err := strconv.Atoi(c.Args[1])
			if err != nil {
				c.Err(fmt.Errorf("Invalid VALUE: %v", err))
				return
			}
			sh.Check(c, sh.ShellFrom(c).Board.AnalogWrite(pin, val))
		}),
	}

	// DigitalReadCmd prints the last reported state of a digital pin.
	DigitalReadCmd = ishell.Cmd{
		Name:    "dread",
		Aliases: []string{"dr"},
		Help:    "PIN",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, firmata.KindDigital)
			if !ok {
				return
			}
			state, err := sh.ShellFrom(c).Board.DigitalRead(pin)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Result(c, &DigitalResult{Pin: pin, Value: state.Int(), High: state == firmata.High},
				strconv.Itoa(state.Int()))
		}),
	}

	// AnalogReadCmd prints the last reported value of an analog pin.
	AnalogReadCmd = ishell.Cmd{
		Name:    "aread",
		Aliases: []string{"ar"},
		Help:    "PIN",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			pin, ok := parsePin(c, firmata.KindAnalog)
			if !ok {
				return
			}
			val, err := sh.ShellFrom(c).Board.AnalogRead(pin)
			if err != nil {
				c.Err(err)
				return
			}
			sh.Result(c, &AnalogResult{Pin: pin, Value: int(val)}, strconv.Itoa(int(val)))
		}),
	}

	// ReportCmd enables or disables reporting of a pin.
	ReportCmd = ishell.Cmd{
		Name:    "report",
		Aliases: []string{"r"},
		Help:    "digital|analog PIN on|off",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 3 {
				c.Err(fmt.Errorf("KIND PIN on|off required"))
				return
			}
			var kind firmata.PinKind
			switch strings.ToLower(c.Args[0]) {
			case "digital", "d":
				kind = firmata.KindDigital
			case "analog", "a":
				kind = firmata.KindAnalog
			default:
				c.Err(fmt.Errorf("Invalid KIND: %q", c.Args[0]))
				return
			}
			c.Args = c.Args[1:]
			pin, ok := parsePin(c, kind)
			if !ok {
				return
			}
			enable, err := parseOnOff(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			sh.Check(c, sh.ShellFrom(c).Board.SetReporting(pin, kind, enable))
		}),
	}

	// PinsCmd prints all pins.
	PinsCmd = ishell.Cmd{
		Name:    "pins",
		Aliases: []string{"p"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			snap, err := sh.ShellFrom(c).Board.Snapshot()
			if err != nil {
				c.Err(err)
				return
			}
			res := &PinsResult{
				Digital: make([]int, len(snap.Digital)),
				Analog:  make([]int, len(snap.Analog)),
			}
			for n, st := range snap.Digital {
				res.Digital[n] = st.Int()
			}
			for n, v := range snap.Analog {
				res.Analog[n] = int(v)
			}
			sh.Result(c, res, formatPins(snap))
		}),
	}

	// SysexCmd sends a sysex command.
	SysexCmd = ishell.Cmd{
		Name: "sysex",
		Help: "CMD [BYTE...]",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("CMD required"))
				return
			}
			data := make([]byte, len(c.Args))
			for n, arg := range c.Args {
				v, err := strconv.ParseUint(arg, 0, 7)
				if err != nil {
					c.Err(fmt.Errorf("Invalid byte %q: %v", arg, err))
					return
				}
				data[n] = byte(v)
			}
			sh.Check(c, sh.ShellFrom(c).Board.SendSysex(data[0], data[1:]))
		}),
	}
)

func init() {
	sh.AddCmds(
		&ModeCmd,
		&DigitalWriteCmd,
		&AnalogWriteCmd,
		&DigitalReadCmd,
		&AnalogReadCmd,
		&ReportCmd,
		&PinsCmd,
		&SysexCmd,
	)
}
