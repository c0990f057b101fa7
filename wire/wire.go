// package wire encodes indicator frames and draw commands in protobuf wire format,
// so hosts outside this process can exchange them without generated code.
package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/hujun-open/dashbook/indicator"
	"google.golang.org/protobuf/encoding/protowire"
)

var (
	ErrTruncated     = errors.New("truncated message")
	ErrWrongWireType = errors.New("unexpected wire type")
	ErrOutOfRange    = errors.New("value out of range")
)

// Message is implemented by everything the bridge codec can carry
type Message interface {
	MarshalWire() ([]byte, error)
	UnmarshalWire([]byte) error
}

// Frame field numbers
const (
	frameActiveIndex protowire.Number = iota + 1
	frameItemCount
	frameWidth
	frameHeight
	frameHasActiveItem
	frameItemLeft
	frameItemWidth
)

// DrawCommand field numbers
const (
	cmdX0 protowire.Number = iota + 1
	cmdX1
	cmdY
	cmdStrokeWidth
	cmdColor
	cmdActive
)

const (
	listCommands protowire.Number = 1
	insetsTop    protowire.Number = 1
	insetsBottom protowire.Number = 2
)

func appendFloat(b []byte, num protowire.Number, f float32) []byte {
	b = protowire.AppendTag(b, num, protowire.Fixed32Type)
	return protowire.AppendFixed32(b, math.Float32bits(f))
}

func appendSint(b []byte, num protowire.Number, v int) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeZigZag(int64(v)))
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, protowire.EncodeBool(v))
}

// field is one decoded field value, only the member matching typ is set
type field struct {
	num   protowire.Number
	typ   protowire.Type
	u64   uint64
	bytes []byte
}

// walk calls f for every field in buf
func walk(buf []byte, f func(field) error) error {
	for len(buf) > 0 {
		num, typ, n := protowire.ConsumeTag(buf)
		if n < 0 {
			return fmt.Errorf("%w: %v", ErrTruncated, protowire.ParseError(n))
		}
		buf = buf[n:]
		fl := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			fl.u64, n = protowire.ConsumeVarint(buf)
		case protowire.Fixed32Type:
			var v uint32
			v, n = protowire.ConsumeFixed32(buf)
			fl.u64 = uint64(v)
		case protowire.BytesType:
			fl.bytes, n = protowire.ConsumeBytes(buf)
		default:
			n = protowire.ConsumeFieldValue(num, typ, buf)
		}
		if n < 0 {
			return fmt.Errorf("%w: field %d: %v", ErrTruncated, num, protowire.ParseError(n))
		}
		buf = buf[n:]
		if err := f(fl); err != nil {
			return err
		}
	}
	return nil
}

func (fl field) float(want protowire.Number) (float32, error) {
	if fl.typ != protowire.Fixed32Type {
		return 0, fmt.Errorf("%w: field %d is %v", ErrWrongWireType, want, fl.typ)
	}
	return math.Float32frombits(uint32(fl.u64)), nil
}

func (fl field) sint(want protowire.Number) (int, error) {
	if fl.typ != protowire.VarintType {
		return 0, fmt.Errorf("%w: field %d is %v", ErrWrongWireType, want, fl.typ)
	}
	return int(protowire.DecodeZigZag(fl.u64)), nil
}

func (fl field) boolean(want protowire.Number) (bool, error) {
	if fl.typ != protowire.VarintType {
		return false, fmt.Errorf("%w: field %d is %v", ErrWrongWireType, want, fl.typ)
	}
	return protowire.DecodeBool(fl.u64), nil
}

// itemCount reads an item count, DeriveItemCount up to MaxItemCount
func (fl field) itemCount() (int, error) {
	v, err := fl.sint(fl.num)
	if err != nil {
		return 0, err
	}
	if v < indicator.DeriveItemCount || v > indicator.MaxItemCount {
		return 0, fmt.Errorf("%w: item count %d", ErrOutOfRange, v)
	}
	return v, nil
}

// Frame wraps indicator.Frame
type Frame struct {
	indicator.Frame
}

func (f *Frame) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendSint(b, frameActiveIndex, f.ActiveIndex)
	b = appendSint(b, frameItemCount, f.ItemCount)
	b = appendFloat(b, frameWidth, f.Width)
	b = appendFloat(b, frameHeight, f.Height)
	if f.ActiveItem != nil {
		b = appendBool(b, frameHasActiveItem, true)
		b = appendFloat(b, frameItemLeft, f.ActiveItem.Left)
		b = appendFloat(b, frameItemWidth, f.ActiveItem.Width)
	}
	return b, nil
}

func (f *Frame) UnmarshalWire(buf []byte) error {
	var (
		out     indicator.Frame
		hasItem bool
		bounds  indicator.ItemBounds
	)
	err := walk(buf, func(fl field) (err error) {
		switch fl.num {
		case frameActiveIndex:
			out.ActiveIndex, err = fl.sint(fl.num)
		case frameItemCount:
			out.ItemCount, err = fl.itemCount()
		case frameWidth:
			out.Width, err = fl.float(fl.num)
		case frameHeight:
			out.Height, err = fl.float(fl.num)
		case frameHasActiveItem:
			hasItem, err = fl.boolean(fl.num)
		case frameItemLeft:
			bounds.Left, err = fl.float(fl.num)
		case frameItemWidth:
			bounds.Width, err = fl.float(fl.num)
		}
		return
	})
	if err != nil {
		return fmt.Errorf("frame: %w", err)
	}
	if hasItem {
		out.ActiveItem = &bounds
	}
	f.Frame = out
	return nil
}

func appendCommand(b []byte, c indicator.DrawCommand) []byte {
	b = appendFloat(b, cmdX0, c.X0)
	b = appendFloat(b, cmdX1, c.X1)
	b = appendFloat(b, cmdY, c.Y)
	b = appendFloat(b, cmdStrokeWidth, c.StrokeWidth)
	b = protowire.AppendTag(b, cmdColor, protowire.Fixed32Type)
	b = protowire.AppendFixed32(b, uint32(c.Color))
	if c.Active {
		b = appendBool(b, cmdActive, true)
	}
	return b
}

func decodeCommand(buf []byte) (c indicator.DrawCommand, err error) {
	err = walk(buf, func(fl field) (err error) {
		switch fl.num {
		case cmdX0:
			c.X0, err = fl.float(fl.num)
		case cmdX1:
			c.X1, err = fl.float(fl.num)
		case cmdY:
			c.Y, err = fl.float(fl.num)
		case cmdStrokeWidth:
			c.StrokeWidth, err = fl.float(fl.num)
		case cmdColor:
			if fl.typ != protowire.Fixed32Type {
				return fmt.Errorf("%w: field %d is %v", ErrWrongWireType, fl.num, fl.typ)
			}
			c.Color = indicator.ARGB(fl.u64)
		case cmdActive:
			c.Active, err = fl.boolean(fl.num)
		}
		return
	})
	return
}

// Commands is an ordered list of draw commands
type Commands struct {
	List []indicator.DrawCommand
}

func (cl *Commands) MarshalWire() ([]byte, error) {
	var b, scratch []byte
	for _, c := range cl.List {
		scratch = appendCommand(scratch[:0], c)
		b = protowire.AppendTag(b, listCommands, protowire.BytesType)
		b = protowire.AppendBytes(b, scratch)
	}
	return b, nil
}

func (cl *Commands) UnmarshalWire(buf []byte) error {
	var list []indicator.DrawCommand
	err := walk(buf, func(fl field) error {
		if fl.num != listCommands {
			return nil
		}
		if fl.typ != protowire.BytesType {
			return fmt.Errorf("%w: field %d is %v", ErrWrongWireType, fl.num, fl.typ)
		}
		c, err := decodeCommand(fl.bytes)
		if err != nil {
			return fmt.Errorf("command %d: %w", len(list), err)
		}
		list = append(list, c)
		return nil
	})
	if err != nil {
		return fmt.Errorf("commands: %w", err)
	}
	cl.List = list
	return nil
}

// Insets wraps indicator.Insets
type Insets struct {
	indicator.Insets
}

func (in *Insets) MarshalWire() ([]byte, error) {
	var b []byte
	b = appendFloat(b, insetsTop, in.Top)
	b = appendFloat(b, insetsBottom, in.Bottom)
	return b, nil
}

func (in *Insets) UnmarshalWire(buf []byte) error {
	var out indicator.Insets
	err := walk(buf, func(fl field) (err error) {
		switch fl.num {
		case insetsTop:
			out.Top, err = fl.float(fl.num)
		case insetsBottom:
			out.Bottom, err = fl.float(fl.num)
		}
		return
	})
	if err != nil {
		return fmt.Errorf("insets: %w", err)
	}
	in.Insets = out
	return nil
}

// Empty carries nothing
type Empty struct{}

func (Empty) MarshalWire() ([]byte, error) {
	return nil, nil
}

func (*Empty) UnmarshalWire(buf []byte) error {
	return walk(buf, func(field) error { return nil })
}
