package wire

import (
	"fmt"

	"github.com/hujun-open/dashbook/indicator"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	setSegmentLength protowire.Number = iota + 1
	setItemPadding
	setStrokeWidth
	setBandHeight
	setActiveColor
	setInactiveColor
	setAlignment
	setMatchWidth
	setAppendSpace
	setItemCount
)

// Settings is a partial reconfiguration, nil fields are left as they are
type Settings struct {
	SegmentLength       *float32
	ItemPadding         *float32
	StrokeWidth         *float32
	BandHeight          *float32
	ActiveColor         *indicator.ARGB
	InactiveColor       *indicator.ARGB
	Alignment           *indicator.Alignment
	MatchContainerWidth *bool
	AppendSpaceBelow    *bool
	ItemCount           *int
}

// Apply runs the setter of every present field
func (s *Settings) Apply(ind *indicator.Indicator) *indicator.Indicator {
	if s.SegmentLength != nil {
		ind.SetSegmentLength(*s.SegmentLength)
	}
	if s.ItemPadding != nil {
		ind.SetItemPadding(*s.ItemPadding)
	}
	if s.StrokeWidth != nil {
		ind.SetStrokeWidth(*s.StrokeWidth)
	}
	if s.BandHeight != nil {
		ind.SetBandHeight(*s.BandHeight)
	}
	if s.ActiveColor != nil {
		ind.SetActiveColor(*s.ActiveColor)
	}
	if s.InactiveColor != nil {
		ind.SetInactiveColor(*s.InactiveColor)
	}
	if s.Alignment != nil {
		ind.Align(*s.Alignment)
	}
	if s.MatchContainerWidth != nil {
		ind.SetMatchContainerWidth(*s.MatchContainerWidth)
	}
	if s.AppendSpaceBelow != nil {
		ind.SetAppendSpaceBelow(*s.AppendSpaceBelow)
	}
	if s.ItemCount != nil {
		ind.SetItemCount(*s.ItemCount)
	}
	return ind
}

func (s *Settings) MarshalWire() ([]byte, error) {
	var b []byte
	for _, f := range []struct {
		num protowire.Number
		v   *float32
	}{
		{setSegmentLength, s.SegmentLength},
		{setItemPadding, s.ItemPadding},
		{setStrokeWidth, s.StrokeWidth},
		{setBandHeight, s.BandHeight},
	} {
		if f.v != nil {
			b = appendFloat(b, f.num, *f.v)
		}
	}
	for _, f := range []struct {
		num protowire.Number
		v   *indicator.ARGB
	}{
		{setActiveColor, s.ActiveColor},
		{setInactiveColor, s.InactiveColor},
	} {
		if f.v != nil {
			b = protowire.AppendTag(b, f.num, protowire.Fixed32Type)
			b = protowire.AppendFixed32(b, uint32(*f.v))
		}
	}
	if s.Alignment != nil {
		b = appendSint(b, setAlignment, int(*s.Alignment))
	}
	if s.MatchContainerWidth != nil {
		b = appendBool(b, setMatchWidth, *s.MatchContainerWidth)
	}
	if s.AppendSpaceBelow != nil {
		b = appendBool(b, setAppendSpace, *s.AppendSpaceBelow)
	}
	if s.ItemCount != nil {
		b = appendSint(b, setItemCount, *s.ItemCount)
	}
	return b, nil
}

func (s *Settings) UnmarshalWire(buf []byte) error {
	var out Settings
	float := func(fl field, dst **float32) error {
		v, err := fl.float(fl.num)
		if err == nil {
			*dst = &v
		}
		return err
	}
	color := func(fl field, dst **indicator.ARGB) error {
		if fl.typ != protowire.Fixed32Type {
			return fmt.Errorf("%w: field %d is %v", ErrWrongWireType, fl.num, fl.typ)
		}
		c := indicator.ARGB(fl.u64)
		*dst = &c
		return nil
	}
	boolean := func(fl field, dst **bool) error {
		v, err := fl.boolean(fl.num)
		if err == nil {
			*dst = &v
		}
		return err
	}
	err := walk(buf, func(fl field) error {
		switch fl.num {
		case setSegmentLength:
			return float(fl, &out.SegmentLength)
		case setItemPadding:
			return float(fl, &out.ItemPadding)
		case setStrokeWidth:
			return float(fl, &out.StrokeWidth)
		case setBandHeight:
			return float(fl, &out.BandHeight)
		case setActiveColor:
			return color(fl, &out.ActiveColor)
		case setInactiveColor:
			return color(fl, &out.InactiveColor)
		case setAlignment:
			v, err := fl.sint(fl.num)
			if err != nil {
				return err
			}
			a := indicator.Alignment(v)
			if a != indicator.AlignTop && a != indicator.AlignBottom {
				return fmt.Errorf("unknown alignment %d", v)
			}
			out.Alignment = &a
		case setMatchWidth:
			return boolean(fl, &out.MatchContainerWidth)
		case setAppendSpace:
			return boolean(fl, &out.AppendSpaceBelow)
		case setItemCount:
			v, err := fl.itemCount()
			if err != nil {
				return err
			}
			out.ItemCount = &v
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("settings: %w", err)
	}
	*s = out
	return nil
}
